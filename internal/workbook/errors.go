package workbook

import (
	"fmt"
	"strings"
)

// ErrorKind classifies load failures for the UI.
type ErrorKind int

const (
	KindInvalidFileType ErrorKind = iota
	KindReadError
	KindParseError
	KindEmptyData
)

// LoadError is a user-presentable load failure. Title is a short heading,
// Detail the full message shown under it.
type LoadError struct {
	Kind   ErrorKind
	Title  string
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	return e.Title + ": " + e.Detail
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func invalidFileTypeError(ext string) *LoadError {
	return &LoadError{
		Kind:   KindInvalidFileType,
		Title:  "Unsupported file type",
		Detail: fmt.Sprintf("%q is not a supported format (allowed: %s)", ext, strings.Join(AllowedExtensions, ", ")),
	}
}

func readError(err error) *LoadError {
	return &LoadError{
		Kind:   KindReadError,
		Title:  "Could not read file",
		Detail: err.Error(),
		Err:    err,
	}
}

func parseError(err error) *LoadError {
	return &LoadError{
		Kind:   KindParseError,
		Title:  "Could not parse file",
		Detail: err.Error(),
		Err:    err,
	}
}

func emptyDataError(filename string) *LoadError {
	return &LoadError{
		Kind:   KindEmptyData,
		Title:  "No data found",
		Detail: fmt.Sprintf("%s parsed successfully but contains no sheets", filename),
	}
}
