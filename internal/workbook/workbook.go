package workbook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nwalker/sheetview/internal/types"
)

// MaxPreviewRows caps how many records the preview table shows. Exports
// always cover the full record set.
const MaxPreviewRows = 200

// AllowedExtensions lists the formats Load accepts, matched case-insensitively.
var AllowedExtensions = []string{".xlsx", ".xls", ".csv", ".ods"}

// namedGrid is a raw row-major sheet as produced by the format decoders,
// header row included as ordinary data.
type namedGrid struct {
	name string
	rows [][]string
}

// IsAllowedFile reports whether the filename's extension is supported.
func IsAllowedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Load reads and decodes a spreadsheet file into a Workbook. The extension
// is checked before any I/O happens. All failures come back as *LoadError.
func Load(path string) (*types.Workbook, error) {
	if !IsAllowedFile(path) {
		return nil, invalidFileTypeError(filepath.Ext(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err)
	}

	return LoadBytes(path, content)
}

// LoadBytes decodes an already-read file. The filename supplies the format
// hint and the fallback sheet name for single-table formats.
func LoadBytes(filename string, content []byte) (*types.Workbook, error) {
	if !IsAllowedFile(filename) {
		return nil, invalidFileTypeError(filepath.Ext(filename))
	}

	var (
		grids []namedGrid
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		grids, err = decodeXLSX(content)
	case ".xls":
		grids, err = decodeXLS(filename, content)
	case ".csv":
		grids, err = decodeCSV(filename, content)
	case ".ods":
		grids, err = decodeODS(content)
	}
	if err != nil {
		return nil, parseError(err)
	}

	return assemble(filename, int64(len(content)), grids)
}

// assemble normalizes decoded grids into the final Workbook. Zero sheets is
// a reportable condition, distinct from a workbook with one empty sheet.
func assemble(filename string, size int64, grids []namedGrid) (*types.Workbook, error) {
	if len(grids) == 0 {
		return nil, emptyDataError(filepath.Base(filename))
	}

	wb := &types.Workbook{
		SourceFile: filename,
		SourceSize: size,
		Sheets:     make([]types.Sheet, 0, len(grids)),
	}
	for _, g := range grids {
		wb.Sheets = append(wb.Sheets, normalizeSheet(g.name, g.rows))
	}
	return wb, nil
}
