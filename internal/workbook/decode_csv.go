package workbook

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
)

// decodeCSV reads a CSV file as a single grid named after the file. Ragged
// rows and loose quoting are tolerated; a UTF-8 BOM is stripped.
func decodeCSV(filename string, content []byte) ([]namedGrid, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(content))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = "Sheet1"
	}
	return []namedGrid{{name: name, rows: rows}}, nil
}
