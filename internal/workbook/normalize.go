package workbook

import (
	"fmt"
	"strings"

	"github.com/nwalker/sheetview/internal/types"
)

// normalizeSheet turns a raw grid into a Sheet. The first row becomes the
// headers, blank header cells get a synthetic "Column N" label, and the
// remaining rows become header-keyed records. A grid with no rows yields an
// empty sheet with zero counts, which is valid.
func normalizeSheet(name string, rows [][]string) types.Sheet {
	if len(rows) == 0 {
		return types.Sheet{Name: name}
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header := strings.TrimSpace(cell)
		if header == "" {
			header = fmt.Sprintf("Column %d", i+1)
		}
		headers[i] = header
	}

	records := make([]types.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(types.Record, len(headers))
		for i, header := range headers {
			// Ragged rows are tolerated: short rows fill with "",
			// cells past the header width are dropped. Duplicate
			// headers overwrite, last column wins.
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[header] = value
		}
		records = append(records, record)
	}

	return types.Sheet{
		Name:        name,
		Headers:     headers,
		Records:     records,
		RowCount:    len(records),
		ColumnCount: len(headers),
	}
}
