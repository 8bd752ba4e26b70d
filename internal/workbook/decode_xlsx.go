package workbook

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// decodeXLSX extracts every sheet of an xlsx workbook as raw string rows,
// in workbook order.
func decodeXLSX(content []byte) ([]namedGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	grids := make([]namedGrid, 0, len(sheetNames))
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		grids = append(grids, namedGrid{name: name, rows: rows})
	}
	return grids, nil
}
