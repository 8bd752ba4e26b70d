package workbook

import (
	"bytes"

	"github.com/knieriem/odf/ods"
)

// decodeODS extracts every table of an OpenDocument spreadsheet as raw
// string rows, in document order.
func decodeODS(content []byte) ([]namedGrid, error) {
	f, err := ods.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var doc ods.Doc
	if err := f.ParseContent(&doc); err != nil {
		return nil, err
	}

	grids := make([]namedGrid, 0, len(doc.Table))
	for _, table := range doc.Table {
		grids = append(grids, namedGrid{name: table.Name, rows: table.Strings()})
	}
	return grids, nil
}
