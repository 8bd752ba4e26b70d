package types

// Record is one data row keyed by header name.
type Record map[string]string

// Sheet is one named table of a decoded workbook. It is built once during
// load and never mutated afterwards; preview filtering and export work on
// derived copies.
type Sheet struct {
	Name        string
	Headers     []string
	Records     []Record
	RowCount    int
	ColumnCount int
}

// Workbook is the full decoded file, sheets in file order.
type Workbook struct {
	SourceFile string
	SourceSize int64
	Sheets     []Sheet
}
