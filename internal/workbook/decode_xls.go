package workbook

import (
	"math"
	"strconv"
	"time"

	"github.com/yamitzky/xlrd-go/xlrd"
)

// decodeXLS extracts every sheet of a legacy BIFF workbook as raw string
// rows. FormattingInfo is needed so number cells styled as dates can be
// rendered as dates rather than serial numbers.
func decodeXLS(filename string, content []byte) ([]namedGrid, error) {
	book, err := xlrd.OpenWorkbook(filename, &xlrd.OpenWorkbookOptions{
		FormattingInfo: true,
		FileContents:   content,
	})
	if err != nil {
		return nil, err
	}

	grids := make([]namedGrid, 0, book.NSheets)
	for i := 0; i < book.NSheets; i++ {
		sheet, err := book.SheetByIndex(i)
		if err != nil {
			return nil, err
		}

		rows := make([][]string, sheet.NRows)
		for rowx := 0; rowx < sheet.NRows; rowx++ {
			row := make([]string, sheet.NCols)
			for colx := 0; colx < sheet.NCols; colx++ {
				row[colx] = xlsCellString(book, sheet, rowx, colx)
			}
			rows[rowx] = row
		}
		grids = append(grids, namedGrid{name: sheet.Name, rows: rows})
	}
	return grids, nil
}

func xlsCellString(book *xlrd.Book, sheet *xlrd.Sheet, rowx, colx int) string {
	value := sheet.CellValue(rowx, colx)

	switch sheet.CellType(rowx, colx) {
	case xlrd.XL_CELL_TEXT:
		if s, ok := value.(string); ok {
			return s
		}
		return ""
	case xlrd.XL_CELL_NUMBER:
		val, ok := toFloat(value)
		if !ok {
			return ""
		}
		if isDateCell(book, sheet.CellXFIndex(rowx, colx)) {
			if formatted, ok := formatXLSDate(val, book.Datemode); ok {
				return formatted
			}
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case xlrd.XL_CELL_BOOLEAN:
		return formatXLSBool(value)
	case xlrd.XL_CELL_ERROR:
		return formatXLSError(value)
	default:
		// Empty and blank cells.
		return ""
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func formatXLSBool(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		if v != 0 {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

func formatXLSError(value interface{}) string {
	switch v := value.(type) {
	case byte:
		if text, ok := xlrd.ErrorTextFromCode[v]; ok {
			return text
		}
	case int:
		if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
			return text
		}
	}
	return "#ERROR"
}

// isDateCell checks whether the cell's XF record points at a date format,
// either one of the builtin date format keys or a custom format string that
// parses as a date format.
func isDateCell(book *xlrd.Book, xfIndex int) bool {
	if xfIndex < 0 || xfIndex >= len(book.XFList) {
		return false
	}
	formatKey := book.XFList[xfIndex].FormatKey
	if isBuiltinDateFormat(formatKey) {
		return true
	}
	if book.FormatMap == nil {
		return false
	}
	format := book.FormatMap[formatKey]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(book, format.FormatString)
}

func isBuiltinDateFormat(key int) bool {
	switch key {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 50, 57, 58:
		return true
	default:
		return false
	}
}

func formatXLSDate(value float64, datemode int) (string, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", false
	}
	t, err := xlrd.XldateAsDatetime(value, datemode)
	if err != nil {
		return "", false
	}
	return formatDateValue(t, value), true
}

func formatDateValue(t time.Time, value float64) string {
	if value < 1 {
		return t.Format("15:04:05")
	}
	if value != math.Floor(value) {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02")
}
