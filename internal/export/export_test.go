package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nwalker/sheetview/internal/types"
)

func sampleSheet() types.Sheet {
	return types.Sheet{
		Name:    "People",
		Headers: []string{"Name", "City", "Age"},
		Records: []types.Record{
			{"Name": "Alice", "City": "Delhi", "Age": "30"},
			{"Name": "Bob", "City": "a,b\"c\nd", "Age": ""},
		},
		RowCount:    2,
		ColumnCount: 3,
	}
}

func TestSheetJSONRoundTrip(t *testing.T) {
	sheet := sampleSheet()

	data, err := SheetJSON(sheet)
	if err != nil {
		t.Fatalf("SheetJSON failed: %v", err)
	}

	var parsed []map[string]string
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}

	if len(parsed) != len(sheet.Records) {
		t.Fatalf("parsed %d records; want %d", len(parsed), len(sheet.Records))
	}
	for i, record := range sheet.Records {
		if !reflect.DeepEqual(parsed[i], map[string]string(record)) {
			t.Errorf("record %d = %v; want %v", i, parsed[i], record)
		}
	}
}

func TestSheetJSONKeyOrderFollowsHeaders(t *testing.T) {
	sheet := types.Sheet{
		Name:    "Ordered",
		Headers: []string{"Zebra", "Apple", "Mango"},
		Records: []types.Record{
			{"Zebra": "1", "Apple": "2", "Mango": "3"},
		},
		RowCount:    1,
		ColumnCount: 3,
	}

	data, err := SheetJSON(sheet)
	if err != nil {
		t.Fatalf("SheetJSON failed: %v", err)
	}

	text := string(data)
	zebra := strings.Index(text, `"Zebra"`)
	apple := strings.Index(text, `"Apple"`)
	mango := strings.Index(text, `"Mango"`)
	if zebra == -1 || apple == -1 || mango == -1 {
		t.Fatalf("missing keys in output: %s", text)
	}
	if !(zebra < apple && apple < mango) {
		t.Errorf("keys not in header order: %s", text)
	}
}

func TestSheetJSONEmptySheet(t *testing.T) {
	data, err := SheetJSON(types.Sheet{Name: "Empty"})
	if err != nil {
		t.Fatalf("SheetJSON failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("output = %q; want empty JSON array", data)
	}
}

func TestSheetCSV(t *testing.T) {
	sheet := sampleSheet()

	data, err := SheetCSV(sheet)
	if err != nil {
		t.Fatalf("SheetCSV failed: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d; want 3 (header + 2 records)", len(rows))
	}
	if !reflect.DeepEqual(rows[0], sheet.Headers) {
		t.Errorf("header row = %v; want %v", rows[0], sheet.Headers)
	}
	// Quoting survives separators, quotes and newlines in values.
	if rows[2][1] != "a,b\"c\nd" {
		t.Errorf("quoted value = %q; want %q", rows[2][1], "a,b\"c\nd")
	}
}

func TestSheetCSVEmptySheet(t *testing.T) {
	data, err := SheetCSV(types.Sheet{Name: "Empty"})
	if err != nil {
		t.Fatalf("SheetCSV failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("output = %q; want no bytes", data)
	}
}

func TestExportIncludesAllRecords(t *testing.T) {
	// The preview caps at 200 rows; the export must not.
	records := make([]types.Record, 500)
	for i := range records {
		records[i] = types.Record{"ID": fmt.Sprintf("%d", i)}
	}
	sheet := types.Sheet{
		Name:        "Big",
		Headers:     []string{"ID"},
		Records:     records,
		RowCount:    500,
		ColumnCount: 1,
	}

	data, err := SheetJSON(sheet)
	if err != nil {
		t.Fatalf("SheetJSON failed: %v", err)
	}
	var parsed []map[string]string
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 500 {
		t.Errorf("exported %d records; want 500", len(parsed))
	}

	csvData, err := SheetCSV(sheet)
	if err != nil {
		t.Fatalf("SheetCSV failed: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(csvData)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 501 {
		t.Errorf("exported %d rows; want 501", len(rows))
	}
}

func TestWriteSheet(t *testing.T) {
	tmpDir := t.TempDir()
	sheet := sampleSheet()

	tests := []struct {
		name     string
		format   Format
		filename string
	}{
		{"JSON", FormatJSON, "People.json"},
		{"CSV", FormatCSV, "People.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := WriteSheet(sheet, tmpDir, tt.format)
			if err != nil {
				t.Fatalf("WriteSheet failed: %v", err)
			}
			if filepath.Base(path) != tt.filename {
				t.Errorf("path = %q; want base %q", path, tt.filename)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("written file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("written file is empty")
			}
		})
	}
}

func TestWriteSheetUnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := WriteSheet(sampleSheet(), tmpDir, Format("xml")); err == nil {
		t.Error("expected an error for unknown format")
	}
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("no file should be written on failure, found %d", len(entries))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain name", "Summary", "Summary"},
		{"Slash replaced", "Q1/Q2", "Q1_Q2"},
		{"Backslash replaced", "a\\b", "a_b"},
		{"Whitespace trimmed", "  Data  ", "Data"},
		{"Empty falls back", "", "sheet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
