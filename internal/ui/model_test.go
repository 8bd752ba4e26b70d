package ui

import (
	"fmt"
	"testing"

	"github.com/nwalker/sheetview/internal/types"
	"github.com/nwalker/sheetview/internal/workbook"
)

// previewSheet builds a sheet where the first matching records contain
// "match" in the Tag field and the rest do not.
func previewSheet(total, matching int) *types.Sheet {
	records := make([]types.Record, total)
	for i := range records {
		tag := "other"
		if i < matching {
			tag = "match"
		}
		records[i] = types.Record{"ID": fmt.Sprintf("%d", i), "Tag": tag}
	}
	return &types.Sheet{
		Name:        "Big",
		Headers:     []string{"ID", "Tag"},
		Records:     records,
		RowCount:    total,
		ColumnCount: 2,
	}
}

func TestPreviewRowsTruncation(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		matching  int
		term      string
		wantRows  int
		truncated bool
	}{
		{"Under the cap", 50, 50, "", 50, false},
		{"Exactly the cap unfiltered", workbook.MaxPreviewRows, workbook.MaxPreviewRows, "", workbook.MaxPreviewRows, false},
		{"Over the cap unfiltered", 500, 500, "", workbook.MaxPreviewRows, true},
		{"Filter matches exactly the cap", 500, workbook.MaxPreviewRows, "match", workbook.MaxPreviewRows, false},
		{"Filter matches past the cap", 500, 300, "match", workbook.MaxPreviewRows, true},
		{"Filter matches nothing", 500, 0, "match", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, truncated := previewRows(previewSheet(tt.total, tt.matching), tt.term)
			if len(rows) != tt.wantRows {
				t.Errorf("rows = %d; want %d", len(rows), tt.wantRows)
			}
			if truncated != tt.truncated {
				t.Errorf("truncated = %v; want %v", truncated, tt.truncated)
			}
		})
	}
}

func TestPreviewRowsFollowHeaderOrder(t *testing.T) {
	sheet := &types.Sheet{
		Name:        "Ordered",
		Headers:     []string{"B", "A"},
		Records:     []types.Record{{"A": "1", "B": "2"}},
		RowCount:    1,
		ColumnCount: 2,
	}

	rows, _ := previewRows(sheet, "")

	if rows[0][0] != "2" || rows[0][1] != "1" {
		t.Errorf("row = %v; want values in header order [2 1]", rows[0])
	}
}
