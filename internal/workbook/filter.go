package workbook

import (
	"strings"

	"github.com/nwalker/sheetview/internal/types"
)

// FilterRecords returns up to max records matching term, preserving the
// original order. An empty term matches everything. A record matches when
// any field value contains term case-insensitively. The input slice is never
// modified; the result is a fresh slice sharing the record maps.
func FilterRecords(records []types.Record, headers []string, term string, max int) []types.Record {
	if max < 0 {
		max = 0
	}

	out := make([]types.Record, 0, min(max, len(records)))
	term = strings.ToLower(term)

	for _, record := range records {
		if len(out) >= max {
			break
		}
		if term == "" || recordMatches(record, headers, term) {
			out = append(out, record)
		}
	}
	return out
}

func recordMatches(record types.Record, headers []string, loweredTerm string) bool {
	for _, header := range headers {
		if strings.Contains(strings.ToLower(record[header]), loweredTerm) {
			return true
		}
	}
	return false
}
