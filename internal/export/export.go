package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwalker/sheetview/internal/types"
)

// Format selects the export encoding and doubles as the file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// SheetJSON renders the sheet's full record set as a pretty-printed JSON
// array of objects. Objects are encoded by hand so keys come out in header
// order; marshalling the record maps directly would sort them.
func SheetJSON(s types.Sheet) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteByte('[')
	for i, record := range s.Records {
		if i > 0 {
			raw.WriteByte(',')
		}
		raw.WriteByte('{')
		for j, header := range s.Headers {
			if j > 0 {
				raw.WriteByte(',')
			}
			key, err := json.Marshal(header)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(record[header])
			if err != nil {
				return nil, err
			}
			raw.Write(key)
			raw.WriteByte(':')
			raw.Write(value)
		}
		raw.WriteByte('}')
	}
	raw.WriteByte(']')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

// SheetCSV renders the sheet's full record set as CSV: one header row
// followed by the data rows, columns in header order, standard quoting.
func SheetCSV(s types.Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if len(s.Headers) == 0 {
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(s.Headers); err != nil {
		return nil, err
	}
	row := make([]string, len(s.Headers))
	for _, record := range s.Records {
		for i, header := range s.Headers {
			row[i] = record[header]
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSheet serializes the sheet and writes "<sheet name>.<format>" into
// dir, returning the written path. Serialization happens fully in memory
// first, so a failure never leaves a partial file behind.
func WriteSheet(s types.Sheet, dir string, format Format) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = SheetJSON(s)
	case FormatCSV:
		data, err = SheetCSV(s)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, sanitizeFilename(s.Name)+"."+string(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeFilename makes a sheet name safe to use as a file name.
func sanitizeFilename(name string) string {
	invalid := strings.NewReplacer(string(os.PathSeparator), "_", "/", "_", "\\", "_")
	clean := strings.TrimSpace(invalid.Replace(name))
	if clean == "" {
		return "sheet"
	}
	return clean
}
