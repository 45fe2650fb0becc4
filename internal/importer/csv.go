// Package importer parses tabular bulk-import files and loads them into the
// store: ingredient/spice corpora and recipes with their raw ingredient
// lines.
package importer

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"
)

// Row is one data row of an import file, keyed by header column name. Line
// is the 1-based position in the file, kept for diagnostics when a row is
// skipped.
type Row struct {
	Line   int
	Fields map[string]string
}

// Field returns the first non-empty value among the named columns. Column
// names are matched case-insensitively with surrounding space ignored.
func (r Row) Field(names ...string) string {
	for _, name := range names {
		for key, value := range r.Fields {
			if strings.EqualFold(strings.TrimSpace(key), name) && value != "" {
				return value
			}
		}
	}
	return ""
}

// FloatField parses the first non-empty named column as a float, returning
// nil when the value is absent or unparseable.
func (r Row) FloatField(names ...string) *float64 {
	value := r.Field(names...)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// BoolField interprets the first non-empty named column as a truthy marker.
func (r Row) BoolField(names ...string) bool {
	switch strings.ToLower(r.Field(names...)) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

// ReadCSV loads an import file into header-keyed rows. Values are trimmed;
// fully empty rows are dropped.
func ReadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for i, record := range raw[1:] {
		fields := make(map[string]string, len(header))
		empty := true
		for idx, key := range header {
			if idx >= len(record) {
				continue
			}
			value := strings.TrimSpace(record[idx])
			fields[key] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, Row{Line: i + 2, Fields: fields})
	}

	return rows, nil
}

// splitAliases breaks an alias cell into individual names. Commas and
// semicolons both act as separators, matching how administrators fill the
// sheet.
func splitAliases(value string) []string {
	value = strings.ReplaceAll(value, ";", ",")
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]struct{}{}
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clean)
	}
	return out
}
