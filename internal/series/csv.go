package series

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ReadHistory reads a historical series in CSV form. The delimiter may be
// comma or semicolon: comma is tried first and the reader falls back to
// semicolon when the comma parse fails or recognizes none of the expected
// columns. The first row is the header; returned records map raw header
// names to raw cell values, ready for Normalize.
func ReadHistory(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	rows, err := parseCSV(data, ',')
	if err != nil || !hasKnownColumn(rows) {
		semi, semiErr := parseCSV(data, ';')
		if semiErr == nil && hasKnownColumn(semi) {
			return semi, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse history csv: %w", err)
		}
	}
	return rows, nil
}

func parseCSV(data []byte, delim rune) ([]RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	header := lines[0]
	records := make([]RawRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rec := make(RawRecord, len(header))
		for i, col := range header {
			if i < len(line) {
				rec[col] = line[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// hasKnownColumn reports whether at least one header cell resolves to a
// canonical column. A comma parse of a semicolon file yields one unmatched
// mega-column, which is what this check catches.
func hasKnownColumn(rows []RawRecord) bool {
	if len(rows) == 0 {
		return true
	}
	for name := range rows[0] {
		if canonicalFor(name) != "" {
			return true
		}
	}
	return false
}
