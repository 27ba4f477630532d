package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Reader decodes a tab-separated file with a header row into indexable
// rows. Column lookups are by name so callers don't hardcode positions.
type Reader struct {
	Header  []string
	columns map[string]int
	rows    [][]string
}

// Open reads the full file at path. Pedigree inputs are small enough
// (thousands of rows, not millions) that loading the whole table up
// front is the simpler and sufficient shape — no streaming reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tsv: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes r as TSV with a header row.
func Read(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Reader{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tsv: read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tsv: read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	return &Reader{Header: header, columns: columns, rows: rows}, nil
}

// Rows returns the decoded data rows, excluding the header.
func (r *Reader) Rows() [][]string { return r.rows }

// HasColumn reports whether the header named col.
func (r *Reader) HasColumn(col string) bool {
	_, ok := r.columns[col]
	return ok
}

// Get returns the value of column col in row, or an error if the column
// is missing or the row is short (a malformed-row input error class 1
// when it prevents the header contract from being satisfied at all).
func (r *Reader) Get(row []string, col string) (string, error) {
	idx, ok := r.columns[col]
	if !ok {
		return "", fmt.Errorf("tsv: missing column %q", col)
	}
	if idx >= len(row) {
		return "", fmt.Errorf("tsv: row has no value for column %q", col)
	}
	return row[idx], nil
}

// GetOptional returns the value of column col, or "" if the column is
// absent or the row is short, for optional fields like a trailing
// mother-id column.
func (r *Reader) GetOptional(row []string, col string) string {
	idx, ok := r.columns[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Last returns the last column of row, used for the Mother/Child input's
// "mother id is the last column" contract.
func Last(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[len(row)-1]
}
