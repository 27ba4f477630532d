package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Writer appends rows to a tab-separated artifact with a header row,
// mirroring exporter/csv.go's ExportToFile shape.
type Writer struct {
	w      *csv.Writer
	closer io.Closer
}

// Create truncates (or creates) path and writes header as the first row.
func Create(path string, header []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("tsv: create %s: %w", path, err)
	}
	cw := csv.NewWriter(f)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("tsv: write header to %s: %w", path, err)
	}
	return &Writer{w: cw, closer: f}, nil
}

// WriteRow writes one data row.
func (w *Writer) WriteRow(fields ...string) error {
	if err := w.w.Write(fields); err != nil {
		return fmt.Errorf("tsv: write row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.closer.Close()
		return fmt.Errorf("tsv: flush: %w", err)
	}
	return w.closer.Close()
}
