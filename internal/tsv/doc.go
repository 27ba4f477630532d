// Package tsv reads and writes the tab-separated artifacts that every
// pipeline stage consumes and produces. It wraps encoding/csv,
// configured with Comma = '\t' and a header row.
package tsv
