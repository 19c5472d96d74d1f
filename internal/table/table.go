// Package table reads delimited input into an in-memory table of named
// columns, with typed field access and per-column statistics. It is the
// layer metric-style files (a header row naming counters, data rows of
// numbers) are consumed through.
package table

import (
	"errors"
	"fmt"
	"strconv"

	"fieldscan/internal/tokenizer"
)

// Table is a fully-read delimited file. Columns holds the header row when
// one was read; with no header it stays nil and columns are addressed by
// index only.
type Table struct {
	Source  string
	Columns []string
	Rows    []tokenizer.Record
}

// Options controls reading.
type Options struct {
	// NoHeader treats the first usable row as data instead of column names.
	NoHeader bool
}

// Read drains the tokenizer into a Table. The tokenizer must not have been
// iterated yet. Any row error aborts the read.
func Read(tok *tokenizer.Tokenizer, opts Options) (*Table, error) {
	tbl := &Table{Source: tok.Name()}

	header := !opts.NoHeader
	for {
		rec, err := tok.Next()
		if errors.Is(err, tokenizer.ErrNoMoreRows) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			tbl.Columns = []string(rec)
			header = false
			continue
		}
		tbl.Rows = append(tbl.Rows, rec)
	}

	return tbl, nil
}

// NumColumns returns the table width: the header width when present,
// otherwise the width of the first data row.
func (t *Table) NumColumns() int {
	if t.Columns != nil {
		return len(t.Columns)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// ColumnIndex resolves a header name to its index.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Field returns the raw field at row, col.
func (t *Table) Field(row, col int) (string, error) {
	if row < 0 || row >= len(t.Rows) {
		return "", fmt.Errorf("%s: row %d out of range", t.Source, row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return "", fmt.Errorf("%s: column %d out of range on row %d", t.Source, col, row)
	}
	return t.Rows[row][col], nil
}

// Float parses the field at row, col as a float64.
func (t *Table) Float(row, col int) (float64, error) {
	s, err := t.Field(row, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: row %d column %d: %w", t.Source, row, col, err)
	}
	return v, nil
}

// Int parses the field at row, col as an int64.
func (t *Table) Int(row, col int) (int64, error) {
	s, err := t.Field(row, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: row %d column %d: %w", t.Source, row, col, err)
	}
	return v, nil
}
