package table

import (
	"fmt"
	"strconv"
)

// ColumnStats summarizes one numeric column.
type ColumnStats struct {
	Column string // header name, or empty without a header
	Count  int    // non-empty fields seen
	Sum    float64
	Min    float64
	Max    float64
	Mean   float64
}

// Stats computes statistics over a column. Empty fields (including slots a
// short row left unset) are skipped rather than counted as zero; a
// non-empty field that does not parse as a number is an error.
func (t *Table) Stats(col int) (ColumnStats, error) {
	if col < 0 || col >= t.NumColumns() {
		return ColumnStats{}, fmt.Errorf("%s: column %d out of range", t.Source, col)
	}

	stats := ColumnStats{}
	if col < len(t.Columns) {
		stats.Column = t.Columns[col]
	}

	for row, rec := range t.Rows {
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			return ColumnStats{}, fmt.Errorf("%s: row %d column %d: %w", t.Source, row, col, err)
		}
		if stats.Count == 0 || v < stats.Min {
			stats.Min = v
		}
		if stats.Count == 0 || v > stats.Max {
			stats.Max = v
		}
		stats.Sum += v
		stats.Count++
	}

	if stats.Count > 0 {
		stats.Mean = stats.Sum / float64(stats.Count)
	}
	return stats, nil
}
