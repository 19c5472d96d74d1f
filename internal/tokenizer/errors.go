package tokenizer

import (
	"errors"
	"fmt"
)

// ErrNoMoreRows is returned by Next once the source is exhausted.
var ErrNoMoreRows = errors.New("no more rows")

// RowError reports a line that produced more fields than the expected
// count established by the first usable line.
type RowError struct {
	// Source is the diagnostic name of the input.
	Source string
	// Index is the field index at which the line overflowed.
	Index int
	// Expected is the established fields-per-line.
	Expected int
	// Line is the offending line's text.
	Line string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("unexpected number of fields parsing %s: field %d exceeds expected maximum of %d per line: %s",
		e.Source, e.Index, e.Expected, e.Line)
}
