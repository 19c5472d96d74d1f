// Package tokenizer turns a stream of raw text lines into fixed-arity
// field records.
//
// Input is flat delimiter-separated text (whitespace by default). The
// number of fields per line is inferred from the first usable line and
// every later line must fit within it. Lines starting with '#' are
// comments; blank lines are skipped by default. Both are filtered before
// splitting and never influence the inferred field count.
package tokenizer

import (
	"errors"
	"io"
	"iter"

	"fieldscan/internal/linesource"
)

// Record is one parsed line: an ordered slice of fields, sized to the
// inferred field count. When a line has fewer fields than expected the
// trailing slots are left empty; only producing more fields than expected
// is an error. That asymmetry is deliberate: short rows are a data-quality
// concern for the caller to judge, overflow means the line cannot fit the
// table shape at all.
type Record []string

// Config holds the splitting rules for a Tokenizer. Fixed once the
// Tokenizer is built.
type Config struct {
	// GroupDelimiters treats consecutive delimiter bytes as a single
	// separator. When false, each extra delimiter produces an empty field.
	GroupDelimiters bool
	// SkipBlankLines drops zero-length lines instead of parsing them.
	SkipBlankLines bool
	// IsDelimiter classifies a byte as a field separator. Nil means
	// space or tab.
	IsDelimiter func(byte) bool
	// IsComment classifies a whole line as a comment to be dropped. Nil
	// means lines whose first byte is '#'.
	IsComment func([]byte) bool
}

// DefaultConfig returns the standard rules: grouped whitespace delimiters,
// blank lines skipped, '#' comments.
func DefaultConfig() Config {
	return Config{
		GroupDelimiters: true,
		SkipBlankLines:  true,
	}
}

// iteration state for the one-shot Records sequence.
type iterState int

const (
	notStarted iterState = iota
	iterating
	exhausted
)

// Tokenizer pulls lines from a source and splits them into Records. It is
// single-consumer and single-pass: one goroutine drives it from start to
// exhaustion, and the Records sequence can be requested only once.
//
// The Tokenizer never closes its source; the owner does, once iteration
// ends or is abandoned.
type Tokenizer struct {
	src linesource.Source
	cfg Config

	// wordCount is the field count inferred from the first usable line.
	// Zero means not yet established.
	wordCount int
	state     iterState
}

// New builds a Tokenizer reading from src with the given rules.
func New(src linesource.Source, cfg Config) *Tokenizer {
	if cfg.IsDelimiter == nil {
		cfg.IsDelimiter = func(b byte) bool { return b == ' ' || b == '\t' }
	}
	if cfg.IsComment == nil {
		cfg.IsComment = func(line []byte) bool { return len(line) > 0 && line[0] == '#' }
	}
	return &Tokenizer{src: src, cfg: cfg}
}

// Name returns the source's diagnostic name.
func (t *Tokenizer) Name() string { return t.src.Name() }

// WordCount returns the inferred fields-per-line, or zero before the first
// usable line has been parsed.
func (t *Tokenizer) WordCount() int { return t.wordCount }

// Next returns the next Record, pulling and discarding skipped lines until
// a usable one is found. It returns ErrNoMoreRows once the source is
// exhausted, a *RowError when a line overflows the expected field count,
// and source errors as-is. A *RowError is fatal only to that line; Next
// may be called again for the one after it.
func (t *Tokenizer) Next() (Record, error) {
	if t.state == notStarted {
		t.state = iterating
	}
	if t.state == exhausted {
		return nil, ErrNoMoreRows
	}
	for {
		line, err := t.src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				t.state = exhausted
				return nil, ErrNoMoreRows
			}
			return nil, err
		}
		if t.cfg.SkipBlankLines && len(line) == 0 {
			continue
		}
		if t.cfg.IsComment(line) {
			continue
		}
		return t.parseLine(line)
	}
}

// Records returns the lazy sequence of all remaining Records. The sequence
// is finite, not restartable, and bound to this Tokenizer: requesting it
// twice, or after iteration has begun through Next, is a programming error
// and panics. Errors for individual rows are yielded in the second
// position; yielding stops at end of input.
func (t *Tokenizer) Records() iter.Seq2[Record, error] {
	if t.state != notStarted {
		panic("tokenizer: Records may be requested only once, before iteration begins")
	}
	t.state = iterating
	return func(yield func(Record, error) bool) {
		for {
			rec, err := t.Next()
			if errors.Is(err, ErrNoMoreRows) {
				return
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// parseLine splits one line into fields with a two-state scan: either
// inside a run of delimiters or inside a word. The first parsed line also
// establishes the expected field count.
func (t *Tokenizer) parseLine(line []byte) (Record, error) {
	if t.wordCount == 0 {
		t.wordCount = t.countWords(line)
	}

	parts := make(Record, t.wordCount)
	inDelimiter := true
	index := 0
	start := 0

	for i := 0; i < len(line); i++ {
		if t.cfg.IsDelimiter(line[i]) {
			if !inDelimiter {
				if index >= len(parts) {
					return nil, t.rowError(index, line)
				}
				parts[index] = string(line[start:i])
				index++
			} else if !t.cfg.GroupDelimiters {
				// An extra delimiter claims a slot as an empty field.
				if index >= len(parts) {
					return nil, t.rowError(index, line)
				}
				index++
			}
			inDelimiter = true
		} else {
			if inDelimiter {
				start = i
			}
			inDelimiter = false
		}
	}
	if !inDelimiter {
		if index >= len(parts) {
			return nil, t.rowError(index, line)
		}
		parts[index] = string(line[start:])
	}

	return parts, nil
}

// countWords runs the same two-state scan as parseLine but only counts
// transitions into words, so the inferred count and the split always
// agree. With grouping off, runs of delimiters and a trailing delimiter
// count as empty fields.
func (t *Tokenizer) countWords(line []byte) int {
	words := 0
	inDelimiter := true
	for _, b := range line {
		if t.cfg.IsDelimiter(b) {
			if inDelimiter && !t.cfg.GroupDelimiters {
				words++
			}
			inDelimiter = true
		} else {
			if inDelimiter {
				words++
			}
			inDelimiter = false
		}
	}
	if inDelimiter && !t.cfg.GroupDelimiters {
		words++
	}
	return words
}

func (t *Tokenizer) rowError(index int, line []byte) *RowError {
	return &RowError{
		Source:   t.src.Name(),
		Index:    index,
		Expected: t.wordCount,
		Line:     string(line),
	}
}
