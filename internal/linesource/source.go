// Package linesource provides line-oriented input sources for the tokenizer.
//
// A Source delivers one raw line at a time and owns the underlying handle.
// The tokenizer never closes a Source; whoever opened it does, once
// iteration ends or is abandoned.
package linesource

// Source supplies raw lines of text, one at a time.
//
// ReadLine returns the next line without its terminator, or io.EOF when the
// input is exhausted. The returned slice may be reused between calls and
// must not be retained. Any other error is a transport failure and is
// reported as-is.
//
// Name identifies the input for diagnostics (a file path, "stdin", ...).
// It may be empty when no name is available.
type Source interface {
	ReadLine() ([]byte, error)
	Name() string
	Close() error
}
