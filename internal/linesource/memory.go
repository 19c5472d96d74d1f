package linesource

import (
	"bufio"
	"io"
)

// Reader adapts an arbitrary io.Reader (stdin, a network stream, a test
// buffer) into a Source. Closing a Reader does not close the underlying
// io.Reader; the caller owns that handle.
type Reader struct {
	name string
	sc   *bufio.Scanner
}

// NewReader wraps r with the given diagnostic name.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{name: name, sc: newLineScanner(r)}
}

// ReadLine implements Source.
func (s *Reader) ReadLine() ([]byte, error) {
	return scanLine(s.sc)
}

// Name implements Source.
func (s *Reader) Name() string { return s.name }

// Close implements Source. It is a no-op.
func (s *Reader) Close() error { return nil }

// Lines serves a fixed slice of lines from memory. Used in tests and for
// embedding small inline tables.
type Lines struct {
	name  string
	lines []string
	pos   int
}

// FromStrings builds an in-memory source from individual lines.
func FromStrings(name string, lines ...string) *Lines {
	return &Lines{name: name, lines: lines}
}

// ReadLine implements Source.
func (s *Lines) ReadLine() ([]byte, error) {
	if s.pos >= len(s.lines) {
		return nil, io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return []byte(line), nil
}

// Name implements Source.
func (s *Lines) Name() string { return s.name }

// Close implements Source. It is a no-op.
func (s *Lines) Close() error { return nil }
