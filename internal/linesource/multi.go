package linesource

import (
	"errors"
	"io"
	"strings"
)

// Multi concatenates several sources into one, reading each to exhaustion
// before moving to the next. Name joins the member names, so diagnostics
// from a parse spanning several files mention all of them.
type Multi struct {
	sources []Source
	pos     int
}

// NewMulti builds a concatenated source. The members are closed by Close,
// in order, regardless of how far reading got.
func NewMulti(sources ...Source) *Multi {
	return &Multi{sources: sources}
}

// ReadLine implements Source. io.EOF is returned only once every member
// is exhausted; member errors other than io.EOF are returned as-is.
func (m *Multi) ReadLine() ([]byte, error) {
	for m.pos < len(m.sources) {
		line, err := m.sources[m.pos].ReadLine()
		if err == nil {
			return line, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
		m.pos++
	}
	return nil, io.EOF
}

// Name implements Source.
func (m *Multi) Name() string {
	names := make([]string, 0, len(m.sources))
	for _, s := range m.sources {
		if n := s.Name(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// Close closes every member and returns the joined errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
