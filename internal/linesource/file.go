package linesource

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	initialBufSize = 64 * 1024
	maxLineSize    = 1024 * 1024 // 1MB max line
)

// File reads lines from a file on disk. Files ending in .gz or .zst are
// decompressed transparently.
type File struct {
	name string
	f    *os.File
	dec  io.Closer // decompressor, nil for plain files
	sc   *bufio.Scanner
}

// Open opens path as a line source. The extension decides decompression:
// .gz uses gzip, .zst uses zstd, anything else is read as-is.
func Open(path string) (*File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var r io.Reader = f
	var dec io.Closer
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip reader for %s: %w", path, err)
		}
		r = gz
		dec = gz
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open zstd reader for %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		r = rc
		dec = rc
	}

	return &File{
		name: path,
		f:    f,
		dec:  dec,
		sc:   newLineScanner(r),
	}, nil
}

// ReadLine implements Source.
func (s *File) ReadLine() ([]byte, error) {
	return scanLine(s.sc)
}

// Name implements Source.
func (s *File) Name() string { return s.name }

// Close releases the decompressor (if any) and the file handle.
func (s *File) Close() error {
	if s.dec != nil {
		_ = s.dec.Close()
	}
	return s.f.Close()
}

// newLineScanner builds a bufio.Scanner with the standard line limits.
func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialBufSize), maxLineSize)
	return sc
}

// scanLine advances a scanner one line, normalizing \r\n endings and
// converting end-of-input to io.EOF.
func scanLine(sc *bufio.Scanner) ([]byte, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := sc.Bytes()
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, nil
}
