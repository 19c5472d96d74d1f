package linesource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// readLines pulls n lines from the source on a goroutine so the test can
// append to the file while ReadLine blocks.
func readLines(s *Follow, n int) <-chan []string {
	out := make(chan []string, 1)
	go func() {
		var lines []string
		for len(lines) < n {
			line, err := s.ReadLine()
			if err != nil {
				break
			}
			lines = append(lines, string(line))
		}
		out <- lines
	}()
	return out
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFollowAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.txt")
	appendLine(t, path, "old ignored")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := FollowFile(ctx, path, FollowConfig{PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	got := readLines(src, 2)
	appendLine(t, path, "a b")
	appendLine(t, path, "c d")

	lines := <-got
	if len(lines) != 2 || lines[0] != "a b" || lines[1] != "c d" {
		t.Errorf("got %v, want appended lines only", lines)
	}
}

func TestFollowFromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.txt")
	appendLine(t, path, "first")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := FollowFile(ctx, path, FollowConfig{FromStart: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	line, err := src.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "first" {
		t.Errorf("got %q, want %q", line, "first")
	}
}

func TestFollowTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.txt")
	appendLine(t, path, "aaaa bbbb cccc")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := FollowFile(ctx, path, FollowConfig{PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	got := readLines(src, 1)
	if err := os.Truncate(path, 0); err != nil {
		t.Fatal(err)
	}
	appendLine(t, path, "new")

	lines := <-got
	if len(lines) != 1 || lines[0] != "new" {
		t.Errorf("got %v, want [new]", lines)
	}
}

func TestFollowCancelledContextReadsAsEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.txt")
	appendLine(t, path, "x")

	ctx, cancel := context.WithCancel(context.Background())
	src, err := FollowFile(ctx, path, FollowConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	cancel()
	if _, err := src.ReadLine(); err == nil {
		t.Fatal("ReadLine after cancel did not end")
	}
}

func TestFollowMissingFileWaits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := FollowFile(ctx, path, FollowConfig{PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = src.Close() }()

	got := readLines(src, 1)
	appendLine(t, path, "hello world")

	lines := <-got
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Errorf("got %v, want [hello world]", lines)
	}
}
