package main

import (
	"os"
	"path/filepath"
	"testing"

	"fieldscan/internal/logging"
	"fieldscan/internal/tokenizer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name          string
		content       string
		wantRows      int64
		wantMalformed int64
	}{
		{
			name:     "clean file",
			content:  "# header\na b c\nd e f\n",
			wantRows: 2,
		},
		{
			name:          "overflow row skipped",
			content:       "a b\nx y z\nc d\n",
			wantRows:      2,
			wantMalformed: 1,
		},
		{
			name:     "blank lines skipped",
			content:  "a b\n\n\nc d\n",
			wantRows: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "data.txt", tt.content)
			rows, malformed, err := checkFile(path, tokenizer.DefaultConfig(), logging.Discard())
			if err != nil {
				t.Fatalf("checkFile: %v", err)
			}
			if rows != tt.wantRows || malformed != tt.wantMalformed {
				t.Errorf("rows=%d malformed=%d, want %d/%d", rows, malformed, tt.wantRows, tt.wantMalformed)
			}
		})
	}
}

func TestCheckFileMissing(t *testing.T) {
	if _, _, err := checkFile(filepath.Join(t.TempDir(), "nope"), tokenizer.DefaultConfig(), logging.Discard()); err == nil {
		t.Fatal("checkFile on missing file did not fail")
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "x\n")
	b := writeFile(t, dir, "b.txt", "y\n")
	writeFile(t, dir, "c.log", "z\n")

	got, err := discoverFiles([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want exactly %s and %s", got, a, b)
	}

	// Overlapping patterns must not duplicate.
	got, err = discoverFiles([]string{filepath.Join(dir, "*.txt"), filepath.Join(dir, "a.*")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d paths from overlapping globs, want 2", len(got))
	}
}
