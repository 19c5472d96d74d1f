package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fieldscan/internal/linesource"
	"fieldscan/internal/tokenizer"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <glob>...",
		Short: "Validate that every row in the matching files fits the expected field count",
		Long:  "Parse every file matching the given glob patterns and report rows whose field count exceeds the count established by each file's first usable line. Files are checked concurrently.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFromCmd(cmd)
			if err != nil {
				return err
			}
			cfg := configFromCmd(cmd)

			paths, err := discoverFiles(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files match %v", args)
			}

			var malformed atomic.Int64
			g := new(errgroup.Group)
			g.SetLimit(runtime.GOMAXPROCS(0))

			for _, path := range paths {
				g.Go(func() error {
					rows, bad, err := checkFile(path, cfg, logger)
					if err != nil {
						return fmt.Errorf("check %s: %w", path, err)
					}
					malformed.Add(bad)
					logger.Info("checked", "file", path, "rows", rows, "malformed", bad)
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}
			if n := malformed.Load(); n > 0 {
				return fmt.Errorf("%d malformed rows across %d files", n, len(paths))
			}
			return nil
		},
	}
}

// checkFile parses one file to exhaustion, counting valid and malformed
// rows. Malformed rows are logged and skipped; only transport errors abort.
func checkFile(path string, cfg tokenizer.Config, logger *slog.Logger) (rows, malformed int64, err error) {
	src, err := linesource.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = src.Close() }()

	tok := tokenizer.New(src, cfg)
	for {
		_, err := tok.Next()
		if errors.Is(err, tokenizer.ErrNoMoreRows) {
			return rows, malformed, nil
		}
		var rowErr *tokenizer.RowError
		if errors.As(err, &rowErr) {
			malformed++
			logger.Warn("malformed row", "file", path, "field", rowErr.Index, "expected", rowErr.Expected, "line", rowErr.Line)
			continue
		}
		if err != nil {
			return rows, malformed, err
		}
		rows++
	}
}

// discoverFiles returns deduplicated absolute paths of regular files
// matching any of the given glob patterns.
func discoverFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			pattern = filepath.Join(wd, pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				continue
			}
			info, err := os.Stat(abs)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !seen[abs] {
				seen[abs] = true
				result = append(result, abs)
			}
		}
	}

	return result, nil
}
