package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fieldscan/internal/linesource"
	"fieldscan/internal/tokenizer"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Follow a growing file, validating and printing rows as they are appended",
		Long:  "Tail the file and run every appended line through the parser. Valid records are printed tab-joined; rows that overflow the expected field count are logged and skipped. Stops on interrupt.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFromCmd(cmd)
			if err != nil {
				return err
			}
			fromStart, _ := cmd.Flags().GetBool("from-start")
			poll, _ := cmd.Flags().GetDuration("poll")

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			src, err := linesource.FollowFile(ctx, args[0], linesource.FollowConfig{
				FromStart:    fromStart,
				PollInterval: poll,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			logger.Info("watching", "file", args[0], "from_start", fromStart)

			tok := tokenizer.New(src, configFromCmd(cmd))
			for {
				rec, err := tok.Next()
				if errors.Is(err, tokenizer.ErrNoMoreRows) {
					return nil
				}
				var rowErr *tokenizer.RowError
				if errors.As(err, &rowErr) {
					logger.Warn("malformed row", "field", rowErr.Index, "expected", rowErr.Expected, "line", rowErr.Line)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rec, "\t"))
			}
		},
	}

	cmd.Flags().Bool("from-start", false, "read existing content before waiting for appends")
	cmd.Flags().Duration("poll", 30*time.Second, "poll interval as a fallback for missed filesystem events (0 = events only)")
	return cmd
}
