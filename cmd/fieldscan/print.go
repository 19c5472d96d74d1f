package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fieldscan/internal/linesource"
	"fieldscan/internal/tokenizer"
)

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print parsed records, one tab-joined line each",
		Long:  "Parse the file (or stdin when no file or \"-\" is given) and print each record's fields joined by tabs. Useful for normalizing ragged whitespace into clean columns.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("rows")

			src, err := openArg(args)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			tok := tokenizer.New(src, configFromCmd(cmd))
			printed := 0
			for rec, err := range tok.Records() {
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rec, "\t"))
				printed++
				if limit > 0 && printed >= limit {
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().IntP("rows", "n", 0, "stop after this many records (0 = all)")
	return cmd
}

// openArg opens the single optional file argument, defaulting to stdin.
func openArg(args []string) (linesource.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		return linesource.NewReader(os.Stdin, "stdin"), nil
	}
	return linesource.Open(args[0])
}
