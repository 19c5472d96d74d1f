package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fieldscan/internal/table"
	"fieldscan/internal/tokenizer"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize numeric columns: count, min, max, mean, sum",
		Long:  "Read the whole file (or stdin) as a table and print per-column statistics. The first usable row names the columns unless --no-header is given. Non-numeric columns show dashes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noHeader, _ := cmd.Flags().GetBool("no-header")

			src, err := openArg(args)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			tok := tokenizer.New(src, configFromCmd(cmd))
			tbl, err := table.Read(tok, table.Options{NoHeader: noHeader})
			if err != nil {
				return err
			}
			if len(tbl.Rows) == 0 {
				return fmt.Errorf("%s: no data rows", tbl.Source)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tCOUNT\tMIN\tMAX\tMEAN\tSUM")
			for col := range tbl.NumColumns() {
				label := "#" + strconv.Itoa(col)
				if col < len(tbl.Columns) {
					label = tbl.Columns[col]
				}

				stats, err := tbl.Stats(col)
				if err != nil || stats.Count == 0 {
					fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\n", label)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%g\t%g\t%g\t%g\n",
					label, stats.Count, stats.Min, stats.Max, stats.Mean, stats.Sum)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Bool("no-header", false, "treat the first row as data, not column names")
	return cmd
}
