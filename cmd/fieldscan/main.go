// Command fieldscan parses, validates, and summarizes flat
// delimiter-separated text files.
//
// Logging:
//   - Each command builds its base logger from the --log-level flag
//   - Loggers are passed to components via dependency injection
//   - No global slog configuration (no slog.SetDefault)
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fieldscan/internal/logging"
	"fieldscan/internal/tokenizer"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "fieldscan",
		Short:         "Parse and validate delimiter-separated text files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("delimiters", " \t", "bytes treated as field delimiters")
	rootCmd.PersistentFlags().Bool("no-group", false, "give each delimiter its own separator so runs produce empty fields")
	rootCmd.PersistentFlags().Bool("keep-blank", false, "parse blank lines instead of skipping them")

	rootCmd.AddCommand(
		newCheckCmd(),
		newPrintCmd(),
		newStatsCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loggerFromCmd builds the base logger from the persistent --log-level flag.
func loggerFromCmd(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// configFromCmd builds the tokenizer rules from the persistent flags.
func configFromCmd(cmd *cobra.Command) tokenizer.Config {
	delimiters, _ := cmd.Flags().GetString("delimiters")
	noGroup, _ := cmd.Flags().GetBool("no-group")
	keepBlank, _ := cmd.Flags().GetBool("keep-blank")

	cfg := tokenizer.DefaultConfig()
	cfg.GroupDelimiters = !noGroup
	cfg.SkipBlankLines = !keepBlank
	cfg.IsDelimiter = func(b byte) bool { return strings.IndexByte(delimiters, b) >= 0 }
	return cfg
}
