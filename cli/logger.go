package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// newLogger builds the process logger from the persistent verbosity flags.
// Logs go to stderr; stdout belongs to the MCP transport.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
