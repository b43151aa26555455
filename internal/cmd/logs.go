package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/panelkit/internal/config"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the panelkit log",
	Long: `Show entries from panelkit.log and its rotated backups, oldest first.

Examples:
  # Last 50 entries
  panelkit logs

  # Warnings and errors of one panel from the last hour
  panelkit logs --level warn --component panel/notes --since 1h

  # Everything mentioning navigation
  panelkit logs -n 0 --grep navigation`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail      int
	logsLevel     string
	logsComponent string
	logsSince     time.Duration
	logsGrep      string
)

func init() {
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "minimum level (debug, info, warn, error)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "only entries of this panel namespace")
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "only entries newer than this, e.g. 30m or 2h")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "only entries whose message contains this text")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := filepath.Join(cfg.LogDir(), logging.FileName)

	entries, err := logging.ReadEntries(path, cfg.Logging.MaxBackups)
	if err != nil {
		return errors.Wrap(err, "reading logs")
	}

	filter := logging.Filter{Level: logsLevel, Component: logsComponent, Contains: logsGrep}
	if logsSince > 0 {
		filter.Since = time.Now().Add(-logsSince)
	}
	var matched []logging.Entry
	for _, e := range entries {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}
	if logsTail > 0 && len(matched) > logsTail {
		matched = matched[len(matched)-logsTail:]
	}

	out := cmd.OutOrStdout()
	if len(matched) == 0 {
		fmt.Fprintf(out, "No log entries in %s\n", path)
		return nil
	}
	for _, e := range matched {
		fmt.Fprintln(out, e.String())
	}
	return nil
}
