package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/internal/ui"
	"github.com/stratusctl/stratus/pkg/types"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent log entries",
	Long: `Show the most recent entries from the operation log.

Examples:
  stratus logs           # Last 20 entries
  stratus logs -n 50     # Last 50 entries
  stratus logs -f        # Keep printing new entries until interrupted`,
	RunE: runLogs,
}

var (
	logsCount  int
	logsFollow bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsCount, "lines", "n", 20, "Number of entries to show")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Wait for new entries after printing the tail")
}

func runLogs(cmd *cobra.Command, args []string) error {
	entries, err := logging.Tail(GetLogFile(), logsCount)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	if len(entries) == 0 && !logsFollow {
		fmt.Println("Log file is empty")
		return nil
	}
	fmt.Print(ui.RenderLogEntries(entries))

	if !logsFollow {
		return nil
	}

	// The log file may not exist yet when following from a fresh install.
	if _, err := os.Stat(GetLogFile()); os.IsNotExist(err) {
		return fmt.Errorf("log file %s does not exist yet", GetLogFile())
	}

	return logging.Follow(cmd.Context(), GetLogFile(), func(e types.LogEntry) {
		fmt.Println(ui.RenderLogEntry(e))
	})
}
