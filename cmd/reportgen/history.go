package main

import (
	"fmt"

	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/store"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded research runs",
		Long: `History lists past pipeline runs recorded in the run-history database.

Each line shows the run ID, completion time, outcome, dataset source,
and target URL. Use the ID with future tooling to inspect a stored run.

Examples:
  # Show the 20 most recent runs
  reportgen history

  # Show the 5 most recent runs
  reportgen history -n 5

  # Show every recorded run
  reportgen history -n 0`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the run-history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	db, err := store.Open(dbDir, store.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no run history found (run the pipeline first): %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only access

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-20s %-8s %-12s %s\n",
		"ID", "COMPLETED", "STATUS", "SOURCE", "TARGET")
	for _, run := range runs {
		status := "ok"
		if !run.Succeeded {
			status = "failed"
		}
		source := run.DatasetSource
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-6d %-20s %-8s %-12s %s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			status,
			source,
			run.TargetURL,
		)
	}

	return nil
}
