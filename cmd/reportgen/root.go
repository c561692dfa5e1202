// Package main provides the entry point for the reportgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reportgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Automated research report generator",
		Long: `reportgen runs a small research pipeline against a web page:
it opens the page in a headless browser, extracts a tabular dataset
(or falls back to a built-in sample table), computes descriptive
statistics and correlations, renders a bar chart, and compiles a
self-contained HTML report plus a presentation outline.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
