// Package main provides the entry point for the pagelint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pagelint.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagelint",
		Short: "Browser-based validation for marketing-site pages",
		Long: `pagelint validates marketing-site pages in a real browser.
It probes UI components (navigation, carousels, hero banners, product
lists, dependent filter dropdowns), checks every link's HTTP status,
and writes timestamped reports in text, JSON, Markdown, HTML, and
Excel formats.

Runs are persisted so that two runs of the same page can be compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewDataCenterCmd())
	cmd.AddCommand(NewSeriesCmd())
	cmd.AddCommand(NewCompareCmd())
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
