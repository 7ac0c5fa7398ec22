package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "MarketPrism - signal synthesis engine for the learning dashboard",
	Long: `MarketPrism Unified CLI

Aggregates heterogeneous analysis card outputs into a single
per-symbol composite verdict for the financial-education dashboard.

Usage:
  go run ./cmd/prism [command]

Examples:
  go run ./cmd/prism api
  go run ./cmd/prism synthesize AAPL --input batch.json
  go run ./cmd/prism evaluate AAPL --data-dir ./data
  go run ./cmd/prism scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
