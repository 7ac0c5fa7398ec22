package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// evaluateCmd runs the builtin cards against on-disk symbol data
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [symbol]",
	Short: "Run the builtin cards on a symbol and print the composite",
	Long: `Loads <data-dir>/<SYMBOL>.json, runs every registered builtin
card against it and prints the synthesized composite.

Example:
  go run ./cmd/prism evaluate AAPL --data-dir ./data`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

var evaluateDataDir string

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateDataDir, "data-dir", "data", "directory with per-symbol JSON data files")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	source := cards.NewFileSource(evaluateDataDir)
	data, err := source.Fetch(context.Background(), symbol)
	if err != nil {
		return err
	}

	cmp, _, err := buildComposer(cfg, log, nil, nil)
	if err != nil {
		return err
	}

	result, err := cmp.Evaluate(context.Background(), data)
	if err != nil {
		return err
	}

	return printJSON(result)
}
