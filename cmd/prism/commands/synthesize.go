package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// synthesizeCmd fuses a card batch from a JSON file
var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [symbol]",
	Short: "Fuse a card output batch into a composite verdict",
	Long: `Reads a JSON array of card outputs and prints the synthesized
composite for the symbol.

Example:
  go run ./cmd/prism synthesize AAPL --input batch.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSynthesize,
}

var synthesizeInput string

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().StringVar(&synthesizeInput, "input", "", "path to JSON card batch (required)")
	synthesizeCmd.MarkFlagRequired("input")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	raw, err := os.ReadFile(synthesizeInput)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}

	var batch []contracts.CardOutput
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("parse batch file: %w", err)
	}

	cmp, _, err := buildComposer(cfg, log, nil, nil)
	if err != nil {
		return err
	}

	result, err := cmp.SynthesizeBatch(context.Background(), symbol, batch)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
