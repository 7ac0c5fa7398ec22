package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/internal/refdata"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/database"
	"github.com/vivmac33/marketprism/pkg/httputil"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// importFundsCmd triggers a one-shot fund table import
var importFundsCmd = &cobra.Command{
	Use:   "import-funds",
	Short: "Import the fund reference table from the configured source",
	Long: `Scrapes the fund listing page at IMPORTER_FUND_SOURCE_URL and
upserts the rows into the reference schema.

Example:
  go run ./cmd/prism import-funds
  go run ./cmd/prism import-funds --url https://example.com/funds`,
	RunE: runImportFunds,
}

var importFundsURL string

func init() {
	rootCmd.AddCommand(importFundsCmd)

	importFundsCmd.Flags().StringVar(&importFundsURL, "url", "", "source URL (overrides IMPORTER_FUND_SOURCE_URL)")
}

func runImportFunds(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	sourceURL := cfg.Importer.FundSourceURL
	if importFundsURL != "" {
		sourceURL = importFundsURL
	}
	if sourceURL == "" {
		return fmt.Errorf("no source URL: set IMPORTER_FUND_SOURCE_URL or pass --url")
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	httpClient := httputil.New(log).WithRateLimit(cfg.Importer.RatePerSecond)
	importer := refdata.NewImporter(httpClient, refdata.NewRepository(db.Pool), log)

	count, err := importer.ImportFunds(context.Background(), sourceURL)
	if err != nil {
		return fmt.Errorf("import funds: %w", err)
	}

	fmt.Printf("Imported %d funds\n", count)
	return nil
}
