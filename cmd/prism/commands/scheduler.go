package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/refdata"
	"github.com/vivmac33/marketprism/internal/scheduler"
	"github.com/vivmac33/marketprism/internal/scheduler/jobs"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/database"
	"github.com/vivmac33/marketprism/pkg/httputil"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// schedulerCmd runs the background job scheduler
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background job scheduler",
	Long: `Runs the cron scheduler with the standing jobs:

  watchlist_evaluation - re-synthesize composites for ENGINE_WATCHLIST
  fund_refresh         - re-import the fund reference table (weekly)

Example:
  go run ./cmd/prism scheduler --data-dir ./data`,
	RunE: runScheduler,
}

var schedulerDataDir string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&schedulerDataDir, "data-dir", "data", "directory with per-symbol JSON data files")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	cache := openCache(cfg, log)
	cmp, _, err := buildComposer(cfg, log, cache, nil)
	if err != nil {
		return err
	}

	sched := scheduler.New(log)

	source := cards.NewFileSource(schedulerDataDir)
	if err := sched.AddJob(jobs.NewEvaluateJob(cmp, source, cfg, log)); err != nil {
		return err
	}

	// Fund refresh needs both a database and a source URL.
	if cfg.Database.URL != "" && cfg.Importer.FundSourceURL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		httpClient := httputil.New(log).WithRateLimit(cfg.Importer.RatePerSecond)
		importer := refdata.NewImporter(httpClient, refdata.NewRepository(db.Pool), log)

		if err := sched.AddJob(jobs.NewRefreshFundsJob(importer, cfg, log)); err != nil {
			return err
		}
	} else {
		log.Warn("Fund refresh job disabled (needs DATABASE_URL and IMPORTER_FUND_SOURCE_URL)")
	}

	sched.Start()
	defer sched.Stop()

	log.WithField("jobs", sched.JobNames()).Info("Scheduler running")
	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
