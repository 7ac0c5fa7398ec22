package jobs

import (
	"context"

	"github.com/vivmac33/marketprism/internal/refdata"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// RefreshFundsJob re-imports the fund reference table weekly
type RefreshFundsJob struct {
	importer *refdata.Importer
	config   *config.Config
	logger   *logger.Logger
}

// NewRefreshFundsJob creates a new fund refresh job
func NewRefreshFundsJob(importer *refdata.Importer, cfg *config.Config, log *logger.Logger) *RefreshFundsJob {
	return &RefreshFundsJob{
		importer: importer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshFundsJob) Name() string {
	return "fund_refresh"
}

// Schedule returns the cron schedule (Sunday 3 AM)
func (j *RefreshFundsJob) Schedule() string {
	return "0 0 3 * * 0"
}

// Run executes the fund import
func (j *RefreshFundsJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled fund refresh")

	count, err := j.importer.ImportFunds(ctx, j.config.Importer.FundSourceURL)
	if err != nil {
		return err
	}

	j.logger.WithField("funds", count).Info("Fund refresh completed")
	return nil
}
