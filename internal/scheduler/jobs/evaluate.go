package jobs

import (
	"context"
	"fmt"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/composer"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// SymbolDataSource supplies the raw inputs the card producers need.
type SymbolDataSource interface {
	Fetch(ctx context.Context, symbol string) (cards.SymbolData, error)
}

// EvaluateJob re-synthesizes composites for every watchlist symbol
type EvaluateJob struct {
	composer *composer.Composer
	source   SymbolDataSource
	config   *config.Config
	logger   *logger.Logger
}

// NewEvaluateJob creates a new watchlist evaluation job
func NewEvaluateJob(cmp *composer.Composer, source SymbolDataSource, cfg *config.Config, log *logger.Logger) *EvaluateJob {
	return &EvaluateJob{
		composer: cmp,
		source:   source,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *EvaluateJob) Name() string {
	return "watchlist_evaluation"
}

// Schedule returns the cron schedule from configuration
func (j *EvaluateJob) Schedule() string {
	return j.config.Engine.CronSpec
}

// Run evaluates every watchlist symbol. A symbol that fails to load
// does not stop the remaining symbols.
func (j *EvaluateJob) Run(ctx context.Context) error {
	watchlist := j.config.Engine.Watchlist
	j.logger.WithField("symbols", len(watchlist)).Info("Starting watchlist evaluation")

	var failed int
	for _, symbol := range watchlist {
		data, err := j.source.Fetch(ctx, symbol)
		if err != nil {
			failed++
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to load symbol data")
			continue
		}

		result, err := j.composer.Evaluate(ctx, data)
		if err != nil {
			failed++
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to evaluate symbol")
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"symbol":    symbol,
			"score":     result.OverallScore,
			"sentiment": result.OverallSentiment,
		}).Info("Symbol evaluated")
	}

	if failed == len(watchlist) && len(watchlist) > 0 {
		return fmt.Errorf("all %d watchlist symbols failed", failed)
	}

	return nil
}
