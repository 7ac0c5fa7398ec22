package cards

import (
	"context"
	"fmt"
	"sync"

	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// ProducerFailure records a producer that returned an error or panicked.
// The failed card is simply absent from the batch; the run never aborts.
type ProducerFailure struct {
	CardID string `json:"card_id"`
	Reason string `json:"reason"`
}

// Runner evaluates all registered producers for one symbol in parallel,
// bounded by a worker pool, and hands back the materialized batch.
type Runner struct {
	producers []Producer
	workers   int
	logger    *logger.Logger
}

// NewRunner creates a runner over a fixed producer set.
func NewRunner(producers []Producer, workers int, log *logger.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		producers: producers,
		workers:   workers,
		logger:    log,
	}
}

// Evaluate computes every card output for the snapshot. Producers are
// mutually independent pure functions, so order of completion carries no
// meaning; synthesis sorts the batch itself.
func (r *Runner) Evaluate(ctx context.Context, data SymbolData) ([]contracts.CardOutput, []ProducerFailure) {
	jobs := make(chan Producer)
	results := make(chan contracts.CardOutput, len(r.producers))
	failures := make(chan ProducerFailure, len(r.producers))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				r.runOne(ctx, p, data, results, failures)
			}
		}()
	}

	for _, p := range r.producers {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
	close(results)
	close(failures)

	outputs := make([]contracts.CardOutput, 0, len(r.producers))
	for out := range results {
		outputs = append(outputs, out)
	}

	failed := make([]ProducerFailure, 0)
	for f := range failures {
		failed = append(failed, f)
	}

	r.logger.WithFields(map[string]interface{}{
		"symbol":   data.Symbol,
		"produced": len(outputs),
		"failed":   len(failed),
	}).Debug("Card evaluation completed")

	return outputs, failed
}

// runOne isolates a single producer: an error or panic costs one card,
// never the batch.
func (r *Runner) runOne(ctx context.Context, p Producer, data SymbolData, results chan<- contracts.CardOutput, failures chan<- ProducerFailure) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(map[string]interface{}{
				"card":  p.CardID(),
				"panic": rec,
			}).Error("Producer panicked")
			failures <- ProducerFailure{
				CardID: p.CardID(),
				Reason: fmt.Sprintf("panic: %v", rec),
			}
		}
	}()

	out, err := p.Compute(ctx, data)
	if err != nil {
		r.logger.WithError(err).WithField("card", p.CardID()).Warn("Producer failed")
		failures <- ProducerFailure{CardID: p.CardID(), Reason: err.Error()}
		return
	}

	results <- out
}
