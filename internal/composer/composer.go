// Package composer coordinates card evaluation, synthesis, caching and
// fan-out. It is the one place the pipeline is wired together.
package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/internal/synthesis"
	"github.com/vivmac33/marketprism/pkg/logger"
	"github.com/vivmac33/marketprism/pkg/redis"
)

// Broadcaster pushes newly synthesized results to connected dashboard
// clients. A nil broadcaster is fine; results are then only cached.
type Broadcaster interface {
	Broadcast(result *contracts.CompositeResult)
}

// Composer runs the evaluate-synthesize-publish cycle for one symbol.
type Composer struct {
	runner *cards.Runner
	engine *synthesis.Engine
	cache  *redis.Cache
	hub    Broadcaster
	ttl    time.Duration
	logger *logger.Logger
}

// New creates a composer.
func New(runner *cards.Runner, engine *synthesis.Engine, cache *redis.Cache, hub Broadcaster, ttl time.Duration, log *logger.Logger) *Composer {
	return &Composer{
		runner: runner,
		engine: engine,
		cache:  cache,
		hub:    hub,
		ttl:    ttl,
		logger: log,
	}
}

// SynthesizeBatch fuses an externally produced batch of card outputs,
// publishes the result and returns it. The engine is total, so this
// only fails on publication problems.
func (c *Composer) SynthesizeBatch(ctx context.Context, symbol string, outputs []contracts.CardOutput) (*contracts.CompositeResult, error) {
	result := c.engine.Synthesize(symbol, outputs)
	c.publish(ctx, result)
	return result, nil
}

// Evaluate runs every registered producer against the snapshot, fuses
// the outputs and publishes the result. Producer failures shrink the
// evidence pool and are folded into the diagnostic trail.
func (c *Composer) Evaluate(ctx context.Context, data cards.SymbolData) (*contracts.CompositeResult, error) {
	if data.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	outputs, failures := c.runner.Evaluate(ctx, data)

	result := c.engine.Synthesize(data.Symbol, outputs)
	for _, f := range failures {
		result.SkippedCards = append(result.SkippedCards, contracts.SkippedCard{
			CardID: f.CardID,
			Reason: fmt.Sprintf("producer failed: %s", f.Reason),
		})
	}

	c.publish(ctx, result)
	return result, nil
}

// Latest returns the cached composite for a symbol, if any.
func (c *Composer) Latest(ctx context.Context, symbol string) (*contracts.CompositeResult, bool, error) {
	if c.cache == nil {
		return nil, false, nil
	}

	var result contracts.CompositeResult
	found, err := c.cache.Get(ctx, cacheKey(symbol), &result)
	if err != nil || !found {
		return nil, false, err
	}
	return &result, true, nil
}

// publish caches the result and fans it out. Publication failures are
// logged, never propagated: the caller still gets its composite.
func (c *Composer) publish(ctx context.Context, result *contracts.CompositeResult) {
	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey(result.Symbol), result, c.ttl); err != nil {
			c.logger.WithError(err).WithField("symbol", result.Symbol).Warn("Failed to cache composite result")
		}
	}

	if c.hub != nil {
		c.hub.Broadcast(result)
	}
}

func cacheKey(symbol string) string {
	return "composite:" + symbol
}
