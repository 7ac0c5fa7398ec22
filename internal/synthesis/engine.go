package synthesis

import (
	"sort"
	"time"

	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/internal/policyconfig"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// CardCatalog answers whether a card id is known. Used to drop dangling
// follow-up suggestions. A nil catalog keeps every suggestion.
type CardCatalog interface {
	Has(cardID string) bool
}

// Engine fuses the card outputs produced for one symbol into a single
// CompositeResult. It is stateless: one pure pass over an
// already-materialized batch, safe to share across goroutines.
type Engine struct {
	policy  *policyconfig.Config
	catalog CardCatalog
	logger  *logger.Logger
}

// New creates a synthesis engine bound to a policy and card catalog.
func New(policy *policyconfig.Config, catalog CardCatalog, log *logger.Logger) *Engine {
	return &Engine{
		policy:  policy,
		catalog: catalog,
		logger:  log,
	}
}

// Synthesize folds a batch of card outputs for one symbol into one
// composite result. It is total: malformed entries are skipped with a
// recorded reason, an empty or fully-rejected batch yields a renderable
// all-insufficient result, and it never returns an error. Given the same
// input set in any order the result is identical.
func (e *Engine) Synthesize(symbol string, outputs []contracts.CardOutput) *contracts.CompositeResult {
	accepted := make([]*contracts.CardOutput, 0, len(outputs))
	skipped := make([]contracts.SkippedCard, 0)

	for i := range outputs {
		out := &outputs[i]
		if err := validate(symbol, out); err != nil {
			id := out.CardID
			if id == "" {
				id = "(unknown)"
			}
			skipped = append(skipped, contracts.SkippedCard{CardID: id, Reason: err.Error()})
			continue
		}
		accepted = append(accepted, out)
	}

	// Deterministic regardless of producer completion order.
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].CardID < accepted[j].CardID })
	sort.Slice(skipped, func(i, j int) bool {
		if skipped[i].CardID != skipped[j].CardID {
			return skipped[i].CardID < skipped[j].CardID
		}
		return skipped[i].Reason < skipped[j].Reason
	})

	categoryScores := e.normalizeCategories(accepted)
	sentiment, confidence := e.reconcileSentiment(accepted)

	result := &contracts.CompositeResult{
		Symbol:            symbol,
		AsOf:              minAsOf(accepted),
		CategoryScores:    categoryScores,
		OverallScore:      e.overallScore(categoryScores),
		OverallSentiment:  sentiment,
		OverallConfidence: confidence,
		TopInsights:       e.rankInsights(accepted),
		RecommendedCards:  e.recommendCards(accepted),
		SkippedCards:      skipped,
		AcceptedCount:     len(accepted),
	}

	if e.logger != nil {
		e.logger.WithFields(map[string]interface{}{
			"symbol":    symbol,
			"accepted":  len(accepted),
			"skipped":   len(skipped),
			"score":     result.OverallScore,
			"sentiment": result.OverallSentiment,
		}).Debug("Synthesized composite result")
	}

	return result
}

// minAsOf returns the oldest contributing timestamp: the composite must
// not claim freshness its stalest input does not have.
func minAsOf(accepted []*contracts.CardOutput) time.Time {
	var min time.Time
	for _, out := range accepted {
		if min.IsZero() || out.AsOf.Before(min) {
			min = out.AsOf
		}
	}
	return min
}
