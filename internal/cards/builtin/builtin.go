// Package builtin holds the analysis cards that ship with the dashboard.
// Each card is an independent producer of the standard output envelope;
// the synthesis engine neither knows nor cares how a score was computed.
package builtin

import (
	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// All returns the full builtin producer set, each bound to its catalog
// entry from the registry. Cards missing from the registry are skipped:
// the catalog decides what runs.
func All(registry *cards.Registry) []cards.Producer {
	producers := make([]cards.Producer, 0, 5)

	if info, ok := registry.Get("momentum_trend"); ok {
		producers = append(producers, NewMomentum(info))
	}
	if info, ok := registry.Get("moving_averages"); ok {
		producers = append(producers, NewTrend(info))
	}
	if info, ok := registry.Get("valuation_multiples"); ok {
		producers = append(producers, NewValuation(info))
	}
	if info, ok := registry.Get("balance_sheet_quality"); ok {
		producers = append(producers, NewQuality(info))
	}
	if info, ok := registry.Get("realized_volatility"); ok {
		producers = append(producers, NewVolatility(info))
	}

	return producers
}

// DefaultRegistry returns a catalog covering every builtin card,
// mirroring config/cards.yaml.
func DefaultRegistry() (*cards.Registry, error) {
	return cards.NewRegistry([]cards.CardInfo{
		{ID: "momentum_trend", Title: "Price Momentum", Category: "momentum", Weight: 1.0},
		{ID: "moving_averages", Title: "Moving Average Trend", Category: "technical", Weight: 0.8},
		{ID: "valuation_multiples", Title: "Valuation Multiples", Category: "fundamental", Weight: 1.0},
		{ID: "balance_sheet_quality", Title: "Balance Sheet Quality", Category: "quality", Weight: 0.9},
		{ID: "realized_volatility", Title: "Realized Volatility", Category: "risk", Weight: 0.7},
	})
}

// sentimentFor maps a 0-100 card score to a directional read. The middle
// band is neutral so a barely-above-average score does not vote.
func sentimentFor(score float64) contracts.Sentiment {
	switch {
	case score >= 60:
		return contracts.SentimentBullish
	case score <= 40:
		return contracts.SentimentBearish
	default:
		return contracts.SentimentNeutral
	}
}

// strengthFor maps distance from the neutral midpoint to conviction 1-5.
func strengthFor(score float64) int {
	dist := score - 50
	if dist < 0 {
		dist = -dist
	}
	s := int(dist/10) + 1
	if s > 5 {
		s = 5
	}
	return s
}

// confidenceFor reflects how much history backed the computation.
func confidenceFor(samples, wanted int) contracts.Confidence {
	switch {
	case samples >= wanted:
		return contracts.ConfidenceHigh
	case samples >= wanted/2:
		return contracts.ConfidenceMedium
	default:
		return contracts.ConfidenceLow
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
