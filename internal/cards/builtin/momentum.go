package builtin

import (
	"context"
	"fmt"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// Momentum scores recent price persistence over one and three months.
type Momentum struct {
	info cards.CardInfo
}

// NewMomentum creates the momentum card bound to its catalog entry.
func NewMomentum(info cards.CardInfo) *Momentum {
	return &Momentum{info: info}
}

func (m *Momentum) CardID() string { return m.info.ID }

// Compute scores the symbol's momentum from 20- and 60-day returns.
func (m *Momentum) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	if len(data.Prices) < 21 {
		return contracts.CardOutput{}, fmt.Errorf("momentum: need at least 21 bars, have %d", len(data.Prices))
	}

	return1M := data.Return(20)
	return3M := data.Return(60)

	// 1M return dominates; +/-20% over a month saturates the band.
	score := clampScore(50 + return1M*250 + return3M*50)
	sentiment := sentimentFor(score)

	insights := []contracts.Insight{}
	switch {
	case return1M > 0.05 && return3M > 0:
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightStrength,
			Text:              "Price has been rising on both one-month and three-month horizons",
			Priority:          1,
			RelatedMetricKeys: []string{"return_20d", "return_60d"},
		})
	case return1M < -0.05:
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightWeakness,
			Text:              "One-month return is sharply negative; recent sellers are in control",
			Priority:          1,
			RelatedMetricKeys: []string{"return_20d"},
		})
	default:
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightObservation,
			Text:              "Price action is range-bound over the last month",
			Priority:          2,
			RelatedMetricKeys: []string{"return_20d"},
		})
	}

	return contracts.CardOutput{
		CardID:         m.info.ID,
		CardCategory:   m.info.Category,
		Symbol:         data.Symbol,
		AsOf:           data.AsOf,
		Headline:       fmt.Sprintf("1-month return %+.1f%%, 3-month %+.1f%%", return1M*100, return3M*100),
		Sentiment:      sentiment,
		Confidence:     confidenceFor(len(data.Prices), 61),
		SignalStrength: strengthFor(score),
		KeyMetrics: []contracts.MetricValue{
			{Label: "20-day return", Key: "return_20d", Value: return1M, Quality: qualityForReturn(return1M), Format: contracts.FormatPercent, Priority: 1},
			{Label: "60-day return", Key: "return_60d", Value: return3M, Quality: qualityForReturn(return3M), Format: contracts.FormatPercent, Priority: 2},
		},
		Insights:       insights,
		SuggestedCards: []string{"moving_averages", "realized_volatility"},
		Tags:           []string{"technical", "price-action"},
		ScoreContribution: contracts.ScoreContribution{
			Category: m.info.Category,
			Score:    score,
			Weight:   m.info.Weight,
		},
	}, nil
}

func qualityForReturn(r float64) contracts.MetricQuality {
	switch {
	case r > 0.10:
		return contracts.QualityExcellent
	case r > 0.02:
		return contracts.QualityGood
	case r > -0.02:
		return contracts.QualityNeutral
	case r > -0.10:
		return contracts.QualityFair
	default:
		return contracts.QualityPoor
	}
}
