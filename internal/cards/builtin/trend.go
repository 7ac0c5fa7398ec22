package builtin

import (
	"context"
	"fmt"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// Trend reads the 20/50-day moving average structure.
type Trend struct {
	info cards.CardInfo
}

// NewTrend creates the moving-average card bound to its catalog entry.
func NewTrend(info cards.CardInfo) *Trend {
	return &Trend{info: info}
}

func (t *Trend) CardID() string { return t.info.ID }

// Compute scores the symbol's trend from price position versus the
// short and long moving averages.
func (t *Trend) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	if len(data.Prices) < 50 {
		return contracts.CardOutput{}, fmt.Errorf("trend: need at least 50 bars, have %d", len(data.Prices))
	}

	price := data.Prices[0].Close
	sma20 := data.SMA(20)
	sma50 := data.SMA(50)
	if sma20 == 0 || sma50 == 0 {
		return contracts.CardOutput{}, fmt.Errorf("trend: degenerate price history")
	}

	aboveShort := (price - sma20) / sma20
	shortAboveLong := (sma20 - sma50) / sma50

	score := clampScore(50 + aboveShort*300 + shortAboveLong*500)
	sentiment := sentimentFor(score)

	var insight contracts.Insight
	switch {
	case price > sma20 && sma20 > sma50:
		insight = contracts.Insight{
			Kind:              contracts.InsightStrength,
			Text:              "Price is stacked above both moving averages; the uptrend is intact",
			Priority:          1,
			RelatedMetricKeys: []string{"sma_20", "sma_50"},
		}
	case price < sma20 && sma20 < sma50:
		insight = contracts.Insight{
			Kind:              contracts.InsightWeakness,
			Text:              "Price is below both moving averages; trend pressure is downward",
			Priority:          1,
			RelatedMetricKeys: []string{"sma_20", "sma_50"},
		}
	default:
		insight = contracts.Insight{
			Kind:              contracts.InsightObservation,
			Text:              "Moving averages are crossed; the trend is in transition",
			Priority:          2,
			RelatedMetricKeys: []string{"sma_20", "sma_50"},
		}
	}

	return contracts.CardOutput{
		CardID:         t.info.ID,
		CardCategory:   t.info.Category,
		Symbol:         data.Symbol,
		AsOf:           data.AsOf,
		Headline:       fmt.Sprintf("Price %+.1f%% versus the 20-day average", aboveShort*100),
		Sentiment:      sentiment,
		Confidence:     confidenceFor(len(data.Prices), 50),
		SignalStrength: strengthFor(score),
		KeyMetrics: []contracts.MetricValue{
			{Label: "20-day average", Key: "sma_20", Value: sma20, Quality: contracts.QualityNeutral, Format: contracts.FormatCurrency, Priority: 2},
			{Label: "50-day average", Key: "sma_50", Value: sma50, Quality: contracts.QualityNeutral, Format: contracts.FormatCurrency, Priority: 3},
			{Label: "Distance to 20-day", Key: "dist_sma_20", Value: aboveShort, Quality: qualityForReturn(aboveShort), Format: contracts.FormatPercent, Priority: 1},
		},
		Insights:       []contracts.Insight{insight},
		SuggestedCards: []string{"momentum_trend"},
		Tags:           []string{"technical", "trend"},
		ScoreContribution: contracts.ScoreContribution{
			Category: t.info.Category,
			Score:    score,
			Weight:   t.info.Weight,
		},
	}, nil
}
