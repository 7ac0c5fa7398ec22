package builtin

import (
	"context"
	"fmt"
	"math"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// Volatility scores realized price risk over the trailing month.
type Volatility struct {
	info cards.CardInfo
}

// NewVolatility creates the realized-volatility card bound to its
// catalog entry.
func NewVolatility(info cards.CardInfo) *Volatility {
	return &Volatility{info: info}
}

func (v *Volatility) CardID() string { return v.info.ID }

// Compute annualizes the 20-day standard deviation of daily returns.
// Calm tape scores high; this card votes on risk, so its sentiment is
// about holding comfort rather than direction.
func (v *Volatility) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	const window = 20
	if len(data.Prices) < window+1 {
		return contracts.CardOutput{}, fmt.Errorf("volatility: need at least %d bars, have %d", window+1, len(data.Prices))
	}

	returns := make([]float64, 0, window)
	for i := 0; i < window; i++ {
		prev := data.Prices[i+1].Close
		if prev == 0 {
			return contracts.CardOutput{}, fmt.Errorf("volatility: zero close in history")
		}
		returns = append(returns, (data.Prices[i].Close-prev)/prev)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	annualized := math.Sqrt(variance) * math.Sqrt(252)

	// 25% annualized is the reference midpoint; 65%+ pins the score low.
	score := clampScore(50 + (0.25-annualized)*125)

	sentiment := contracts.SentimentNeutral
	if annualized > 0.50 {
		sentiment = contracts.SentimentBearish
	}

	var insight contracts.Insight
	switch {
	case annualized > 0.50:
		insight = contracts.Insight{
			Kind:              contracts.InsightWeakness,
			Text:              "Realized volatility is in the highest band; position sizing matters more than entry",
			Priority:          1,
			RelatedMetricKeys: []string{"realized_vol_20d"},
		}
	case annualized < 0.15:
		insight = contracts.Insight{
			Kind:              contracts.InsightStrength,
			Text:              "The tape has been unusually calm over the last month",
			Priority:          2,
			RelatedMetricKeys: []string{"realized_vol_20d"},
		}
	default:
		insight = contracts.Insight{
			Kind:              contracts.InsightObservation,
			Text:              "Volatility sits in a normal band for a single stock",
			Priority:          3,
			RelatedMetricKeys: []string{"realized_vol_20d"},
		}
	}

	return contracts.CardOutput{
		CardID:         v.info.ID,
		CardCategory:   v.info.Category,
		Symbol:         data.Symbol,
		AsOf:           data.AsOf,
		Headline:       fmt.Sprintf("Annualized 20-day volatility %.0f%%", annualized*100),
		Sentiment:      sentiment,
		Confidence:     confidenceFor(len(data.Prices), window+1),
		SignalStrength: strengthFor(score),
		KeyMetrics: []contracts.MetricValue{
			{Label: "Realized volatility (20d, annualized)", Key: "realized_vol_20d", Value: annualized, Quality: qualityForVol(annualized), Format: contracts.FormatPercent, Priority: 1},
		},
		Insights:       []contracts.Insight{insight},
		SuggestedCards: []string{"momentum_trend"},
		Tags:           []string{"risk"},
		ScoreContribution: contracts.ScoreContribution{
			Category: v.info.Category,
			Score:    score,
			Weight:   v.info.Weight,
		},
	}, nil
}

func qualityForVol(vol float64) contracts.MetricQuality {
	switch {
	case vol < 0.15:
		return contracts.QualityExcellent
	case vol < 0.25:
		return contracts.QualityGood
	case vol < 0.40:
		return contracts.QualityNeutral
	case vol < 0.60:
		return contracts.QualityFair
	default:
		return contracts.QualityPoor
	}
}
