package builtin

import (
	"context"
	"fmt"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// Valuation scores price multiples against broad-market reference bands.
type Valuation struct {
	info cards.CardInfo
}

// NewValuation creates the valuation card bound to its catalog entry.
func NewValuation(info cards.CardInfo) *Valuation {
	return &Valuation{info: info}
}

func (v *Valuation) CardID() string { return v.info.ID }

// Compute scores the symbol from P/E and P/B multiples. Cheap scores
// high: this card votes on value, not on glamour.
func (v *Valuation) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	f := data.Fundamentals
	if f.PERatio <= 0 && f.PBRatio <= 0 {
		return contracts.CardOutput{}, fmt.Errorf("valuation: no usable multiples for %s", data.Symbol)
	}

	peScore := 50.0
	if f.PERatio > 0 {
		// P/E of 15 is the reference midpoint; 35+ saturates expensive.
		peScore = clampScore(50 + (15-f.PERatio)*2.5)
	}
	pbScore := 50.0
	if f.PBRatio > 0 {
		pbScore = clampScore(50 + (2.0-f.PBRatio)*15)
	}

	score := clampScore(peScore*0.6 + pbScore*0.4)
	sentiment := sentimentFor(score)

	insights := []contracts.Insight{}
	if f.PERatio > 35 {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightWeakness,
			Text:              "Earnings multiple is rich; much of the growth story is already paid for",
			Priority:          1,
			RelatedMetricKeys: []string{"pe_ratio"},
		})
	} else if f.PERatio > 0 && f.PERatio < 10 {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightStrength,
			Text:              "Shares trade at a single-digit earnings multiple",
			Priority:          1,
			RelatedMetricKeys: []string{"pe_ratio"},
		})
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightAction,
			Text:              "Check whether the low multiple reflects a deteriorating business",
			Priority:          1,
			RelatedMetricKeys: []string{"pe_ratio"},
		})
	} else {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightObservation,
			Text:              "Multiples sit inside normal market bands",
			Priority:          3,
			RelatedMetricKeys: []string{"pe_ratio", "pb_ratio"},
		})
	}

	return contracts.CardOutput{
		CardID:         v.info.ID,
		CardCategory:   v.info.Category,
		Symbol:         data.Symbol,
		AsOf:           data.AsOf,
		Headline:       fmt.Sprintf("P/E %.1f, P/B %.1f", f.PERatio, f.PBRatio),
		Sentiment:      sentiment,
		Confidence:     contracts.ConfidenceMedium,
		SignalStrength: strengthFor(score),
		KeyMetrics: []contracts.MetricValue{
			{Label: "P/E ratio", Key: "pe_ratio", Value: f.PERatio, Quality: qualityForPE(f.PERatio), Format: contracts.FormatNumber, Priority: 1},
			{Label: "P/B ratio", Key: "pb_ratio", Value: f.PBRatio, Quality: contracts.QualityNeutral, Format: contracts.FormatNumber, Priority: 2},
		},
		Insights:       insights,
		SuggestedCards: []string{"balance_sheet_quality"},
		Tags:           []string{"fundamental", "valuation"},
		ScoreContribution: contracts.ScoreContribution{
			Category: v.info.Category,
			Score:    score,
			Weight:   v.info.Weight,
		},
	}, nil
}

func qualityForPE(pe float64) contracts.MetricQuality {
	switch {
	case pe <= 0:
		return contracts.QualityPoor
	case pe < 12:
		return contracts.QualityExcellent
	case pe < 20:
		return contracts.QualityGood
	case pe < 30:
		return contracts.QualityNeutral
	case pe < 45:
		return contracts.QualityFair
	default:
		return contracts.QualityPoor
	}
}
