package builtin

import (
	"context"
	"fmt"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// Quality scores balance-sheet strength and profitability.
type Quality struct {
	info cards.CardInfo
}

// NewQuality creates the quality card bound to its catalog entry.
func NewQuality(info cards.CardInfo) *Quality {
	return &Quality{info: info}
}

func (q *Quality) CardID() string { return q.info.ID }

// Compute scores return on equity against leverage.
func (q *Quality) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	f := data.Fundamentals
	if f.ROE == 0 && f.DebtToEquity == 0 {
		return contracts.CardOutput{}, fmt.Errorf("quality: no fundamental data for %s", data.Symbol)
	}

	// 15% ROE is the reference midpoint; leverage above 1.0x drags.
	roeScore := clampScore(50 + (f.ROE-0.15)*200)
	debtScore := clampScore(50 + (1.0-f.DebtToEquity)*25)
	score := clampScore(roeScore*0.6 + debtScore*0.4)
	sentiment := sentimentFor(score)

	insights := []contracts.Insight{}
	if f.ROE > 0.20 && f.DebtToEquity < 1.0 {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightStrength,
			Text:              "High return on equity earned without heavy leverage",
			Priority:          1,
			RelatedMetricKeys: []string{"roe", "debt_to_equity"},
		})
	}
	if f.DebtToEquity > 2.0 {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightWeakness,
			Text:              "Debt runs at more than twice equity; earnings are levered",
			Priority:          1,
			RelatedMetricKeys: []string{"debt_to_equity"},
		})
	}
	if len(insights) == 0 {
		insights = append(insights, contracts.Insight{
			Kind:              contracts.InsightObservation,
			Text:              "Profitability and leverage are both unremarkable",
			Priority:          3,
			RelatedMetricKeys: []string{"roe", "debt_to_equity"},
		})
	}

	return contracts.CardOutput{
		CardID:         q.info.ID,
		CardCategory:   q.info.Category,
		Symbol:         data.Symbol,
		AsOf:           data.AsOf,
		Headline:       fmt.Sprintf("ROE %.1f%%, debt/equity %.1fx", f.ROE*100, f.DebtToEquity),
		Sentiment:      sentiment,
		Confidence:     contracts.ConfidenceMedium,
		SignalStrength: strengthFor(score),
		KeyMetrics: []contracts.MetricValue{
			{Label: "Return on equity", Key: "roe", Value: f.ROE, Quality: qualityForROE(f.ROE), Format: contracts.FormatPercent, Priority: 1},
			{Label: "Debt to equity", Key: "debt_to_equity", Value: f.DebtToEquity, Quality: contracts.QualityNeutral, Format: contracts.FormatNumber, Priority: 2},
			{Label: "Revenue growth", Key: "revenue_growth", Value: f.RevenueGrowth, Quality: qualityForReturn(f.RevenueGrowth), Format: contracts.FormatPercent, Priority: 3},
		},
		Insights:       insights,
		SuggestedCards: []string{"valuation_multiples"},
		Tags:           []string{"fundamental", "quality"},
		ScoreContribution: contracts.ScoreContribution{
			Category: q.info.Category,
			Score:    score,
			Weight:   q.info.Weight,
		},
	}, nil
}

func qualityForROE(roe float64) contracts.MetricQuality {
	switch {
	case roe > 0.25:
		return contracts.QualityExcellent
	case roe > 0.15:
		return contracts.QualityGood
	case roe > 0.05:
		return contracts.QualityNeutral
	case roe > 0:
		return contracts.QualityFair
	default:
		return contracts.QualityPoor
	}
}
