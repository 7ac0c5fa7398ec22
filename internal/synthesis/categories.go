package synthesis

import (
	"github.com/vivmac33/marketprism/internal/contracts"
)

// normalizeCategories groups accepted outputs by score contribution
// category and computes the weight-normalized mean per category.
// Categories configured in the composite weight table but reported by no
// card, and categories whose total weight is zero, are flagged
// insufficient rather than defaulted to a midpoint.
func (e *Engine) normalizeCategories(accepted []*contracts.CardOutput) map[string]contracts.CategoryScore {
	type bucket struct {
		weightedSum float64
		totalWeight float64
		count       int
	}

	buckets := make(map[string]*bucket)
	for _, out := range accepted {
		sc := out.ScoreContribution
		b, ok := buckets[sc.Category]
		if !ok {
			b = &bucket{}
			buckets[sc.Category] = b
		}
		b.weightedSum += sc.Score * sc.Weight
		b.totalWeight += sc.Weight
		b.count++
	}

	scores := make(map[string]contracts.CategoryScore)

	// Every configured category appears in the result, flagged when no
	// usable weight reached it.
	for category := range e.policy.Composite.WeightsPct {
		scores[category] = contracts.CategoryScore{
			Category:         category,
			InsufficientData: true,
		}
	}

	for category, b := range buckets {
		cs := contracts.CategoryScore{
			Category:    category,
			TotalWeight: b.totalWeight,
			CardCount:   b.count,
		}
		if b.totalWeight <= 0 {
			cs.InsufficientData = true
		} else {
			cs.Score = clamp(b.weightedSum/b.totalWeight, 0, 100)
		}
		scores[category] = cs
	}

	return scores
}

// overallScore folds category scores into one number using the composite
// weight table, renormalized over the categories that actually have data.
// A category reported by cards but absent from the table carries zero
// composite weight.
func (e *Engine) overallScore(scores map[string]contracts.CategoryScore) float64 {
	var weightedSum, totalWeight float64

	for category, pct := range e.policy.Composite.WeightsPct {
		cs, ok := scores[category]
		if !ok || cs.InsufficientData {
			continue
		}
		w := float64(pct)
		weightedSum += cs.Score * w
		totalWeight += w
	}

	if totalWeight <= 0 {
		return 0
	}
	return clamp(weightedSum/totalWeight, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
