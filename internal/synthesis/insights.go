package synthesis

import (
	"sort"

	"github.com/vivmac33/marketprism/internal/contracts"
)

// pooledInsight carries origin metadata needed for ranking and dedup.
type pooledInsight struct {
	contracts.RankedInsight
	originStrength int
}

// rankInsights pools every insight from every accepted card, ranks the
// pool, collapses near-duplicates, and returns the top-N.
//
// Rank order: kind tier (action, strength/weakness, observation), then
// insight priority ascending, then origin signal strength descending.
// Remaining ties break on (card id, text) so the output is identical
// under any permutation of the input batch.
func (e *Engine) rankInsights(accepted []*contracts.CardOutput) []contracts.RankedInsight {
	pool := make([]pooledInsight, 0)
	for _, out := range accepted {
		for _, ins := range out.Insights {
			pool = append(pool, pooledInsight{
				RankedInsight: contracts.RankedInsight{
					Insight:      ins,
					CardID:       out.CardID,
					CardCategory: out.CardCategory,
				},
				originStrength: out.SignalStrength,
			})
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if !a.Kind.SameRankAs(b.Kind) {
			return a.Kind.RanksBefore(b.Kind)
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.originStrength != b.originStrength {
			return a.originStrength > b.originStrength
		}
		if a.CardID != b.CardID {
			return a.CardID < b.CardID
		}
		return a.Text < b.Text
	})

	topN := e.policy.Insights.TopN
	kept := make([]contracts.RankedInsight, 0, topN)
	for _, cand := range pool {
		if len(kept) >= topN {
			break
		}
		if isDuplicate(kept, cand.RankedInsight) {
			continue
		}
		kept = append(kept, cand.RankedInsight)
	}

	return kept
}

// isDuplicate reports whether a candidate restates an already-kept
// insight: same kind, same card category, and at least one shared
// related metric key. The kept one ranks higher by construction.
func isDuplicate(kept []contracts.RankedInsight, cand contracts.RankedInsight) bool {
	if len(cand.RelatedMetricKeys) == 0 {
		return false
	}
	for _, k := range kept {
		if k.Kind != cand.Kind || k.CardCategory != cand.CardCategory {
			continue
		}
		if sharesKey(k.RelatedMetricKeys, cand.RelatedMetricKeys) {
			return true
		}
	}
	return false
}

func sharesKey(a, b []string) bool {
	for _, ka := range a {
		for _, kb := range b {
			if ka == kb {
				return true
			}
		}
	}
	return false
}
