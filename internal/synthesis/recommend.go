package synthesis

import (
	"sort"

	"github.com/vivmac33/marketprism/internal/contracts"
)

// recommendCards unions the suggested-card lists of all accepted outputs.
// Suggestions pointing at cards the catalog does not know are dropped, a
// card never recommends itself into the list it came from, and ordering
// favors cards named by multiple distinct producers (ties break on card
// id for determinism).
func (e *Engine) recommendCards(accepted []*contracts.CardOutput) []contracts.RecommendedCard {
	suggesters := make(map[string]map[string]struct{})

	for _, out := range accepted {
		for _, id := range out.SuggestedCards {
			if id == "" || id == out.CardID {
				continue
			}
			if e.catalog != nil && !e.catalog.Has(id) {
				// dangling reference
				continue
			}
			if suggesters[id] == nil {
				suggesters[id] = make(map[string]struct{})
			}
			suggesters[id][out.CardID] = struct{}{}
		}
	}

	recs := make([]contracts.RecommendedCard, 0, len(suggesters))
	for id, who := range suggesters {
		recs = append(recs, contracts.RecommendedCard{CardID: id, Suggesters: len(who)})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Suggesters != recs[j].Suggesters {
			return recs[i].Suggesters > recs[j].Suggesters
		}
		return recs[i].CardID < recs[j].CardID
	})

	if max := e.policy.Recommendations.Max; len(recs) > max {
		recs = recs[:max]
	}
	return recs
}
