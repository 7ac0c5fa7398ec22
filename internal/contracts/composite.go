package contracts

import "time"

// CategoryScore is the normalized per-category aggregate. When no card in
// a category carried usable weight the category is flagged insufficient
// instead of being given an invented midpoint score.
type CategoryScore struct {
	Category         string  `json:"category"`
	Score            float64 `json:"score"` // 0-100, meaningless if InsufficientData
	TotalWeight      float64 `json:"total_weight"`
	CardCount        int     `json:"card_count"`
	InsufficientData bool    `json:"insufficient_data"`
}

// RankedInsight is an insight tagged with its origin card for attribution.
type RankedInsight struct {
	Insight
	CardID       string `json:"card_id"`
	CardCategory string `json:"card_category"`
}

// RecommendedCard is a follow-up card suggestion with the number of
// distinct producers that suggested it.
type RecommendedCard struct {
	CardID     string `json:"card_id"`
	Suggesters int    `json:"suggesters"`
}

// SkippedCard records a producer output excluded from fusion and why.
type SkippedCard struct {
	CardID string `json:"card_id"`
	Reason string `json:"reason"`
}

// CompositeResult is the final per-symbol artifact of a fusion run.
// Created once per run, never mutated, only replaced by the next run.
type CompositeResult struct {
	Symbol string `json:"symbol"`

	// AsOf is the minimum as-of timestamp of the contributing cards: the
	// composite is only as fresh as its stalest input.
	AsOf time.Time `json:"as_of"`

	CategoryScores map[string]CategoryScore `json:"category_scores"`

	// OverallScore combines category scores using the configured
	// category weight table, renormalized over categories with data.
	OverallScore float64 `json:"overall_score"`

	OverallSentiment  Sentiment  `json:"overall_sentiment"`
	OverallConfidence Confidence `json:"overall_confidence"`

	TopInsights      []RankedInsight   `json:"top_insights"`
	RecommendedCards []RecommendedCard `json:"recommended_cards"`

	// SkippedCards is the diagnostic trail: rejected producers are
	// surfaced, not hidden.
	SkippedCards []SkippedCard `json:"skipped_cards"`

	AcceptedCount int `json:"accepted_count"`
}

// Category returns the score entry for a category.
func (r *CompositeResult) Category(name string) (CategoryScore, bool) {
	cs, ok := r.CategoryScores[name]
	return cs, ok
}

// HasSufficientData reports whether at least one category contributed to
// the overall score.
func (r *CompositeResult) HasSufficientData() bool {
	for _, cs := range r.CategoryScores {
		if !cs.InsufficientData {
			return true
		}
	}
	return false
}
