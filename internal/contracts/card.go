package contracts

import "time"

// Sentiment is a card's directional read on a symbol.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Confidence is a card's certainty in its own sentiment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ScoreContribution is a card's vote for its category's aggregate score.
type ScoreContribution struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`  // 0-100
	Weight   float64 `json:"weight"` // 0-1, the author's conviction in this vote
}

// CardOutput is the standardized envelope one analytical module produces
// for one symbol at one evaluation time. It is an immutable value object:
// produced fresh each evaluation, consumed once by the synthesis engine,
// superseded entirely on the next cycle.
type CardOutput struct {
	CardID       string `json:"card_id"`
	CardCategory string `json:"card_category"`

	Symbol string    `json:"symbol"`
	AsOf   time.Time `json:"as_of"`

	Headline   string     `json:"headline"`
	Sentiment  Sentiment  `json:"sentiment"`
	Confidence Confidence `json:"confidence"`

	// SignalStrength is the card's self-assessed conviction magnitude, 1-5.
	SignalStrength int `json:"signal_strength"`

	// KeyMetrics is in author-assigned display order, not priority order.
	KeyMetrics []MetricValue `json:"key_metrics,omitempty"`
	Insights   []Insight     `json:"insights,omitempty"`

	// SuggestedCards are weak references to other card ids; dangling ids
	// are tolerated.
	SuggestedCards []string `json:"suggested_cards,omitempty"`

	Tags []string `json:"tags,omitempty"`

	ScoreContribution ScoreContribution `json:"score_contribution"`
}

// SignedMagnitude maps sentiment and signal strength to a signed vote:
// bullish -> +strength, bearish -> -strength, neutral -> 0.
func (c *CardOutput) SignedMagnitude() int {
	switch c.Sentiment {
	case SentimentBullish:
		return c.SignalStrength
	case SentimentBearish:
		return -c.SignalStrength
	default:
		return 0
	}
}

// MetricByKey looks up a metric by its stable key.
func (c *CardOutput) MetricByKey(key string) (MetricValue, bool) {
	for _, m := range c.KeyMetrics {
		if m.Key == key {
			return m, true
		}
	}
	return MetricValue{}, false
}

// HasTag reports whether the card carries the given free-form label.
func (c *CardOutput) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
