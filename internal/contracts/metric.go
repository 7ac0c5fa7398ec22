package contracts

// MetricQuality is a normalized judgment of whether a metric value is favorable.
type MetricQuality string

const (
	QualityExcellent MetricQuality = "excellent"
	QualityGood      MetricQuality = "good"
	QualityNeutral   MetricQuality = "neutral"
	QualityFair      MetricQuality = "fair"
	QualityPoor      MetricQuality = "poor"
)

// MetricFormat is a semantic display hint. Presentation-only, irrelevant to fusion.
type MetricFormat string

const (
	FormatPercent  MetricFormat = "percent"
	FormatNumber   MetricFormat = "number"
	FormatCurrency MetricFormat = "currency"
)

// MetricValue is one measured quantity attached to a card.
// Key must be unique within the owning card; cross-card key collisions
// are permitted (referenced, not redefined).
type MetricValue struct {
	Label    string        `json:"label"`
	Key      string        `json:"key"`
	Value    interface{}   `json:"value"` // numeric or categorical
	Quality  MetricQuality `json:"quality"`
	Format   MetricFormat  `json:"format"`
	Priority int           `json:"priority"` // 1 = most important
}

// InsightKind classifies a narrative observation.
type InsightKind string

const (
	InsightStrength    InsightKind = "strength"
	InsightWeakness    InsightKind = "weakness"
	InsightObservation InsightKind = "observation"
	InsightAction      InsightKind = "action"
)

// Insight is one narrative observation emitted by a card.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Text     string      `json:"text"`
	Priority int         `json:"priority"` // lower = more important

	// Provenance link to metrics in the same CardOutput. Dangling keys
	// are tolerated and simply not resolved.
	RelatedMetricKeys []string `json:"related_metric_keys,omitempty"`
}

// kindRank orders insight kinds for display: actions first, then
// strengths and weaknesses, observations last.
func (k InsightKind) kindRank() int {
	switch k {
	case InsightAction:
		return 0
	case InsightStrength, InsightWeakness:
		return 1
	case InsightObservation:
		return 2
	default:
		return 3
	}
}

// RanksBefore reports whether kind k outranks other in display order.
func (k InsightKind) RanksBefore(other InsightKind) bool {
	return k.kindRank() < other.kindRank()
}

// SameRankAs reports whether two kinds share a display tier.
func (k InsightKind) SameRankAs(other InsightKind) bool {
	return k.kindRank() == other.kindRank()
}
