package policyconfig

// Config is the synthesis policy: every constant the engine folds with
// lives here rather than in code.
type Config struct {
	Meta            Meta            `yaml:"meta" json:"meta"`
	Composite       Composite       `yaml:"composite" json:"composite"`
	Sentiment       Sentiment       `yaml:"sentiment" json:"sentiment"`
	Insights        Insights        `yaml:"insights" json:"insights"`
	Recommendations Recommendations `yaml:"recommendations" json:"recommendations"`
	Runner          Runner          `yaml:"runner" json:"runner"`
}

// Meta identifies the policy for audit trails.
type Meta struct {
	PolicyID string `yaml:"policy_id" json:"policy_id"`
	Version  string `yaml:"version" json:"version"`
}

// Composite maps card categories to their share of the overall score.
// Integer percentages, must sum to 100.
type Composite struct {
	WeightsPct map[string]int `yaml:"weights_pct" json:"weights_pct"`
}

// Sum returns the sum of all category weights.
func (c Composite) Sum() int {
	total := 0
	for _, w := range c.WeightsPct {
		total += w
	}
	return total
}

// Sentiment holds the reconciliation policy constants.
type Sentiment struct {
	// DeadbandPerCard scales the neutral zone: the signed magnitude sum
	// is treated as neutral when |sum| < card_count * DeadbandPerCard.
	DeadbandPerCard float64 `yaml:"deadband_per_card" json:"deadband_per_card"`

	// Agreement fraction thresholds for overall confidence.
	HighAgreement   float64 `yaml:"high_agreement" json:"high_agreement"`
	MediumAgreement float64 `yaml:"medium_agreement" json:"medium_agreement"`
}

// Insights bounds the ranked insight list.
type Insights struct {
	TopN int `yaml:"top_n" json:"top_n"`
}

// Recommendations bounds the follow-up card list.
type Recommendations struct {
	Max int `yaml:"max" json:"max"`
}

// Runner configures parallel card evaluation.
type Runner struct {
	Workers int `yaml:"workers" json:"workers"`
}
