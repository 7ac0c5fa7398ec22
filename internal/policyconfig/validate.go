package policyconfig

import "fmt"

// ValidationError reports a policy field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required policy constraints.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.PolicyID == "" {
		return ValidationError{"meta.policy_id", "required"}
	}

	// === Composite ===
	if len(cfg.Composite.WeightsPct) == 0 {
		return ValidationError{"composite.weights_pct", "at least one category required"}
	}
	for category, w := range cfg.Composite.WeightsPct {
		if w < 0 {
			return ValidationError{
				fmt.Sprintf("composite.weights_pct.%s", category),
				"must be >= 0",
			}
		}
	}
	if sum := cfg.Composite.Sum(); sum != 100 {
		return ValidationError{"composite.weights_pct", fmt.Sprintf("must sum to 100, got %d", sum)}
	}

	// === Sentiment ===
	if cfg.Sentiment.DeadbandPerCard < 0 {
		return ValidationError{"sentiment.deadband_per_card", "must be >= 0"}
	}
	if cfg.Sentiment.MediumAgreement <= 0 || cfg.Sentiment.MediumAgreement > 1 {
		return ValidationError{"sentiment.medium_agreement", "must be in (0, 1]"}
	}
	if cfg.Sentiment.HighAgreement <= cfg.Sentiment.MediumAgreement || cfg.Sentiment.HighAgreement > 1 {
		return ValidationError{"sentiment.high_agreement", "must be in (medium_agreement, 1]"}
	}

	// === Insights ===
	if cfg.Insights.TopN <= 0 {
		return ValidationError{"insights.top_n", "must be > 0"}
	}

	// === Recommendations ===
	if cfg.Recommendations.Max <= 0 {
		return ValidationError{"recommendations.max", "must be > 0"}
	}

	// === Runner ===
	if cfg.Runner.Workers <= 0 {
		return ValidationError{"runner.workers", "must be > 0"}
	}

	return nil
}
