package synthesis

import (
	"math"

	"github.com/vivmac33/marketprism/internal/contracts"
)

// reconcileSentiment folds every accepted card's sentiment vote into one
// overall sentiment/confidence pair.
//
// The deadband threshold is directional_card_count * deadband_per_card:
// the signed sum is neutral when |sum| < threshold. Neutral votes carry
// no conviction, so they do not widen the deadband; a batch of one
// bullish card and nine neutrals still reads bullish.
func (e *Engine) reconcileSentiment(accepted []*contracts.CardOutput) (contracts.Sentiment, contracts.Confidence) {
	if len(accepted) == 0 {
		return contracts.SentimentNeutral, contracts.ConfidenceLow
	}

	sum := 0
	directional := 0
	for _, out := range accepted {
		mag := out.SignedMagnitude()
		sum += mag
		if mag != 0 {
			directional++
		}
	}

	overall := contracts.SentimentNeutral
	deadband := float64(directional) * e.policy.Sentiment.DeadbandPerCard
	switch {
	case math.Abs(float64(sum)) < deadband:
		overall = contracts.SentimentNeutral
	case sum > 0:
		overall = contracts.SentimentBullish
	case sum < 0:
		overall = contracts.SentimentBearish
	}

	// Confidence comes from vote dispersion, not the sum: a narrow
	// majority must not masquerade as high conviction.
	agreeing := 0
	for _, out := range accepted {
		if out.Sentiment == overall {
			agreeing++
		}
	}
	agreement := float64(agreeing) / float64(len(accepted))

	confidence := contracts.ConfidenceLow
	switch {
	case agreement >= e.policy.Sentiment.HighAgreement:
		confidence = contracts.ConfidenceHigh
	case agreement >= e.policy.Sentiment.MediumAgreement:
		confidence = contracts.ConfidenceMedium
	}

	return overall, confidence
}
