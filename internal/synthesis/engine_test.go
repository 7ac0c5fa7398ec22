package synthesis

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/internal/policyconfig"
	"github.com/vivmac33/marketprism/pkg/logger"
)

type fakeCatalog map[string]bool

func (f fakeCatalog) Has(id string) bool { return f[id] }

func newTestEngine(catalog CardCatalog) *Engine {
	return New(policyconfig.Default(), catalog, logger.NewNop())
}

func card(id, category string, score, weight float64, sentiment contracts.Sentiment, strength int) contracts.CardOutput {
	return contracts.CardOutput{
		CardID:         id,
		CardCategory:   category,
		Symbol:         "X",
		AsOf:           time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Sentiment:      sentiment,
		Confidence:     contracts.ConfidenceMedium,
		SignalStrength: strength,
		ScoreContribution: contracts.ScoreContribution{
			Category: category,
			Score:    score,
			Weight:   weight,
		},
	}
}

// Scenario from the product contract: two momentum cards and one risk
// card, near-balanced sentiment.
func exampleBatch() []contracts.CardOutput {
	return []contracts.CardOutput{
		card("mom_a", "momentum", 80, 1.0, contracts.SentimentBullish, 4),
		card("mom_b", "momentum", 40, 0.5, contracts.SentimentNeutral, 2),
		card("risk_c", "risk", 20, 1.0, contracts.SentimentBearish, 3),
	}
}

func TestSynthesize_ExampleScenario(t *testing.T) {
	e := newTestEngine(nil)
	result := e.Synthesize("X", exampleBatch())

	mom, ok := result.Category("momentum")
	require.True(t, ok)
	assert.False(t, mom.InsufficientData)
	assert.InDelta(t, 66.6667, mom.Score, 0.001)
	assert.Equal(t, 2, mom.CardCount)

	risk, ok := result.Category("risk")
	require.True(t, ok)
	assert.InDelta(t, 20.0, risk.Score, 0.001)

	// Signed sum +4 +0 -3 = +1; two directional cards give a deadband of
	// 1.0, so the batch sits exactly on the bullish side of the boundary.
	assert.Equal(t, contracts.SentimentBullish, result.OverallSentiment)

	// One of three cards agrees with the bullish read.
	assert.Equal(t, contracts.ConfidenceLow, result.OverallConfidence)

	assert.Equal(t, 3, result.AcceptedCount)
	assert.Empty(t, result.SkippedCards)
}

func TestSynthesize_DeterministicUnderPermutation(t *testing.T) {
	e := newTestEngine(nil)

	batch := exampleBatch()
	batch = append(batch,
		card("quality_d", "quality", 55, 0.7, contracts.SentimentNeutral, 1),
		card("macro_e", "macro", 35, 0.2, contracts.SentimentBearish, 2),
	)
	batch[0].Insights = []contracts.Insight{
		{Kind: contracts.InsightAction, Text: "Review position sizing", Priority: 1},
		{Kind: contracts.InsightStrength, Text: "Trend intact", Priority: 2, RelatedMetricKeys: []string{"trend"}},
	}
	batch[2].Insights = []contracts.Insight{
		{Kind: contracts.InsightWeakness, Text: "Drawdown risk elevated", Priority: 1, RelatedMetricKeys: []string{"var_95"}},
	}
	batch[0].SuggestedCards = []string{"vol_card", "beta_card"}
	batch[3].SuggestedCards = []string{"vol_card"}

	baseline := e.Synthesize("X", batch)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]contracts.CardOutput, len(batch))
		copy(shuffled, batch)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := e.Synthesize("X", shuffled)
		assert.Equal(t, baseline, got, "permutation %d changed the result", i)
	}
}

func TestSynthesize_MonotonicWeightInfluence(t *testing.T) {
	e := newTestEngine(nil)

	prev := -1.0
	for _, w := range []float64{0.1, 0.3, 0.5, 0.8, 1.0} {
		batch := []contracts.CardOutput{
			card("high", "momentum", 90, w, contracts.SentimentBullish, 3),
			card("low", "momentum", 30, 0.5, contracts.SentimentNeutral, 1),
		}
		result := e.Synthesize("X", batch)
		mom, _ := result.Category("momentum")

		assert.Greater(t, mom.Score, prev,
			"raising the high card's weight must move the category toward its score")
		prev = mom.Score
	}
}

func TestSynthesize_InsufficientDataNeverDefaults(t *testing.T) {
	e := newTestEngine(nil)

	batch := []contracts.CardOutput{
		card("zero_a", "macro", 80, 0, contracts.SentimentBullish, 3),
		card("zero_b", "macro", 20, 0, contracts.SentimentBearish, 3),
		card("mom", "momentum", 60, 1.0, contracts.SentimentBullish, 2),
	}
	result := e.Synthesize("X", batch)

	macro, ok := result.Category("macro")
	require.True(t, ok, "zero-weight category must still appear, flagged")
	assert.True(t, macro.InsufficientData)
	assert.Zero(t, macro.Score, "no invented midpoint")

	// macro must not drag the overall score: it equals momentum alone.
	assert.InDelta(t, 60.0, result.OverallScore, 0.001)
}

func TestSynthesize_ConfiguredCategoriesAlwaysPresent(t *testing.T) {
	e := newTestEngine(nil)
	result := e.Synthesize("X", []contracts.CardOutput{
		card("mom", "momentum", 60, 1.0, contracts.SentimentBullish, 2),
	})

	for category := range policyconfig.Default().Composite.WeightsPct {
		cs, ok := result.Category(category)
		require.True(t, ok, "configured category %s missing", category)
		if category != "momentum" {
			assert.True(t, cs.InsufficientData, "category %s should be flagged", category)
		}
	}
}

func TestSynthesize_RejectionIsolation(t *testing.T) {
	e := newTestEngine(nil)

	valid := exampleBatch()

	malformed := card("broken", "momentum", 50, 0.5, contracts.SentimentBullish, 9)
	withBad := append(append([]contracts.CardOutput{}, valid...), malformed)

	want := e.Synthesize("X", valid)
	got := e.Synthesize("X", withBad)

	require.Len(t, got.SkippedCards, 1)
	assert.Equal(t, "broken", got.SkippedCards[0].CardID)
	assert.Contains(t, got.SkippedCards[0].Reason, "signal strength")

	// Apart from the diagnostic trail the composite is unchanged.
	got.SkippedCards = nil
	want.SkippedCards = nil
	assert.Equal(t, want, got)
}

func TestSynthesize_ValidationReasons(t *testing.T) {
	e := newTestEngine(nil)

	tests := []struct {
		name   string
		mutate func(*contracts.CardOutput)
		reason string
	}{
		{"wrong symbol", func(c *contracts.CardOutput) { c.Symbol = "Y" }, "symbol mismatch"},
		{"strength too low", func(c *contracts.CardOutput) { c.SignalStrength = 0 }, "signal strength"},
		{"score above range", func(c *contracts.CardOutput) { c.ScoreContribution.Score = 140 }, "score"},
		{"negative weight", func(c *contracts.CardOutput) { c.ScoreContribution.Weight = -0.1 }, "weight"},
		{"empty card id", func(c *contracts.CardOutput) { c.CardID = "" }, "empty card id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := card("bad", "momentum", 50, 0.5, contracts.SentimentBullish, 3)
			tt.mutate(&bad)

			result := e.Synthesize("X", []contracts.CardOutput{bad})
			require.Len(t, result.SkippedCards, 1)
			assert.Contains(t, result.SkippedCards[0].Reason, tt.reason)
			assert.Zero(t, result.AcceptedCount)
		})
	}
}

func TestSynthesize_EmptyBatch(t *testing.T) {
	e := newTestEngine(nil)
	result := e.Synthesize("X", nil)

	assert.Equal(t, "X", result.Symbol)
	assert.Equal(t, contracts.SentimentNeutral, result.OverallSentiment)
	assert.Equal(t, contracts.ConfidenceLow, result.OverallConfidence)
	assert.False(t, result.HasSufficientData())
	assert.Zero(t, result.OverallScore)
	assert.Empty(t, result.TopInsights)
	assert.Empty(t, result.RecommendedCards)
}

func TestSynthesize_InsightDedup(t *testing.T) {
	e := newTestEngine(nil)

	a := card("rsi_card", "technical", 70, 0.8, contracts.SentimentBullish, 4)
	a.Insights = []contracts.Insight{
		{Kind: contracts.InsightStrength, Text: "RSI recovering from oversold", Priority: 1, RelatedMetricKeys: []string{"rsi_14"}},
	}

	// Same kind, same category, shares a related key: must collapse.
	b := card("stoch_card", "technical", 65, 0.6, contracts.SentimentBullish, 2)
	b.CardCategory = "technical"
	a.CardCategory = "technical"
	b.Insights = []contracts.Insight{
		{Kind: contracts.InsightStrength, Text: "Oscillators turning up", Priority: 2, RelatedMetricKeys: []string{"rsi_14", "stoch_k"}},
	}

	// Same key but different kind: survives.
	c := card("risk_card", "risk", 40, 0.5, contracts.SentimentBearish, 3)
	c.Insights = []contracts.Insight{
		{Kind: contracts.InsightWeakness, Text: "Oversold can stay oversold", Priority: 1, RelatedMetricKeys: []string{"rsi_14"}},
	}

	result := e.Synthesize("X", []contracts.CardOutput{a, b, c})

	texts := make([]string, 0, len(result.TopInsights))
	for _, ins := range result.TopInsights {
		texts = append(texts, ins.Text)
	}

	assert.Contains(t, texts, "RSI recovering from oversold")
	assert.NotContains(t, texts, "Oscillators turning up", "same-category restatement must collapse")
	assert.Contains(t, texts, "Oversold can stay oversold")
}

func TestSynthesize_InsightRankOrder(t *testing.T) {
	e := newTestEngine(nil)

	a := card("a", "momentum", 70, 0.8, contracts.SentimentBullish, 2)
	a.Insights = []contracts.Insight{
		{Kind: contracts.InsightObservation, Text: "obs", Priority: 1},
		{Kind: contracts.InsightAction, Text: "act", Priority: 5},
	}
	b := card("b", "risk", 30, 0.5, contracts.SentimentBearish, 5)
	b.Insights = []contracts.Insight{
		{Kind: contracts.InsightWeakness, Text: "weak-strong-origin", Priority: 2},
	}
	c := card("c", "quality", 50, 0.5, contracts.SentimentNeutral, 1)
	c.Insights = []contracts.Insight{
		{Kind: contracts.InsightStrength, Text: "strength-weak-origin", Priority: 2},
	}

	result := e.Synthesize("X", []contracts.CardOutput{a, b, c})
	require.Len(t, result.TopInsights, 4)

	// Actions outrank everything despite a worse priority; within the
	// strength/weakness tier equal priority breaks on origin strength.
	assert.Equal(t, "act", result.TopInsights[0].Text)
	assert.Equal(t, "weak-strong-origin", result.TopInsights[1].Text)
	assert.Equal(t, "strength-weak-origin", result.TopInsights[2].Text)
	assert.Equal(t, "obs", result.TopInsights[3].Text)
}

func TestSynthesize_TopNLimit(t *testing.T) {
	policy := policyconfig.Default()
	policy.Insights.TopN = 2
	e := New(policy, nil, logger.NewNop())

	a := card("a", "momentum", 70, 0.8, contracts.SentimentBullish, 2)
	a.Insights = []contracts.Insight{
		{Kind: contracts.InsightStrength, Text: "one", Priority: 1},
		{Kind: contracts.InsightStrength, Text: "two", Priority: 2},
		{Kind: contracts.InsightStrength, Text: "three", Priority: 3},
	}

	result := e.Synthesize("X", []contracts.CardOutput{a})
	assert.Len(t, result.TopInsights, 2)
}

func TestSynthesize_RecommendedCards(t *testing.T) {
	catalog := fakeCatalog{
		"vol_card":  true,
		"beta_card": true,
	}
	e := newTestEngine(catalog)

	a := card("a", "momentum", 70, 0.8, contracts.SentimentBullish, 2)
	a.SuggestedCards = []string{"vol_card", "ghost_card"}
	b := card("b", "risk", 30, 0.5, contracts.SentimentBearish, 3)
	b.SuggestedCards = []string{"vol_card", "beta_card"}

	result := e.Synthesize("X", []contracts.CardOutput{a, b})
	require.Len(t, result.RecommendedCards, 2, "dangling ghost_card must be dropped")

	assert.Equal(t, "vol_card", result.RecommendedCards[0].CardID)
	assert.Equal(t, 2, result.RecommendedCards[0].Suggesters)
	assert.Equal(t, "beta_card", result.RecommendedCards[1].CardID)
}

func TestSynthesize_AsOfIsOldestInput(t *testing.T) {
	e := newTestEngine(nil)

	fresh := card("fresh", "momentum", 70, 0.8, contracts.SentimentBullish, 2)
	fresh.AsOf = time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	stale := card("stale", "risk", 30, 0.5, contracts.SentimentBearish, 3)
	stale.AsOf = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	result := e.Synthesize("X", []contracts.CardOutput{fresh, stale})
	assert.Equal(t, stale.AsOf, result.AsOf,
		"composite freshness is bounded by the stalest contributor")
}
