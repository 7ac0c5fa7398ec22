package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
)

// risingHistory builds n bars with a steady daily gain, most recent first.
func risingHistory(n int, dailyGain float64) []cards.PricePoint {
	prices := make([]cards.PricePoint, n)
	price := 100.0
	for i := n - 1; i >= 0; i-- {
		prices[i] = cards.PricePoint{
			Date:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			Close:  price,
			Volume: 1_000_000,
		}
		price *= 1 + dailyGain
	}
	return prices
}

func symbolData(prices []cards.PricePoint, f cards.Fundamentals) cards.SymbolData {
	return cards.SymbolData{
		Symbol:       "AAPL",
		AsOf:         time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Prices:       prices,
		Fundamentals: f,
	}
}

func TestMomentum_Compute(t *testing.T) {
	info := cards.CardInfo{ID: "momentum_trend", Category: "momentum", Weight: 0.8}
	m := NewMomentum(info)

	out, err := m.Compute(context.Background(), symbolData(risingHistory(80, 0.005), cards.Fundamentals{}))
	require.NoError(t, err)

	assert.Equal(t, "momentum_trend", out.CardID)
	assert.Equal(t, "momentum", out.ScoreContribution.Category)
	assert.Equal(t, 0.8, out.ScoreContribution.Weight)
	assert.Equal(t, contracts.SentimentBullish, out.Sentiment, "steady riser must read bullish")
	assert.GreaterOrEqual(t, out.SignalStrength, 1)
	assert.LessOrEqual(t, out.SignalStrength, 5)
	assert.GreaterOrEqual(t, out.ScoreContribution.Score, 0.0)
	assert.LessOrEqual(t, out.ScoreContribution.Score, 100.0)

	_, ok := out.MetricByKey("return_20d")
	assert.True(t, ok)
}

func TestMomentum_InsufficientHistory(t *testing.T) {
	m := NewMomentum(cards.CardInfo{ID: "momentum_trend", Category: "momentum", Weight: 0.8})

	_, err := m.Compute(context.Background(), symbolData(risingHistory(5, 0.01), cards.Fundamentals{}))
	assert.Error(t, err)
}

func TestTrend_Compute(t *testing.T) {
	tr := NewTrend(cards.CardInfo{ID: "moving_averages", Category: "technical", Weight: 0.7})

	out, err := tr.Compute(context.Background(), symbolData(risingHistory(80, 0.004), cards.Fundamentals{}))
	require.NoError(t, err)

	assert.Equal(t, contracts.SentimentBullish, out.Sentiment,
		"price stacked above rising averages must read bullish")

	sma20, ok := out.MetricByKey("sma_20")
	require.True(t, ok)
	sma50, ok := out.MetricByKey("sma_50")
	require.True(t, ok)
	assert.Greater(t, sma20.Value.(float64), sma50.Value.(float64))
}

func TestValuation_Compute(t *testing.T) {
	v := NewValuation(cards.CardInfo{ID: "valuation_multiples", Category: "fundamental", Weight: 0.9})

	cheap, err := v.Compute(context.Background(), symbolData(nil, cards.Fundamentals{PERatio: 8, PBRatio: 0.9}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentBullish, cheap.Sentiment)

	rich, err := v.Compute(context.Background(), symbolData(nil, cards.Fundamentals{PERatio: 60, PBRatio: 12}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentBearish, rich.Sentiment)

	// The cheap read includes a follow-up action with provenance.
	foundAction := false
	for _, ins := range cheap.Insights {
		if ins.Kind == contracts.InsightAction {
			foundAction = true
			assert.Contains(t, ins.RelatedMetricKeys, "pe_ratio")
		}
	}
	assert.True(t, foundAction)

	_, err = v.Compute(context.Background(), symbolData(nil, cards.Fundamentals{}))
	assert.Error(t, err, "no multiples at all is a producer failure, not a neutral vote")
}

func TestQuality_Compute(t *testing.T) {
	q := NewQuality(cards.CardInfo{ID: "balance_sheet_quality", Category: "quality", Weight: 0.6})

	strong, err := q.Compute(context.Background(), symbolData(nil, cards.Fundamentals{ROE: 0.28, DebtToEquity: 0.4}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentBullish, strong.Sentiment)

	levered, err := q.Compute(context.Background(), symbolData(nil, cards.Fundamentals{ROE: 0.02, DebtToEquity: 3.5}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentBearish, levered.Sentiment)
}

func TestVolatility_Compute(t *testing.T) {
	v := NewVolatility(cards.CardInfo{ID: "realized_volatility", Category: "risk", Weight: 1.0})

	calm, err := v.Compute(context.Background(), symbolData(risingHistory(30, 0.001), cards.Fundamentals{}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentNeutral, calm.Sentiment,
		"low volatility is comfort, not a directional call")
	assert.Greater(t, calm.ScoreContribution.Score, 50.0)

	// Alternating +8%/-8% days realize far above the 50% band.
	wild := make([]cards.PricePoint, 30)
	price := 100.0
	for i := 29; i >= 0; i-- {
		wild[i] = cards.PricePoint{Close: price}
		if i%2 == 0 {
			price *= 1.08
		} else {
			price *= 0.92
		}
	}
	stormy, err := v.Compute(context.Background(), symbolData(wild, cards.Fundamentals{}))
	require.NoError(t, err)
	assert.Equal(t, contracts.SentimentBearish, stormy.Sentiment)
	assert.Less(t, stormy.ScoreContribution.Score, 50.0)
}

func TestAll_HonorsRegistry(t *testing.T) {
	reg, err := cards.NewRegistry([]cards.CardInfo{
		{ID: "momentum_trend", Category: "momentum", Weight: 0.8},
		{ID: "realized_volatility", Category: "risk", Weight: 1.0},
	})
	require.NoError(t, err)

	producers := All(reg)
	require.Len(t, producers, 2, "only catalogued cards run")

	ids := make(map[string]bool)
	for _, p := range producers {
		ids[p.CardID()] = true
	}
	assert.True(t, ids["momentum_trend"])
	assert.True(t, ids["realized_volatility"])
}
