package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/internal/policyconfig"
	"github.com/vivmac33/marketprism/internal/synthesis"
	"github.com/vivmac33/marketprism/pkg/logger"
)

type stubProducer struct {
	id  string
	out contracts.CardOutput
	err error
}

func (p stubProducer) CardID() string { return p.id }

func (p stubProducer) Compute(ctx context.Context, data cards.SymbolData) (contracts.CardOutput, error) {
	if p.err != nil {
		return contracts.CardOutput{}, p.err
	}
	return p.out, nil
}

type recordingHub struct {
	results []*contracts.CompositeResult
}

func (h *recordingHub) Broadcast(result *contracts.CompositeResult) {
	h.results = append(h.results, result)
}

func validOutput(cardID, symbol string) contracts.CardOutput {
	return contracts.CardOutput{
		CardID:         cardID,
		CardCategory:   "momentum",
		Symbol:         symbol,
		AsOf:           time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Headline:       "test",
		Sentiment:      contracts.SentimentBullish,
		Confidence:     contracts.ConfidenceHigh,
		SignalStrength: 3,
		ScoreContribution: contracts.ScoreContribution{
			Category: "momentum",
			Score:    70,
			Weight:   1.0,
		},
	}
}

func newTestComposer(t *testing.T, producers []cards.Producer, hub Broadcaster) *Composer {
	t.Helper()

	log := logger.NewNop()
	engine := synthesis.New(policyconfig.Default(), nil, log)
	runner := cards.NewRunner(producers, 2, log)

	return New(runner, engine, nil, hub, time.Minute, log)
}

func TestSynthesizeBatchBroadcasts(t *testing.T) {
	hub := &recordingHub{}
	cmp := newTestComposer(t, nil, hub)

	batch := []contracts.CardOutput{validOutput("momentum_trend", "AAPL")}
	result, err := cmp.SynthesizeBatch(context.Background(), "AAPL", batch)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, 1, result.AcceptedCount)
	require.Len(t, hub.results, 1)
	assert.Same(t, result, hub.results[0])
}

func TestEvaluateFoldsProducerFailures(t *testing.T) {
	producers := []cards.Producer{
		stubProducer{id: "momentum_trend", out: validOutput("momentum_trend", "AAPL")},
		stubProducer{id: "broken_card", err: errors.New("no data")},
	}
	cmp := newTestComposer(t, producers, nil)

	result, err := cmp.Evaluate(context.Background(), cards.SymbolData{Symbol: "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.AcceptedCount)
	require.Len(t, result.SkippedCards, 1)
	assert.Equal(t, "broken_card", result.SkippedCards[0].CardID)
	assert.Contains(t, result.SkippedCards[0].Reason, "producer failed")
}

func TestEvaluateRequiresSymbol(t *testing.T) {
	cmp := newTestComposer(t, nil, nil)

	_, err := cmp.Evaluate(context.Background(), cards.SymbolData{})
	assert.Error(t, err)
}

func TestLatestWithoutCache(t *testing.T) {
	cmp := newTestComposer(t, nil, nil)

	result, found, err := cmp.Latest(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, result)
}
