package cards

import (
	"context"
	"time"

	"github.com/vivmac33/marketprism/internal/contracts"
)

// Producer is one independent analytical card. Compute must be a pure
// function of the snapshot it is handed: no shared mutable state, no
// ordering dependency on other producers.
type Producer interface {
	CardID() string
	Compute(ctx context.Context, data SymbolData) (contracts.CardOutput, error)
}

// PricePoint is one daily bar, most recent first.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Fundamentals is the point-in-time fundamental snapshot for a symbol.
type Fundamentals struct {
	PERatio       float64 `json:"pe_ratio"`
	PBRatio       float64 `json:"pb_ratio"`
	ROE           float64 `json:"roe"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	RevenueGrowth float64 `json:"revenue_growth"`
	DividendYield float64 `json:"dividend_yield"`
}

// SymbolData is the materialized input a producer computes from. How it
// was gathered is the caller's concern; producers never fetch.
type SymbolData struct {
	Symbol       string       `json:"symbol"`
	AsOf         time.Time    `json:"as_of"`
	Prices       []PricePoint `json:"prices"`
	Fundamentals Fundamentals `json:"fundamentals"`
}

// Return computes the fractional price change over the last n bars.
// Returns 0 when history is too short.
func (d SymbolData) Return(days int) float64 {
	if len(d.Prices) < days+1 {
		return 0
	}
	current := d.Prices[0].Close
	past := d.Prices[days].Close
	if past == 0 {
		return 0
	}
	return (current - past) / past
}

// SMA computes the simple moving average of the last n closes.
func (d SymbolData) SMA(days int) float64 {
	if days <= 0 || len(d.Prices) < days {
		return 0
	}
	sum := 0.0
	for i := 0; i < days; i++ {
		sum += d.Prices[i].Close
	}
	return sum / float64(days)
}
