package synthesis

import (
	"fmt"

	"github.com/vivmac33/marketprism/internal/contracts"
)

// validate guards the fusion boundary. A violation excludes the single
// card from the batch and is reported as the skip reason; it is never
// fatal to the batch.
func validate(symbol string, out *contracts.CardOutput) error {
	if out.CardID == "" {
		return fmt.Errorf("empty card id")
	}

	if out.Symbol != symbol {
		return fmt.Errorf("symbol mismatch: card reports %q, batch is for %q", out.Symbol, symbol)
	}

	if out.SignalStrength < 1 || out.SignalStrength > 5 {
		return fmt.Errorf("signal strength %d outside [1,5]", out.SignalStrength)
	}

	sc := out.ScoreContribution
	if sc.Score < 0 || sc.Score > 100 {
		return fmt.Errorf("score %.2f outside [0,100]", sc.Score)
	}
	if sc.Weight < 0 || sc.Weight > 1 {
		return fmt.Errorf("weight %.3f outside [0,1]", sc.Weight)
	}

	return nil
}
