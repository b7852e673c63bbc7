package trendfollower

import (
	"fmt"

	"hindsight/internal/core"
	"hindsight/internal/indicator"
	"hindsight/internal/strategy"
)

// TrendFollower holds a position while the close sits above its long
// moving average and steps aside below it.
type TrendFollower struct {
	period int
}

// New creates a trend follower on the classic 200-day average.
func New() *TrendFollower {
	return &TrendFollower{period: 200}
}

func (f *TrendFollower) Name() string { return "trend_follower" }

func (f *TrendFollower) Description() string {
	return fmt.Sprintf("price above/below %d-day SMA", f.period)
}

func (f *TrendFollower) Init(cfg strategy.Config) error {
	if _, ok := cfg.Params["period"]; ok {
		period := cfg.IntParam("period", 0)
		if period <= 0 {
			return core.ErrConfigInvalid
		}
		f.period = period
	}
	return nil
}

func (f *TrendFollower) CalculateSignal(history []core.PriceBar) core.Signal {
	if len(history) < f.period {
		return core.SignalHold
	}

	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	sma := indicator.SMA(closes, f.period)
	ma := sma[len(sma)-1]
	today := closes[len(closes)-1]

	switch {
	case today > ma:
		return core.SignalBuy
	case today < ma:
		return core.SignalSell
	default:
		return core.SignalHold
	}
}
