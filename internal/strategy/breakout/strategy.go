package breakout

import (
	"fmt"

	"hindsight/internal/core"
	"hindsight/internal/indicator"
	"hindsight/internal/strategy"
)

// Breakout buys when the close tags its trailing high and sells when it
// breaks down through its trailing low.
type Breakout struct {
	entryLookback int
	exitLookback  int
}

// New creates a breakout source with a 20-day entry channel and a 10-day
// exit channel.
func New() *Breakout {
	return &Breakout{entryLookback: 20, exitLookback: 10}
}

func (b *Breakout) Name() string { return "momentum_breakout" }

func (b *Breakout) Description() string {
	return fmt.Sprintf("%d-day breakout entry, %d-day breakdown exit",
		b.entryLookback, b.exitLookback)
}

func (b *Breakout) Init(cfg strategy.Config) error {
	if entry := cfg.IntParam("entry_lookback", b.entryLookback); entry > 0 {
		b.entryLookback = entry
	}
	if exit := cfg.IntParam("exit_lookback", b.exitLookback); exit > 0 {
		b.exitLookback = exit
	}
	if b.exitLookback > b.entryLookback {
		return core.ErrConfigInvalid
	}
	return nil
}

func (b *Breakout) CalculateSignal(history []core.PriceBar) core.Signal {
	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	high, ok := indicator.HighestOver(closes, b.entryLookback)
	if !ok {
		return core.SignalHold
	}
	low, _ := indicator.LowestOver(closes, b.exitLookback)

	today := closes[len(closes)-1]
	switch {
	case today >= high:
		return core.SignalBuy
	case today <= low:
		return core.SignalSell
	default:
		return core.SignalHold
	}
}
