package macross

import (
	"fmt"

	"hindsight/internal/core"
	"hindsight/internal/indicator"
	"hindsight/internal/strategy"
)

// MACross signals on moving average crossovers: a golden cross (fast
// crossing above slow) buys, a death cross sells.
type MACross struct {
	fastPeriod int
	slowPeriod int
}

// New creates an MA crossover source with the given periods.
func New(fastPeriod, slowPeriod int) *MACross {
	return &MACross{fastPeriod: fastPeriod, slowPeriod: slowPeriod}
}

func (m *MACross) Name() string { return "ma_crossover" }

func (m *MACross) Description() string {
	return fmt.Sprintf("MA crossover (%d/%d)", m.fastPeriod, m.slowPeriod)
}

func (m *MACross) Init(cfg strategy.Config) error {
	m.fastPeriod = cfg.IntParam("fast_period", m.fastPeriod)
	m.slowPeriod = cfg.IntParam("slow_period", m.slowPeriod)
	if m.fastPeriod <= 0 || m.slowPeriod <= m.fastPeriod {
		return core.ErrConfigInvalid
	}
	return nil
}

func (m *MACross) CalculateSignal(history []core.PriceBar) core.Signal {
	// Need one bar beyond the slow window to observe a crossing
	if len(history) < m.slowPeriod+1 {
		return core.SignalHold
	}

	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	fastMA := indicator.SMA(closes, m.fastPeriod)
	slowMA := indicator.SMA(closes, m.slowPeriod)
	if len(fastMA) < 2 || len(slowMA) < 2 {
		return core.SignalHold
	}

	currFast := fastMA[len(fastMA)-1]
	prevFast := fastMA[len(fastMA)-2]
	currSlow := slowMA[len(slowMA)-1]
	prevSlow := slowMA[len(slowMA)-2]

	// Golden cross: fast crosses above slow
	if prevFast <= prevSlow && currFast > currSlow {
		return core.SignalBuy
	}

	// Death cross: fast crosses below slow
	if prevFast >= prevSlow && currFast < currSlow {
		return core.SignalSell
	}

	return core.SignalHold
}
