package meanreversion

import (
	"fmt"

	"hindsight/internal/core"
	"hindsight/internal/indicator"
	"hindsight/internal/strategy"
)

const defaultPeriod = 14

// MeanReversion trades RSI extremes: buy oversold, sell once the
// oscillator recovers past the midpoint.
type MeanReversion struct {
	period        int
	buyThreshold  float64
	sellThreshold float64
}

// New creates a mean reversion source with the classic 14-period RSI,
// buying below 30 and selling above 50.
func New() *MeanReversion {
	return &MeanReversion{
		period:        defaultPeriod,
		buyThreshold:  30,
		sellThreshold: 50,
	}
}

func (m *MeanReversion) Name() string { return "mean_reversion" }

func (m *MeanReversion) Description() string {
	return fmt.Sprintf("RSI(%d) mean reversion (buy < %.0f, sell > %.0f)",
		m.period, m.buyThreshold, m.sellThreshold)
}

func (m *MeanReversion) Init(cfg strategy.Config) error {
	if period := cfg.IntParam("period", m.period); period > 0 {
		m.period = period
	}
	m.buyThreshold = cfg.FloatParam("buy_threshold", m.buyThreshold)
	m.sellThreshold = cfg.FloatParam("sell_threshold", m.sellThreshold)
	if m.buyThreshold >= m.sellThreshold {
		return core.ErrConfigInvalid
	}
	return nil
}

func (m *MeanReversion) CalculateSignal(history []core.PriceBar) core.Signal {
	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	rsi, ok := indicator.RSI(closes, m.period)
	if !ok {
		return core.SignalHold
	}

	switch {
	case rsi < m.buyThreshold:
		return core.SignalBuy
	case rsi > m.sellThreshold:
		return core.SignalSell
	default:
		return core.SignalHold
	}
}
