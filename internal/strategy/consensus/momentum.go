package consensus

import "hindsight/internal/core"

// MomentumScorer banks the trailing percentage change into score bands.
// Neutral (50) when the lookback window is not yet filled.
type MomentumScorer struct {
	Lookback int
}

func (m MomentumScorer) Name() string { return "momentum" }

func (m MomentumScorer) Score(history []core.PriceBar) float64 {
	lookback := m.Lookback
	if lookback <= 0 {
		lookback = 252
	}
	if len(history) < lookback+1 {
		return 50
	}

	then := history[len(history)-1-lookback].Close
	now := history[len(history)-1].Close
	momentum := (now - then) / then * 100

	switch {
	case momentum >= 20:
		return 100
	case momentum >= 10:
		return 80
	case momentum >= 0:
		return 60
	case momentum >= -10:
		return 40
	case momentum >= -20:
		return 20
	default:
		return 0
	}
}
