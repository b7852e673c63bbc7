package consensus

import (
	"fmt"

	"hindsight/internal/core"
	"hindsight/internal/strategy"
)

// Default decision thresholds on the 0-100 blended score.
const (
	defaultBuyThreshold  = 70
	defaultSellThreshold = 30
)

// Scorer rates the asset 0-100 from the price history observed so far.
// External factor models (valuation ratios, analyst consensus) plug in
// here; the consensus source treats every scorer as a black box.
type Scorer interface {
	Name() string
	Score(history []core.PriceBar) float64
}

// WeightedScorer pairs a scorer with its share of the blended score.
type WeightedScorer struct {
	Scorer Scorer
	Weight float64
}

// Consensus blends weighted factor scores and trades the extremes of the
// result: buy at or above the buy threshold, sell at or below the sell
// threshold.
type Consensus struct {
	scorers       []WeightedScorer
	buyThreshold  float64
	sellThreshold float64
}

// New creates a consensus source over the given weighted scorers.
func New(scorers ...WeightedScorer) *Consensus {
	return &Consensus{
		scorers:       scorers,
		buyThreshold:  defaultBuyThreshold,
		sellThreshold: defaultSellThreshold,
	}
}

func (c *Consensus) Name() string { return "consensus" }

func (c *Consensus) Description() string {
	return fmt.Sprintf("weighted consensus of %d scorers (buy >= %.0f, sell <= %.0f)",
		len(c.scorers), c.buyThreshold, c.sellThreshold)
}

func (c *Consensus) Init(cfg strategy.Config) error {
	c.buyThreshold = cfg.FloatParam("buy_threshold", c.buyThreshold)
	c.sellThreshold = cfg.FloatParam("sell_threshold", c.sellThreshold)
	if c.sellThreshold >= c.buyThreshold {
		return core.ErrConfigInvalid
	}
	return nil
}

func (c *Consensus) CalculateSignal(history []core.PriceBar) core.Signal {
	if len(c.scorers) == 0 || len(history) == 0 {
		return core.SignalHold
	}

	var score, totalWeight float64
	for _, ws := range c.scorers {
		if ws.Weight <= 0 {
			continue
		}
		score += ws.Scorer.Score(history) * ws.Weight
		totalWeight += ws.Weight
	}
	if totalWeight == 0 {
		return core.SignalHold
	}
	score /= totalWeight

	switch {
	case score >= c.buyThreshold:
		return core.SignalBuy
	case score <= c.sellThreshold:
		return core.SignalSell
	default:
		return core.SignalHold
	}
}
