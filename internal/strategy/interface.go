package strategy

import "hindsight/internal/core"

// Config holds strategy configuration
type Config struct {
	Enabled bool
	Params  map[string]any
}

// Source defines the interface for signal-generating strategies.
//
// CalculateSignal receives the ordered price history from series start
// through the current decision day inclusive, and must be a pure function
// of that prefix: no peeking at later bars, no state carried between
// calls. Execution timing is the backtest engine's concern, never the
// strategy's. A source handed too short a prefix returns SignalHold.
type Source interface {
	Name() string
	Description() string
	Init(cfg Config) error
	CalculateSignal(history []core.PriceBar) core.Signal
}
