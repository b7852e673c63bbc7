package backtest

import (
	"time"

	"hindsight/internal/core"
	"hindsight/internal/strategy"
)

// position is the transient state of an open trade. It exists only inside
// the engine between an entry and the matching exit.
type position struct {
	entryPrice float64
	entryDate  time.Time
}

// Engine replays a price series day by day against a strategy source and
// produces a performance report.
//
// The engine enforces a one-bar execution lag: the signal computed from
// bars[0..i] is stored and filled at bar i+1's open on the next iteration,
// so a decision made with knowledge through day t's close can never be
// filled at day t's own price. The single exception is the cleanup phase,
// which marks a still-open position at the last bar's close because no
// further open exists.
//
// An Engine instance is single-use: construct a fresh one per
// (symbol, strategy, period) run.
type Engine struct {
	symbol string
	bars   []core.PriceBar
	source strategy.Source

	pos        *position
	prevSignal core.Signal
	ledger     *Ledger
	signals    map[core.Signal]int
	ran        bool
}

// New validates the price series and builds an engine. Fails with
// ErrInsufficientData when fewer than 2 bars are supplied.
func New(symbol string, bars []core.PriceBar, source strategy.Source) (*Engine, error) {
	if err := core.ValidateSeries(bars); err != nil {
		return nil, err
	}
	series := make([]core.PriceBar, len(bars))
	copy(series, bars)

	return &Engine{
		symbol:     symbol,
		bars:       series,
		source:     source,
		prevSignal: core.SignalHold,
		ledger:     NewLedger(),
		signals:    make(map[core.Signal]int),
	}, nil
}

// Run executes the simulation and derives the performance report.
// Calling Run a second time on the same instance fails.
func (e *Engine) Run() (*Report, error) {
	if e.ran {
		return nil, core.ErrEngineExhausted
	}
	e.ran = true

	last := len(e.bars) - 1
	for i, bar := range e.bars {
		// Execution phase: fill the signal carried from the prior bar at
		// this bar's open.
		if i > 0 {
			if err := e.execute(e.prevSignal, bar); err != nil {
				return nil, err
			}
		}

		// Signal phase: decide from the prefix through this bar's close.
		// The final bar gets no signal; there is no bar left to fill it.
		if i < last {
			e.prevSignal = e.source.CalculateSignal(e.bars[:i+1])
			e.signals[e.prevSignal]++
		}
	}

	// Cleanup phase: mark remaining exposure at the last known price.
	if e.pos != nil {
		if err := e.closePosition(e.bars[last].Close, e.bars[last].Date); err != nil {
			return nil, err
		}
	}

	return NewReport(e.symbol, e.bars[0].Date, e.bars[last].Date, e.ledger, e.bars)
}

// SignalCounts tallies the signals the source emitted during Run, keyed
// by signal kind. Empty before Run is called.
func (e *Engine) SignalCounts() map[core.Signal]int {
	counts := make(map[core.Signal]int, len(e.signals))
	for sig, n := range e.signals {
		counts[sig] = n
	}
	return counts
}

// execute applies one pending signal against the fill bar. Buy while in a
// position, sell while flat, and hold are all no-ops: the engine never
// stacks or shorts.
func (e *Engine) execute(pending core.Signal, fill core.PriceBar) error {
	if e.pos == nil {
		if pending == core.SignalBuy {
			e.pos = &position{entryPrice: fill.Open, entryDate: fill.Date}
		}
		return nil
	}
	if pending == core.SignalSell {
		return e.closePosition(fill.Open, fill.Date)
	}
	return nil
}

func (e *Engine) closePosition(exitPrice float64, exitDate time.Time) error {
	trade, err := NewTrade(e.symbol, e.pos.entryPrice, exitPrice, e.pos.entryDate, exitDate)
	if err != nil {
		return err
	}
	e.ledger.append(trade)
	e.pos = nil
	return nil
}
