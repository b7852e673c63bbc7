package backtest

import (
	"encoding/json"
	"time"

	"hindsight/internal/core"
)

// Trade is an immutable record of one completed round-trip. The derived
// fields are computed once at construction and never mutated.
type Trade struct {
	Symbol       string
	EntryPrice   float64
	ExitPrice    float64
	EntryDate    time.Time
	ExitDate     time.Time
	ReturnPct    float64
	DurationDays int
}

// NewTrade builds a closed trade and derives its return and duration.
// Fails with ErrInvalidTrade on a non-positive entry price.
func NewTrade(symbol string, entryPrice, exitPrice float64, entryDate, exitDate time.Time) (Trade, error) {
	if entryPrice <= 0 {
		return Trade{}, core.ErrInvalidTrade
	}
	return Trade{
		Symbol:       symbol,
		EntryPrice:   entryPrice,
		ExitPrice:    exitPrice,
		EntryDate:    entryDate,
		ExitDate:     exitDate,
		ReturnPct:    (exitPrice - entryPrice) / entryPrice * 100,
		DurationDays: core.DaysBetween(entryDate, exitDate),
	}, nil
}

// IsWin returns true if the trade was profitable
func (t Trade) IsWin() bool {
	return t.ReturnPct > 0
}

// MarshalJSON serializes dates as ISO-8601 calendar days.
func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol       string  `json:"symbol"`
		EntryPrice   float64 `json:"entry_price"`
		ExitPrice    float64 `json:"exit_price"`
		EntryDate    string  `json:"entry_date"`
		ExitDate     string  `json:"exit_date"`
		ReturnPct    float64 `json:"return_pct"`
		DurationDays int     `json:"duration_days"`
	}{
		Symbol:       t.Symbol,
		EntryPrice:   t.EntryPrice,
		ExitPrice:    t.ExitPrice,
		EntryDate:    t.EntryDate.Format("2006-01-02"),
		ExitDate:     t.ExitDate.Format("2006-01-02"),
		ReturnPct:    t.ReturnPct,
		DurationDays: t.DurationDays,
	})
}

// Ledger is the ordered sequence of completed trades. Trades are appended
// strictly in time order by the engine, so insertion order is chronological.
type Ledger struct {
	trades []Trade
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) append(t Trade) {
	l.trades = append(l.trades, t)
}

// Len returns the number of completed trades.
func (l *Ledger) Len() int {
	return len(l.trades)
}

// Trades returns a copy of the trade sequence.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}
