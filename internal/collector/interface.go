package collector

import (
	"context"
	"time"

	"hindsight/internal/core"
)

// HistoryProvider fetches daily price bars for a symbol over a date range.
// All market-data retrieval happens through this boundary before a backtest
// engine is constructed; the simulation itself never performs I/O.
// Name identifies the provider in logs and metric labels.
type HistoryProvider interface {
	Name() string
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]core.PriceBar, error)
}

// Periods maps the supported lookback presets to calendar days.
var Periods = map[string]int{
	"1mo": 30,
	"6mo": 180,
	"1y":  365,
	"5y":  1825,
}

// PeriodRange resolves a preset against the given end date.
// Returns false for an unknown preset.
func PeriodRange(period string, end time.Time) (time.Time, time.Time, bool) {
	days, ok := Periods[period]
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return end.AddDate(0, 0, -days), end, true
}
