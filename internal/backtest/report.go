package backtest

import (
	"encoding/json"
	"time"

	"hindsight/internal/core"
)

// Report is the performance summary derived from a completed ledger.
// All fields are computed eagerly at construction and never recomputed.
type Report struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Trades    []Trade

	NumTrades            int
	TotalReturnPct       float64
	BuyAndHoldReturnPct  float64
	WinRatePct           float64
	AvgTradeDurationDays float64
	TimeInMarketPct      float64
	MaxDrawdownPct       float64
}

// NewReport derives all statistics from the ledger. The series is used
// only for the buy-and-hold benchmark, anchored close-to-close over the
// same bar range the engine ran over; pass nil to omit the benchmark.
//
// The bounded statistics must land in [0, 100] by construction; a value
// outside that range means the upstream series was corrupt (e.g.
// non-monotonic dates) and fails loudly rather than being clamped.
func NewReport(symbol string, start, end time.Time, ledger *Ledger, series []core.PriceBar) (*Report, error) {
	trades := ledger.Trades()

	r := &Report{
		Symbol:    symbol,
		StartDate: start,
		EndDate:   end,
		Trades:    trades,
		NumTrades: len(trades),
	}

	r.TotalReturnPct = compoundReturn(trades)
	r.MaxDrawdownPct = maxDrawdown(trades)
	r.WinRatePct = winRate(trades)
	r.AvgTradeDurationDays = avgDuration(trades)
	r.TimeInMarketPct = timeInMarket(trades, start, end)

	if len(series) > 0 {
		first := series[0].Close
		last := series[len(series)-1].Close
		r.BuyAndHoldReturnPct = (last - first) / first * 100
	}

	if r.TimeInMarketPct < 0 || r.TimeInMarketPct > 100 {
		return nil, core.ErrMetricOutOfRange
	}
	if r.MaxDrawdownPct < 0 || r.MaxDrawdownPct > 100 {
		return nil, core.ErrMetricOutOfRange
	}

	return r, nil
}

// compoundReturn multiplies each trade's return into an equity curve,
// reflecting capital reinvestment between round trips.
func compoundReturn(trades []Trade) float64 {
	equity := 1.0
	for _, t := range trades {
		equity *= 1 + t.ReturnPct/100
	}
	return (equity - 1) * 100
}

// maxDrawdown walks the same compounding equity curve and tracks the
// largest peak-to-trough decline as a percentage of the peak.
func maxDrawdown(trades []Trade) float64 {
	peak := 1.0
	equity := 1.0
	maxDD := 0.0

	for _, t := range trades {
		equity *= 1 + t.ReturnPct/100
		if equity > peak {
			peak = equity
		}
		if dd := (peak - equity) / peak; dd > maxDD {
			maxDD = dd
		}
	}

	return maxDD * 100
}

// winRate is zero when there are no trades: no trades is neither a win
// nor a loss.
func winRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.IsWin() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

func avgDuration(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	total := 0
	for _, t := range trades {
		total += t.DurationDays
	}
	return float64(total) / float64(len(trades))
}

// timeInMarket returns zero for a non-positive span rather than dividing
// by zero (degenerate single-day series).
func timeInMarket(trades []Trade, start, end time.Time) float64 {
	totalDays := core.DaysBetween(start, end)
	if totalDays <= 0 {
		return 0
	}
	invested := 0
	for _, t := range trades {
		invested += t.DurationDays
	}
	return float64(invested) / float64(totalDays) * 100
}

// MarshalJSON flattens the statistics alongside the full trade list,
// with calendar dates in ISO-8601.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol               string  `json:"symbol"`
		StartDate            string  `json:"start_date"`
		EndDate              string  `json:"end_date"`
		NumTrades            int     `json:"num_trades"`
		TotalReturnPct       float64 `json:"total_return_pct"`
		BuyAndHoldReturnPct  float64 `json:"buy_and_hold_return_pct"`
		WinRatePct           float64 `json:"win_rate_pct"`
		AvgTradeDurationDays float64 `json:"avg_trade_duration_days"`
		TimeInMarketPct      float64 `json:"time_in_market_pct"`
		MaxDrawdownPct       float64 `json:"max_drawdown_pct"`
		Trades               []Trade `json:"trades"`
	}{
		Symbol:               r.Symbol,
		StartDate:            r.StartDate.Format("2006-01-02"),
		EndDate:              r.EndDate.Format("2006-01-02"),
		NumTrades:            r.NumTrades,
		TotalReturnPct:       r.TotalReturnPct,
		BuyAndHoldReturnPct:  r.BuyAndHoldReturnPct,
		WinRatePct:           r.WinRatePct,
		AvgTradeDurationDays: r.AvgTradeDurationDays,
		TimeInMarketPct:      r.TimeInMarketPct,
		MaxDrawdownPct:       r.MaxDrawdownPct,
		Trades:               r.Trades,
	})
}
