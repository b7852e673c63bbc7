package core

import "time"

// Signal is a tri-state strategy decision.
type Signal int

const (
	SignalSell Signal = -1
	SignalHold Signal = 0
	SignalBuy  Signal = 1
)

// String returns the lowercase name of the signal.
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	default:
		return "hold"
	}
}

// PriceBar is one calendar day's price observation. Immutable once loaded.
type PriceBar struct {
	Date  time.Time
	Open  float64
	Close float64
}

// IsValid checks that the bar has positive prices and a non-zero date.
func (b PriceBar) IsValid() bool {
	return !b.Date.IsZero() && b.Open > 0 && b.Close > 0
}

// ValidateSeries verifies a price series is usable for simulation:
// at least two bars, every bar valid, dates strictly increasing.
func ValidateSeries(bars []PriceBar) error {
	if len(bars) < 2 {
		return ErrInsufficientData
	}
	for i, b := range bars {
		if !b.IsValid() {
			return ErrInvalidBar
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return ErrInvalidBar
		}
	}
	return nil
}

// DaysBetween returns the whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
