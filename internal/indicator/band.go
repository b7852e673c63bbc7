package indicator

// HighestOver returns the maximum of the trailing lookback prices.
// Returns 0 and false when fewer than lookback prices are available.
func HighestOver(prices []float64, lookback int) (float64, bool) {
	if lookback <= 0 || len(prices) < lookback {
		return 0, false
	}
	high := prices[len(prices)-lookback]
	for _, p := range prices[len(prices)-lookback:] {
		if p > high {
			high = p
		}
	}
	return high, true
}

// LowestOver returns the minimum of the trailing lookback prices.
func LowestOver(prices []float64, lookback int) (float64, bool) {
	if lookback <= 0 || len(prices) < lookback {
		return 0, false
	}
	low := prices[len(prices)-lookback]
	for _, p := range prices[len(prices)-lookback:] {
		if p < low {
			low = p
		}
	}
	return low, true
}
