package indicator

// RSI calculates the Relative Strength Index over the trailing period.
// Returns the latest value and true, or 0 and false when fewer than
// period+1 prices are available.
func RSI(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period+1 {
		return 0, false
	}

	var gains, losses float64
	var gainCount, lossCount int

	// Walk the last `period` deltas
	for i := len(prices) - period; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains += delta
			gainCount++
		} else if delta < 0 {
			losses += -delta
			lossCount++
		}
	}

	// All gains or all losses saturate the oscillator
	if lossCount == 0 {
		return 100, true
	}
	if gainCount == 0 {
		return 0, true
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}
