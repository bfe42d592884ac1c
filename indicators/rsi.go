package indicators

import "fmt"

// RSI calculates the Relative Strength Index over the given period using
// Wilder's smoothing: the seed average gain/loss is a simple mean of the
// first period deltas, and every later delta folds in as
// (avg*(period-1) + x) / period. The series must hold at least period+1
// prices. A window with no losses clamps to 100 rather than dividing by
// zero; no gains yields 0 through the same formula.
func RSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period+1 {
		return 0, fmt.Errorf("not enough prices: need %d, got %d", period+1, len(prices))
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	p := float64(period)
	for i := period + 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
	}

	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}
