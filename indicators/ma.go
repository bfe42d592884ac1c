package indicators

import "fmt"

// MA calculates the Simple Moving Average of the trailing period prices.
func MA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("not enough prices: need %d, got %d", period, len(prices))
	}

	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}
