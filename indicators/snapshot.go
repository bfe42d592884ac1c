// Package indicators derives RSI and moving averages from the price series.
package indicators

// Snapshot holds the indicator values derived for a single tick.
type Snapshot struct {
	RSI     float64
	MAShort float64
	MALong  float64
}

// Compute derives a Snapshot for the latest point of the series. It returns
// ok=false until the series holds max(rsiWindow, maLong)+1 points, and
// whenever any constituent value cannot be derived from the trailing data;
// such ticks are not actionable.
func Compute(prices []float64, rsiWindow, maShort, maLong int) (Snapshot, bool) {
	need := rsiWindow
	if maLong > need {
		need = maLong
	}
	if len(prices) < need+1 {
		return Snapshot{}, false
	}

	rsi, err := RSI(prices, rsiWindow)
	if err != nil {
		return Snapshot{}, false
	}
	short, err := MA(prices, maShort)
	if err != nil {
		return Snapshot{}, false
	}
	long, err := MA(prices, maLong)
	if err != nil {
		return Snapshot{}, false
	}

	return Snapshot{RSI: rsi, MAShort: short, MALong: long}, true
}
