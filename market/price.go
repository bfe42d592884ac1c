// Package market holds the simulated price series and price math helpers.
package market

import "math"

// PipScale converts a price difference on a 5-decimal FX quote into pips
// (1 pip = 0.0001).
const PipScale = 10000.0

// Pips returns the signed pip distance from entry to current.
func Pips(entry, current float64) float64 {
	return (current - entry) * PipScale
}

// Round5 rounds to 5 decimal places, the resolution of the simulated quotes.
func Round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}

// Round6 rounds to 6 decimal places, used for currency amounts.
func Round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}

// Round3 rounds to 3 decimal places, used for recorded pip values.
func Round3(x float64) float64 {
	return math.Round(x*1e3) / 1e3
}
