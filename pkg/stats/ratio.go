package stats

import "github.com/shopspring/decimal"

// Pct computes round(100 * num / den, places), rounding half away from zero
// like SQL ROUND does. A zero denominator yields 0.
func Pct(num, den int, places int32) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(num)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(den)), places).
		InexactFloat64()
}

// Ratio computes round(num / den, places). A zero denominator yields 0.
func Ratio(num, den float64, places int32) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromFloat(num).
		DivRound(decimal.NewFromFloat(den), places).
		InexactFloat64()
}

// Round rounds v to places decimals, half away from zero.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
