package schedule

import "math"

// Stored precisions for the paired widget representations.
// Fractions carry four decimal places (the slider's resolution), percents
// carry two. These two constants drive the sync controller's convergence
// check, so they live here as the single source of truth.
const (
	FractionDecimals = 4
	PercentDecimals  = 2

	// SliderStep is the granularity of the fraction-side widget.
	SliderStep = 0.0005
)

// RoundFraction rounds a fractional rate to the stored fraction precision.
func RoundFraction(f float64) float64 {
	return roundTo(f, FractionDecimals)
}

// RoundPercent rounds a percent value to the stored percent precision.
func RoundPercent(p float64) float64 {
	return roundTo(p, PercentDecimals)
}

// PercentFromFraction converts a fraction to its percent representation,
// rounded to percent precision.
func PercentFromFraction(f float64) float64 {
	return RoundPercent(f * 100.0)
}

// FractionFromPercent converts a percent value to its fraction
// representation, rounded to fraction precision.
func FractionFromPercent(p float64) float64 {
	return RoundFraction(p / 100.0)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
