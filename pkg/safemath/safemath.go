// Package safemath provides total arithmetic helpers for aggregation code.
// Every function returns a finite number for any input, including NaN,
// Infinity, empty slices, and zero denominators.
package safemath

import "math"

const (
	// DefaultMinimumSampleSize is the smallest sample that supports a
	// trend direction; fewer points force a "stable" result.
	DefaultMinimumSampleSize = 4

	// Calories per gram of each macronutrient.
	CaloriesPerGramProtein = 4.0
	CaloriesPerGramCarbs   = 4.0
	CaloriesPerGramFat     = 9.0
)

// Div divides numerator by denominator, returning fallback when either
// operand is non-finite or the denominator is zero. The quotient is
// re-checked for finiteness before being returned.
func Div(numerator, denominator, fallback float64) float64 {
	if !isFinite(numerator) || !isFinite(denominator) || denominator == 0 {
		return fallback
	}
	q := numerator / denominator
	if !isFinite(q) {
		return fallback
	}
	return q
}

// Percentage returns value/total expressed as a percentage, 0 when total
// is zero or either input is non-finite.
func Percentage(value, total float64) float64 {
	return Div(value, total, 0) * 100
}

// Average returns the arithmetic mean of the finite entries in values.
// An empty or all-invalid slice yields 0.
func Average(values []float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Clamp bounds value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// HasMinimumSampleSize reports whether n data points are enough to compute
// a trend. Pass minimum <= 0 to use DefaultMinimumSampleSize.
func HasMinimumSampleSize(n, minimum int) bool {
	if minimum <= 0 {
		minimum = DefaultMinimumSampleSize
	}
	return n >= minimum
}

// WeeksFromDays converts a day count to weeks, never returning less than 1
// so per-week rates stay meaningful for short reporting windows.
func WeeksFromDays(days float64) float64 {
	weeks := days / 7
	if !isFinite(weeks) || weeks < 1 {
		return 1
	}
	return weeks
}

// MacroPercentages holds macronutrient calorie shares that sum to 100.
type MacroPercentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NormalizeMacroPercentages converts gram amounts into calorie-share
// percentages. Protein and carbs are computed independently; fat is derived
// as the remainder so the three always sum to exactly 100. A zero or
// non-finite calorie total yields all zeros.
func NormalizeMacroPercentages(proteinGrams, carbsGrams, fatGrams, totalCalories float64) MacroPercentages {
	if !isFinite(totalCalories) || totalCalories <= 0 {
		return MacroPercentages{}
	}

	protein := Clamp(Percentage(proteinGrams*CaloriesPerGramProtein, totalCalories), 0, 100)
	carbs := Clamp(Percentage(carbsGrams*CaloriesPerGramCarbs, totalCalories), 0, 100)
	fat := Clamp(100-protein-carbs, 0, 100)

	return MacroPercentages{Protein: protein, Carbs: carbs, Fat: fat}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
