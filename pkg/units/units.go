// Package units provides precise unit conversions for weather and
// nutrition display. Internal math keeps full floating-point precision;
// rounding happens only at the final output step and is never chained.
package units

import "math"

// Exact conversion factors.
const (
	MetersPerSecondPerMph = 0.44704
	MillilitersPerCup     = 236.588
	KilogramsPerPound     = 0.453592
	KelvinOffset          = 273.15
)

// KelvinToFahrenheit converts Kelvin to Fahrenheit, rounded to 1 decimal.
func KelvinToFahrenheit(k float64) float64 {
	return round1((k-KelvinOffset)*9/5 + 32)
}

// CelsiusToFahrenheit converts Celsius to Fahrenheit, rounded to 1 decimal.
func CelsiusToFahrenheit(c float64) float64 {
	return round1(c*9/5 + 32)
}

// FahrenheitToCelsius converts Fahrenheit to Celsius, rounded to 1 decimal.
func FahrenheitToCelsius(f float64) float64 {
	return round1((f - 32) * 5 / 9)
}

// MetersPerSecondToMph converts a wind speed to miles per hour, rounded to 1 decimal.
func MetersPerSecondToMph(ms float64) float64 {
	return round1(ms / MetersPerSecondPerMph)
}

// MetersPerSecondToKph converts a wind speed to kilometers per hour, rounded to 1 decimal.
func MetersPerSecondToKph(ms float64) float64 {
	return round1(ms * 3.6)
}

// CupsToMilliliters converts US cups to milliliters, rounded to 1 decimal.
func CupsToMilliliters(cups float64) float64 {
	return round1(cups * MillilitersPerCup)
}

// MillilitersToCups converts milliliters to US cups, rounded to 2 decimals.
func MillilitersToCups(ml float64) float64 {
	return round2(ml / MillilitersPerCup)
}

// PoundsToKilograms converts pounds to kilograms, rounded to 2 decimals.
func PoundsToKilograms(lb float64) float64 {
	return round2(lb * KilogramsPerPound)
}

// KilogramsToPounds converts kilograms to pounds, rounded to 2 decimals.
func KilogramsToPounds(kg float64) float64 {
	return round2(kg / KilogramsPerPound)
}

// AqiToMidpoint maps a raw AQI reading to the midpoint of its US-EPA
// category via ordered threshold checks.
func AqiToMidpoint(aqi float64) float64 {
	switch {
	case aqi <= 50:
		return 25
	case aqi <= 100:
		return 75
	case aqi <= 150:
		return 125
	case aqi <= 200:
		return 175
	case aqi <= 300:
		return 250
	default:
		return 400
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
