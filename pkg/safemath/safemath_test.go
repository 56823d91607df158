package safemath

import (
	"math"
	"testing"
)

func TestDiv(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		fallback    float64
		want        float64
	}{
		{"normal division", 10, 2, 0, 5},
		{"zero denominator", 10, 0, 0, 0},
		{"zero denominator with fallback", 10, 0, 99, 99},
		{"NaN numerator", math.NaN(), 2, 0, 0},
		{"NaN denominator", 10, math.NaN(), 7, 7},
		{"infinite numerator", math.Inf(1), 2, 0, 0},
		{"infinite denominator", 10, math.Inf(-1), 0, 0},
		{"negative quotient", -9, 3, 0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Div(tt.numerator, tt.denominator, tt.fallback)
			if got != tt.want {
				t.Errorf("Div(%v, %v, %v) = %v, want %v", tt.numerator, tt.denominator, tt.fallback, got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("Div() returned non-finite value %v", got)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		total float64
		want  float64
	}{
		{"half", 5, 10, 50},
		{"zero total", 5, 0, 0},
		{"full", 10, 10, 100},
		{"NaN value", math.NaN(), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.value, tt.total); got != tt.want {
				t.Errorf("Percentage(%v, %v) = %v, want %v", tt.value, tt.total, got, tt.want)
			}
		})
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty slice", nil, 0},
		{"single value", []float64{4}, 4},
		{"simple mean", []float64{2, 4, 6}, 4},
		{"filters infinity", []float64{math.Inf(1), 5, 10}, 7.5},
		{"filters NaN", []float64{math.NaN(), 3}, 3},
		{"all invalid", []float64{math.NaN(), math.Inf(-1)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.values); got != tt.want {
				t.Errorf("Average(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %v, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %v, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %v, want 10", got)
	}
}

func TestHasMinimumSampleSize(t *testing.T) {
	tests := []struct {
		n       int
		minimum int
		want    bool
	}{
		{3, 4, false},
		{4, 4, true},
		{5, 4, true},
		{0, 4, false},
		{4, 0, true},  // default minimum applies
		{3, -1, false}, // default minimum applies
	}

	for _, tt := range tests {
		if got := HasMinimumSampleSize(tt.n, tt.minimum); got != tt.want {
			t.Errorf("HasMinimumSampleSize(%d, %d) = %v, want %v", tt.n, tt.minimum, got, tt.want)
		}
	}
}

func TestWeeksFromDays(t *testing.T) {
	tests := []struct {
		days float64
		want float64
	}{
		{0, 1},
		{3, 1},
		{7, 1},
		{14, 2},
		{84, 12},
		{math.NaN(), 1},
	}

	for _, tt := range tests {
		if got := WeeksFromDays(tt.days); got != tt.want {
			t.Errorf("WeeksFromDays(%v) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestNormalizeMacroPercentages(t *testing.T) {
	tests := []struct {
		name          string
		protein       float64
		carbs         float64
		fat           float64
		totalCalories float64
		wantZero      bool
	}{
		{"typical split", 100, 100, 100, 1700, false},
		{"protein heavy", 200, 50, 20, 1180, false},
		{"zero calories", 100, 100, 100, 0, true},
		{"negative calories", 10, 10, 10, -500, true},
		{"NaN calories", 10, 10, 10, math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMacroPercentages(tt.protein, tt.carbs, tt.fat, tt.totalCalories)
			if tt.wantZero {
				if got.Protein != 0 || got.Carbs != 0 || got.Fat != 0 {
					t.Errorf("NormalizeMacroPercentages() = %+v, want all zeros", got)
				}
				return
			}
			sum := got.Protein + got.Carbs + got.Fat
			if sum != 100 {
				t.Errorf("percentages sum to %v, want exactly 100 (%+v)", sum, got)
			}
			for _, p := range []float64{got.Protein, got.Carbs, got.Fat} {
				if p < 0 || p > 100 {
					t.Errorf("percentage %v outside [0,100]", p)
				}
			}
		})
	}
}
