package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
		{"Monthly payment", 599.5505251527569, 599.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.005, 0.01) {
		t.Error("expected 100.0 and 100.005 to be within 0.01")
	}
	if WithinTolerance(100.0, 100.02, 0.01) {
		t.Error("expected 100.0 and 100.02 to be outside 0.01")
	}
	if !WithinTolerance(-5, -5, 0) {
		t.Error("expected identical values to be within zero tolerance")
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-10, 0},
		{0, 0},
		{12.5, 12.5},
	}
	for _, tt := range tests {
		if result := NonNegative(tt.input); result != tt.expected {
			t.Errorf("NonNegative(%v) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("expected 1.5 to be finite")
	}
	if IsFinite(math.NaN()) {
		t.Error("expected NaN to be reported as not finite")
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("expected infinities to be reported as not finite")
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Quarter", 25, 100, 25},
		{"Zero total", 10, 0, 0},
		{"Over one hundred", 150, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if result := ApplyPercentage(200000, 4); math.Abs(result-8000) > 1e-9 {
		t.Errorf("ApplyPercentage(200000, 4) = %v, expected 8000", result)
	}
	if result := ApplyPercentage(500, 0); result != 0 {
		t.Errorf("ApplyPercentage(500, 0) = %v, expected 0", result)
	}
}
