package models

import (
	"testing"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"integer", "50", floatPtr(50)},
		{"decimal", "12.5", floatPtr(12.5)},
		{"surrounding spaces", "  7 ", floatPtr(7)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"not a number", "abc", nil},
		{"trailing garbage", "50x", nil},
		{"negative", "-3", nil},
		{"zero", "0", nil},
		{"infinity", "Inf", nil},
		{"nan", "NaN", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseBudget(tt.input)
			if (result == nil) != (tt.expected == nil) {
				t.Fatalf("ParseBudget(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			if result != nil && *result != *tt.expected {
				t.Errorf("ParseBudget(%q) = %v, want %v", tt.input, *result, *tt.expected)
			}
		})
	}
}

func TestFormatBudget(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected string
	}{
		{"nil", nil, ""},
		{"integer value", floatPtr(50), "50"},
		{"decimal value", floatPtr(12.5), "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := FormatBudget(tt.input); result != tt.expected {
				t.Errorf("FormatBudget(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// Parsing what FormatBudget produced must land on the same value, otherwise
// an untouched budget field would read as a change.
func TestBudgetRoundTrip(t *testing.T) {
	for _, value := range []float64{1, 50, 12.5, 0.25, 9999.99} {
		text := FormatBudget(&value)
		parsed := ParseBudget(text)
		if parsed == nil || *parsed != value {
			t.Errorf("round trip of %v through %q = %v", value, text, parsed)
		}
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
