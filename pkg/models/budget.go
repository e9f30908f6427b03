package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseBudget interprets free-form budget text. Blank or unparseable input
// means "no budget cap" and yields nil rather than an error; so do values
// that are not positive finite numbers.
func ParseBudget(text string) *float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return nil
	}

	return &value
}

// FormatBudget renders a budget cap for display and editing. nil renders
// as the empty string.
func FormatBudget(budget *float64) string {
	if budget == nil {
		return ""
	}
	return strconv.FormatFloat(*budget, 'f', -1, 64)
}
