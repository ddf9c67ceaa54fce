package sumcalc

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to two decimals, half away from zero, on the shortest
// decimal representation of x (so 1.005 rounds up).
func Round2(x float64) float64 {
	if !isFinite(x) {
		return x
	}
	rounded, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return rounded
}

// FormatNumber renders Round2(x) with the fewest decimals needed: 20, 20.5, 0.25.
func FormatNumber(x float64) string {
	if !isFinite(x) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return decimal.NewFromFloat(x).Round(2).String()
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// hasAtMostTwoDecimals reports whether x is representable with two decimals.
func hasAtMostTwoDecimals(x float64) bool {
	if !isFinite(x) {
		return false
	}
	d := decimal.NewFromFloat(x)
	return d.Equal(d.Round(2))
}

// ParseMultiplierOrDefault is the one place where multiplier text is read.
// Empty input means 1 and is valid; anything that is not a finite number
// above zero is invalid and also yields 1.
func ParseMultiplierOrDefault(input string) (float64, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 1, true
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !isFinite(value) || value <= 0 {
		return 1, false
	}

	return value, true
}

// StepMultiplier increases or decreases a multiplier input by increment.
// A resulting multiplier of exactly 1 is rendered as the empty input.
// It returns false and the unchanged input when the step is not possible.
func StepMultiplier(input string, increment float64, increase bool) (string, bool) {
	current, valid := ParseMultiplierOrDefault(input)
	if !valid || !isFinite(increment) || increment <= 0 {
		return input, false
	}

	if !increase {
		increment = -increment
	}

	next := Round2(current + increment)
	if next <= 0 {
		return input, false
	}
	if next == 1 {
		return "", true
	}

	return FormatNumber(next), true
}
