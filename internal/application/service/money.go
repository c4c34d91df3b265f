package service

import "math"

// toCents converts a decimal currency amount to cents, rounding to the
// nearest cent.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// mulCents scales a cent amount by a fraction and rounds back to whole
// cents. Every fractional step in the engine (percentage discounts, the
// discount multiplier, role rates) rounds here, so amounts are exact to two
// decimal places at each computation boundary.
func mulCents(cents int64, factor float64) int64 {
	return int64(math.Round(float64(cents) * factor))
}
