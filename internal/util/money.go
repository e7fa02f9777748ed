package util

import "math"

// CentsFromAmount converts a decimal amount (e.g. 12.34) to whole cents.
func CentsFromAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// AmountFromCents converts whole cents back to a 2-decimal amount.
func AmountFromCents(cents int64) float64 {
	return float64(cents) / 100
}
