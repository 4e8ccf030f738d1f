// Package ledger contains the pure derivation arithmetic for investor
// portfolios, owner withdrawal eligibility, and the activity feed. Every
// function is synchronous and side-effect-free over an in-memory snapshot:
// the surrounding service re-runs them on each refresh tick and identical
// input always yields identical output.
package ledger

import "math"

// RoundingPrecision is the multiplier used for rounding monetary values.
// 100 gives two decimal places.
const RoundingPrecision = 100

// Round rounds a monetary value to two decimal places using the standard
// "round half up" approach via math.Round.
//
// Example:
//
//	Round(123.456789)  // returns 123.46
//	Round(0.005)       // returns 0.01
func Round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// finite reports whether v is a usable number (not NaN or an infinity).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
