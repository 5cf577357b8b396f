package vmath

import "math/rand"

// RandRange returns a uniform random value in [min, max).
// When min >= max the spread is zero and min is returned as-is, so degenerate
// ranges are valid configuration rather than errors.
func RandRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
