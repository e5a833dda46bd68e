package util

import (
	"math/rand"
)

// RandInt draws uniformly from the inclusive span between a and b. The bounds
// may be given in either order.
func RandInt(rng *rand.Rand, a int64, b int64) int64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	span := uint64(hi-lo) + 1
	if span == 0 {
		return int64(rng.Uint64())
	}
	return lo + int64(rng.Uint64()%span)
}

// RandFloat scales a uniform draw in [0,1) onto the range from a towards b.
// An inverted range simply scans downwards.
func RandFloat(rng *rand.Rand, a float64, b float64) float64 {
	return rng.Float64()*(b-a) + a
}
