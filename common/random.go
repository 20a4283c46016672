package common

import "math/rand/v2"

// NewRand returns a seeded generator. Scenes take one so tests can pin the
// sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform integer in [lo, hi].
func Between(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if r == nil {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
