// Package rng provides the seeded random source injected through every
// stochastic simulation path. Fixed seeds reproduce whole runs.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Rand wraps a PCG source with the helpers the simulation uses.
type Rand struct {
	r *rand.Rand
}

// New creates a Rand from an int64 seed.
func New(seed int64) *Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return &Rand{r: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Float returns a uniform float64 in [0, 1).
func (rn *Rand) Float() float64 {
	return rn.r.Float64()
}

// IntN returns a uniform int in [0, n). Panics if n <= 0.
func (rn *Rand) IntN(n int) int {
	return rn.r.IntN(n)
}

// Range returns a uniform float64 in [lo, hi).
func (rn *Rand) Range(lo, hi float64) float64 {
	return lo + rn.r.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (rn *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rn.r.Float64() < p
}

// Shuffle permutes the n elements addressed by swap.
func (rn *Rand) Shuffle(n int, swap func(i, j int)) {
	rn.r.Shuffle(n, swap)
}

// Pick returns a uniformly chosen element of s. Panics on empty input.
func Pick[T any](rn *Rand, s []T) T {
	return s[rn.r.IntN(len(s))]
}
