// Package rng provides the seedable random source injected into every
// probabilistic scheduling policy. A fixed seed makes all policies fully
// deterministic, which the test suite relies on.
package rng

import "math/rand"

// RNG is a seedable pseudo-random source.
//
// The scheduling core is single-threaded by contract, so RNG performs no
// locking.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// New creates a new RNG with the given seed.
func New(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.rand = rand.New(rand.NewSource(r.seed)) //nolint:gosec
}

// Uint32 returns a pseudo-random 32-bit value. Tree walks consume it one
// bit per binary branch to amortize generation cost.
func (r *RNG) Uint32() uint32 {
	return r.rand.Uint32()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// Intn returns a non-negative pseudo-random number in [0,n).
// It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}
