package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Uniform returns a value in [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// Jitter returns a value in [-amp, amp). A zero amplitude returns zero
// without consuming randomness.
func (r *RNG) Jitter(amp float64) float64 {
	if amp == 0 {
		return 0
	}
	return r.Uniform(-amp, amp)
}
