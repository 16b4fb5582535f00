// Package random provides the uniform samplers used to place and orient new entities.
package random

import "math/rand/v2"

// UniformSampler draws reals uniformly in [Low, High).
// When Low > High the interval is simply walked the other way, which is handy to express
// "up to 20 units left of x" as NewUniformSampler(x, x-20).
type UniformSampler struct {
	Low, High float64
	rng       *rand.Rand // nil means the goroutine-safe global source
}

// NewUniformSampler returns a sampler backed by the global random source.
func NewUniformSampler(low, high float64) *UniformSampler {
	return &UniformSampler{Low: low, High: high}
}

// NewSeededSampler returns a sampler with its own PCG source. Not safe for concurrent use.
func NewSeededSampler(low, high float64, seed uint64) *UniformSampler {
	return &UniformSampler{
		Low:  low,
		High: high,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Sample returns the next value.
func (s *UniformSampler) Sample() float64 {
	return s.Low + (s.High-s.Low)*s.unit()
}

// Between draws a value in [low, high) from the same source, without changing the sampler bounds.
func (s *UniformSampler) Between(low, high float64) float64 {
	return low + (high-low)*s.unit()
}

func (s *UniformSampler) unit() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}
