package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformSampler_Range(t *testing.T) {
	s := NewUniformSampler(10, 20)
	for i := 0; i < 1000; i++ {
		v := s.Sample()
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
	}
}

func TestUniformSampler_ReversedBounds(t *testing.T) {
	s := NewSeededSampler(100, 80, 7)
	for i := 0; i < 1000; i++ {
		v := s.Sample()
		assert.LessOrEqual(t, v, 100.0)
		assert.Greater(t, v, 80.0)
	}
}

func TestUniformSampler_SeededIsRepeatable(t *testing.T) {
	a := NewSeededSampler(0, 360, 42)
	b := NewSeededSampler(0, 360, 42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Sample(), b.Sample(), "draw %d differs", i)
	}
}

func TestUniformSampler_Between(t *testing.T) {
	s := NewSeededSampler(0, 1, 3)
	for i := 0; i < 200; i++ {
		v := s.Between(-5, 5)
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
	assert.Equal(t, 0.0, s.Low, "Between must not touch the sampler bounds")
	assert.Equal(t, 1.0, s.High)
}
