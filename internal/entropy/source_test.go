package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDeterminism(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestDeriveIsKeyedNotConsumed(t *testing.T) {
	root := NewSource(7)
	first := root.Derive("flood").Float64()

	// Consuming the parent stream must not shift derived children.
	root.Float64()
	root.Float64()
	second := root.Derive("flood").Float64()

	require.Equal(t, first, second)
}

func TestDeriveDistinctLabels(t *testing.T) {
	root := NewSource(7)
	assert.NotEqual(t,
		root.Derive("flood").Float64(),
		root.Derive("cyclone").Float64())
	assert.NotEqual(t,
		root.Derive("a", "b").Float64(),
		root.Derive("ab").Float64())
}

func TestUniformBounds(t *testing.T) {
	s := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(25, 60)
		assert.GreaterOrEqual(t, v, 25.0)
		assert.Less(t, v, 60.0)
	}
}

func TestBetaInUnitInterval(t *testing.T) {
	s := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := s.Beta(8, 2)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestGammaPositive(t *testing.T) {
	s := NewSource(1)
	for i := 0; i < 1000; i++ {
		assert.Greater(t, s.Gamma(5, 3), 0.0)
	}
}

func TestWeightedIndex(t *testing.T) {
	s := NewSource(1)
	weights := []float64{0.4, 0.35, 0.25}
	counts := make([]int, len(weights))
	for i := 0; i < 10000; i++ {
		idx := s.WeightedIndex(weights)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(weights))
		counts[idx]++
	}
	// Heaviest bucket should dominate.
	assert.Greater(t, counts[0], counts[2])
}

func TestWeightedIndexSkipsNonPositive(t *testing.T) {
	s := NewSource(1)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, 1, s.WeightedIndex([]float64{0, 1, 0}))
	}
}
