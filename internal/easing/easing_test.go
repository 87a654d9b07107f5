package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineEndpoints(t *testing.T) {
	for _, m := range []float32{0, 0.1, 0.25, 0.5, 0.9, 1} {
		assert.InDelta(t, m, Cosine(0, m), 1e-6, "min %v", m)
		assert.InDelta(t, 1, Cosine(1, m), 1e-6, "min %v", m)
	}
}

func TestCosineMidpoint(t *testing.T) {
	assert.InDelta(t, 0.75, Cosine(0.5, 0.5), 1e-6)
	assert.InDelta(t, 0.5, Cosine(0.5, 0), 1e-6)
}

func TestCosineMonotonic(t *testing.T) {
	for _, m := range []float32{0, 0.5, 0.8} {
		prev := Cosine(0, m)
		for i := 1; i <= 1000; i++ {
			v := Cosine(float32(i)/1000, m)
			require.GreaterOrEqual(t, v, prev, "min %v at %d", m, i)
			require.LessOrEqual(t, v, float32(1))
			prev = v
		}
	}
}

func TestLinearIsIdentity(t *testing.T) {
	for _, v := range []float32{0, 0.25, 0.5, 1} {
		assert.Equal(t, v, Linear(v, 0.5))
	}
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("linear")
	require.NoError(t, err)
	assert.Equal(t, float32(0.3), fn(0.3, 0.5))

	fn, err = Lookup(Default)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, fn(0.5, 0.5), 1e-6)

	_, err = Lookup("bounce")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"cosine", "linear"}, Names())
}
