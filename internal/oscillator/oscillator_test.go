package oscillator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickStaysInRange(t *testing.T) {
	for _, step := range []float32{0.001, 0.03, 0.1, 0.37, 0.5, 0.999, 2.004} {
		o := New(Options{Step: step, Running: true})
		for i := 0; i < 5000; i++ {
			require.True(t, o.Tick())
			v := o.Intensity()
			require.GreaterOrEqual(t, v, float32(0), "step %v tick %d", step, i)
			require.LessOrEqual(t, v, float32(1), "step %v tick %d", step, i)
		}
	}
}

func TestTenTenthsHitsTopOnTenthTick(t *testing.T) {
	o := New(Options{Step: 0.1, Running: true})

	for i := 1; i <= 9; i++ {
		o.Tick()
		assert.Equal(t, float32(1), o.Snapshot().Direction, "tick %d", i)
	}

	o.Tick()
	s := o.Snapshot()
	assert.Equal(t, float32(1), s.Intensity)
	assert.Equal(t, float32(-1), s.Direction)

	o.Tick()
	s = o.Snapshot()
	assert.InDelta(t, 0.9, s.Intensity, 1e-6)
	assert.Equal(t, float32(-1), s.Direction)
}

func TestDirectionFlipsOncePerCrossing(t *testing.T) {
	o := New(Options{Step: 0.3, Running: true})

	var flips []int
	prev := o.Snapshot().Direction
	for i := 0; i < 12; i++ {
		o.Tick()
		s := o.Snapshot()
		if s.Direction != prev {
			flips = append(flips, i)
			if s.Direction < 0 {
				assert.Equal(t, float32(1), s.Intensity)
			} else {
				assert.Equal(t, float32(0), s.Intensity)
			}
		}
		prev = s.Direction
	}

	// 0.3 0.6 0.9 1(flip) 0.7 0.4 0.1 0(flip) 0.3 0.6 0.9 1(flip)
	assert.Equal(t, []int{3, 7, 11}, flips)
}

func TestBigStepStrobes(t *testing.T) {
	o := New(Options{Step: 2.004, Running: true})

	want := []float32{1, 0, 1, 0}
	for i, w := range want {
		o.Tick()
		assert.Equal(t, w, o.Intensity(), "tick %d", i)
	}
}

func TestTickWhileStopped(t *testing.T) {
	o := New(Options{Step: 0.1, Intensity: 0.4})
	before := o.Snapshot()

	assert.False(t, o.Tick())
	assert.Equal(t, before, o.Snapshot())

	o.SetRunning(true)
	assert.True(t, o.Tick())
	assert.InDelta(t, 0.5, o.Intensity(), 1e-6)
}

func TestSetStepIsAdditive(t *testing.T) {
	deltas := []float32{0.1, -0.001, 0.1, 0.001, -0.1}

	a := New(Options{Step: 1})
	for _, d := range deltas {
		a.SetStep(d)
	}

	b := New(Options{Step: 1})
	for i := len(deltas) - 1; i >= 0; i-- {
		b.SetStep(deltas[i])
	}

	assert.InDelta(t, 1.1, a.Step(), 1e-6)
	assert.InDelta(t, a.Step(), b.Step(), 1e-6)
}

func TestZeroAndNegativeStep(t *testing.T) {
	o := New(Options{Step: 0.1, Intensity: 0.5, Running: true})

	o.SetStep(-0.1)
	assert.InDelta(t, 0, o.Step(), 1e-6)
	o.Tick()
	assert.InDelta(t, 0.5, o.Intensity(), 1e-6)

	o.SetStep(-0.1)
	o.Tick()
	assert.InDelta(t, 0.4, o.Intensity(), 1e-6)
	assert.Equal(t, float32(1), o.Snapshot().Direction)
}

func TestNegativeStepStillClamps(t *testing.T) {
	o := New(Options{Step: -0.3, Running: true})

	o.Tick()
	s := o.Snapshot()
	assert.Equal(t, float32(0), s.Intensity)
	assert.Equal(t, float32(-1), s.Direction)

	o.Tick()
	assert.InDelta(t, 0.3, o.Intensity(), 1e-6)
}

func TestOnStepChange(t *testing.T) {
	o := New(Options{Step: 2})

	var got []float32
	o.OnStepChange(func(step float32) { got = append(got, step) })

	o.SetStep(0.5)
	o.SetStep(-1)

	assert.Equal(t, []float32{2.5, 1.5}, got)
}

func TestNewClampsInitialIntensity(t *testing.T) {
	assert.Equal(t, float32(1), New(Options{Intensity: 3}).Intensity())
	assert.Equal(t, float32(0), New(Options{Intensity: -1}).Intensity())
	assert.Equal(t, float32(1), New(Options{}).Snapshot().Direction)
}
