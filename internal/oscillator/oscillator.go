package oscillator

import (
	"sync"

	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

type Options struct {
	Step      float32
	Intensity float32
	Direction float32
	Running   bool
}

// Oscillator produces a triangle wave in [0, 1]. It is ticked by the
// animation loop and steered by key handlers and the fire sequence, which
// runs on its own goroutine, so every access goes through mu.
type Oscillator struct {
	mu       sync.Mutex
	state    models.State
	stepSubs []func(step float32)
}

func New(opts Options) *Oscillator {
	dir := opts.Direction
	if dir == 0 {
		dir = 1
	}
	return &Oscillator{
		state: models.State{
			Intensity: clamp(opts.Intensity),
			Direction: dir,
			Step:      opts.Step,
			Running:   opts.Running,
		},
	}
}

// Tick advances the wave by one step. It reports false and leaves the state
// untouched when the oscillator is not running.
//
// On overshoot the direction flips first and the intensity is then clamped
// to the boundary it crossed, both within the same tick.
func (o *Oscillator) Tick() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.state.Running {
		return false
	}

	s := &o.state
	s.Intensity += s.Step * s.Direction
	if s.Intensity > 1 || s.Intensity < 0 {
		s.Direction *= -1
		s.Intensity = clamp(s.Intensity)
	}
	return true
}

// SetStep adds delta to the step size and returns the new value. There are
// no bounds: a zero step freezes the wave and a negative one reverses it.
func (o *Oscillator) SetStep(delta float32) float32 {
	o.mu.Lock()
	o.state.Step += delta
	step := o.state.Step
	subs := o.stepSubs
	o.mu.Unlock()

	for _, fn := range subs {
		fn(step)
	}
	return step
}

// OnStepChange registers fn to be called with the new step after every
// SetStep.
func (o *Oscillator) OnStepChange(fn func(step float32)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stepSubs = append(o.stepSubs, fn)
}

func (o *Oscillator) SetRunning(running bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Running = running
}

func (o *Oscillator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Running
}

func (o *Oscillator) Step() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Step
}

func (o *Oscillator) Intensity() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Intensity
}

func (o *Oscillator) Snapshot() models.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func clamp(v float32) float32 {
	return max(0, min(v, 1))
}
