package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		ev   models.KeyEvent
		want Action
	}{
		{"up", models.KeyEvent{Key: models.KeyUp}, Action{Kind: AdjustStep, Delta: 0.1}},
		{"down", models.KeyEvent{Key: models.KeyDown}, Action{Kind: AdjustStep, Delta: -0.1}},
		{"shift up", models.KeyEvent{Key: models.KeyUp, Shift: true}, Action{Kind: AdjustStep, Delta: 0.001}},
		{"shift down", models.KeyEvent{Key: models.KeyDown, Shift: true}, Action{Kind: AdjustStep, Delta: -0.001}},
		{"space", models.KeyEvent{Key: models.KeySpace}, Action{Kind: Fire}},
		{"shift space", models.KeyEvent{Key: models.KeySpace, Shift: true}, Action{}},
		{"f", models.KeyEvent{Key: models.KeyF}, Action{Kind: ToggleFullscreen}},
		{"escape", models.KeyEvent{Key: models.KeyEscape}, Action{Kind: Quit}},
		{"q", models.KeyEvent{Key: models.KeyQ, Shift: true}, Action{Kind: Quit}},
		{"unknown", models.KeyEvent{Key: models.KeyUnknown}, Action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.ev))
		})
	}
}

type fakeStepper struct{ step float32 }

func (f *fakeStepper) SetStep(delta float32) float32 {
	f.step += delta
	return f.step
}

type fakeFirer struct{ triggers int }

func (f *fakeFirer) Trigger(context.Context) bool {
	f.triggers++
	return true
}

type fakeToggler struct{ toggles int }

func (f *fakeToggler) Toggle() { f.toggles++ }

func TestDispatcher(t *testing.T) {
	stepper := &fakeStepper{step: 1}
	firer := &fakeFirer{}
	toggler := &fakeToggler{}
	quits := 0

	d := &Dispatcher{
		Stepper:    stepper,
		Fire:       firer,
		Fullscreen: toggler,
		Quit:       func() { quits++ },
	}

	ctx := context.Background()
	for _, ev := range []models.KeyEvent{
		{Key: models.KeyUp},
		{Key: models.KeyUp, Shift: true},
		{Key: models.KeyDown},
		{Key: models.KeySpace},
		{Key: models.KeySpace, Shift: true},
		{Key: models.KeyF},
		{Key: models.KeyEscape},
		{Key: models.KeyUnknown},
	} {
		d.Handle(ctx, ev)
	}

	assert.InDelta(t, 1.001, stepper.step, 1e-6)
	assert.Equal(t, 1, firer.triggers)
	assert.Equal(t, 1, toggler.toggles)
	assert.Equal(t, 1, quits)
}

func TestDispatcherWithoutCollaborators(t *testing.T) {
	d := &Dispatcher{}
	for _, k := range []models.Key{models.KeyUp, models.KeySpace, models.KeyF, models.KeyQ} {
		assert.NotPanics(t, func() { d.Handle(context.Background(), models.KeyEvent{Key: k}) })
	}
}
