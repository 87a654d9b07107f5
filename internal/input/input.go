package input

import (
	"context"
	"log/slog"

	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

const (
	CoarseStep float32 = 0.1
	FineStep   float32 = 0.001
)

type Kind int

const (
	None Kind = iota
	AdjustStep
	Fire
	ToggleFullscreen
	Quit
)

type Action struct {
	Kind  Kind
	Delta float32
}

// Map translates a key press into an action. Keys without a binding map to
// None.
func Map(ev models.KeyEvent) Action {
	switch ev.Key {
	case models.KeyUp:
		if ev.Shift {
			return Action{Kind: AdjustStep, Delta: FineStep}
		}
		return Action{Kind: AdjustStep, Delta: CoarseStep}
	case models.KeyDown:
		if ev.Shift {
			return Action{Kind: AdjustStep, Delta: -FineStep}
		}
		return Action{Kind: AdjustStep, Delta: -CoarseStep}
	case models.KeySpace:
		if ev.Shift {
			return Action{}
		}
		return Action{Kind: Fire}
	case models.KeyF:
		return Action{Kind: ToggleFullscreen}
	case models.KeyQ, models.KeyEscape:
		return Action{Kind: Quit}
	}
	return Action{}
}

type Stepper interface {
	SetStep(delta float32) float32
}

type Firer interface {
	Trigger(ctx context.Context) bool
}

type Toggler interface {
	Toggle()
}

// Dispatcher applies mapped actions to their owners. Any nil collaborator
// turns its actions into no-ops.
type Dispatcher struct {
	Stepper    Stepper
	Fire       Firer
	Fullscreen Toggler
	Quit       func()
	Logger     *slog.Logger
}

func (d *Dispatcher) Handle(ctx context.Context, ev models.KeyEvent) Action {
	action := Map(ev)
	switch action.Kind {
	case AdjustStep:
		if d.Stepper != nil {
			step := d.Stepper.SetStep(action.Delta)
			d.logger().Debug("step changed", "key", ev.Key, "shift", ev.Shift, "step", step)
		}
	case Fire:
		if d.Fire != nil {
			d.Fire.Trigger(ctx)
		}
	case ToggleFullscreen:
		if d.Fullscreen != nil {
			d.Fullscreen.Toggle()
		}
	case Quit:
		if d.Quit != nil {
			d.Quit()
		}
	}
	return action
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
