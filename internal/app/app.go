// Package app wires the oscillator, fire sequence, input and fullscreen
// control to a display backend and runs the animation loop on it.
package app

import (
	"context"
	"log/slog"

	"github.com/ThatOtherAndrew/Flasher/internal/config"
	"github.com/ThatOtherAndrew/Flasher/internal/draw"
	"github.com/ThatOtherAndrew/Flasher/internal/easing"
	"github.com/ThatOtherAndrew/Flasher/internal/fire"
	"github.com/ThatOtherAndrew/Flasher/internal/fullscreen"
	"github.com/ThatOtherAndrew/Flasher/internal/input"
	"github.com/ThatOtherAndrew/Flasher/internal/models"
	"github.com/ThatOtherAndrew/Flasher/internal/oscillator"
	"github.com/ThatOtherAndrew/Flasher/internal/status"
)

// Backend is a display surface that can draw, deliver keys and report
// fullscreen state.
type Backend interface {
	draw.Renderer
	draw.Host
	status.Sink
	fullscreen.Surface
	KeyEvents() []models.KeyEvent
	Close()
	Strategies() []fullscreen.Strategy
	OnStateChange(fn func(source string))
}

type App struct {
	Settings   *config.Settings
	Oscillator *oscillator.Oscillator
	Fire       *fire.Sequence
	Fullscreen *fullscreen.Controller
	Readout    *status.Readout
	Loop       *draw.Loop

	backend    Backend
	dispatcher *input.Dispatcher
	logger     *slog.Logger
}

func New(settings *config.Settings, backend Backend, logger *slog.Logger, fireOpts ...fire.Option) (*App, error) {
	ease, err := easing.Lookup(settings.Easing)
	if err != nil {
		return nil, err
	}

	a := &App{
		Settings: settings,
		backend:  backend,
		logger:   logger,
	}

	a.Oscillator = oscillator.New(oscillator.Options{
		Step:    settings.Step,
		Running: settings.StartRunning,
	})

	a.Readout = status.New(backend)
	a.Oscillator.OnStepChange(a.Readout.Publish)

	fireOpts = append([]fire.Option{fire.WithLogger(logger)}, fireOpts...)
	a.Fire = fire.New(a.Oscillator, fire.Config{
		Count: settings.Fire.Count,
		Burst: settings.Fire.Burst,
		Pause: settings.Fire.Pause,
	}, fireOpts...)

	a.Fullscreen = fullscreen.New(backend, backend.Strategies(), logger)
	a.Fullscreen.OnChange(fullscreen.LogChanges(logger))
	a.Fullscreen.Sync()
	backend.OnStateChange(a.Fullscreen.Notify)

	a.Loop = draw.New(a.Oscillator, backend, draw.Options{
		Easing:   ease,
		MinValue: settings.MinValue,
		Base:     models.Gray(settings.BaseGray),
	})

	a.dispatcher = &input.Dispatcher{
		Stepper:    a.Oscillator,
		Fire:       a.Fire,
		Fullscreen: a.Fullscreen,
		Quit:       backend.Close,
		Logger:     logger,
	}

	return a, nil
}

// host feeds key events to the dispatcher every time the loop polls.
type host struct {
	Backend
	ctx        context.Context
	dispatcher *input.Dispatcher
}

func (h *host) PollEvents() {
	h.Backend.PollEvents()
	for _, ev := range h.Backend.KeyEvents() {
		h.dispatcher.Handle(h.ctx, ev)
	}
}

// Run blocks until ctx is done or the backend closes.
func (a *App) Run(ctx context.Context) {
	a.Readout.Publish(a.Oscillator.Step())
	a.logger.Info("Running",
		"backend", a.Settings.Backend,
		"step", status.Format(a.Oscillator.Step()),
		"easing", a.Settings.Easing,
		"running", a.Oscillator.Running(),
	)

	a.Loop.Run(ctx, &host{Backend: a.backend, ctx: ctx, dispatcher: a.dispatcher})
}
