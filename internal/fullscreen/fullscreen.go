// Package fullscreen toggles the display surface in and out of fullscreen
// and reports state changes once per logical transition.
package fullscreen

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrUnsupported is what a strategy returns when the platform cannot serve
// it. Any other error is treated the same way.
var ErrUnsupported = errors.New("fullscreen strategy unsupported")

// Surface reports whether it is currently the fullscreen target.
type Surface interface {
	Fullscreen() bool
}

// Strategy is one way of entering and leaving fullscreen. Controllers try
// strategies in order and stop at the first one that succeeds.
type Strategy struct {
	Name  string
	Enter func() error
	Exit  func() error
}

type Controller struct {
	surface    Surface
	strategies []Strategy
	logger     *slog.Logger

	mu        sync.Mutex
	observers []func(active bool)
	reported  bool
	known     bool
}

func New(surface Surface, strategies []Strategy, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		surface:    surface,
		strategies: strategies,
		logger:     logger,
	}
}

func (c *Controller) IsActive() bool {
	return c.surface.Fullscreen()
}

// Toggle asks the surface to enter fullscreen when it is not active and to
// leave it otherwise. Failures are logged at debug level and dropped.
func (c *Controller) Toggle() {
	entering := !c.IsActive()
	for _, s := range c.strategies {
		fn := s.Exit
		if entering {
			fn = s.Enter
		}
		if fn == nil {
			continue
		}
		if err := fn(); err != nil {
			c.logger.Debug("fullscreen strategy failed", "strategy", s.Name, "enter", entering, "err", err)
			continue
		}
		c.logger.Debug("fullscreen strategy applied", "strategy", s.Name, "enter", entering)
		return
	}
	c.logger.Debug("fullscreen request dropped", "enter", entering)
}

// OnChange registers fn to run after every state transition.
func (c *Controller) OnChange(fn func(active bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Notify is called by the host for every underlying notification that might
// mean the fullscreen state changed. Several notifications for the same
// transition reach observers once.
func (c *Controller) Notify(source string) {
	active := c.IsActive()

	c.mu.Lock()
	if c.known && c.reported == active {
		c.mu.Unlock()
		return
	}
	c.known = true
	c.reported = active
	observers := c.observers
	c.mu.Unlock()

	c.logger.Debug("fullscreen change", "source", source, "active", active)
	for _, fn := range observers {
		fn(active)
	}
}

// Sync records the current state without notifying observers, so the first
// Notify after startup only fires on a real transition.
func (c *Controller) Sync() {
	active := c.IsActive()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known = true
	c.reported = active
}

// LogChanges is the default observer.
func LogChanges(logger *slog.Logger) func(bool) {
	return func(active bool) {
		mode := "Disabled"
		if active {
			mode = "Enabled"
		}
		logger.Info("Fullscreen mode: " + mode)
	}
}
