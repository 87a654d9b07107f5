// Package fire runs the timed burst sequence that overrides the idle
// oscillation: a fixed number of bursts, each resuming the animation for a
// while and then pausing it.
package fire

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultCount = 4
	DefaultBurst = 500 * time.Millisecond
	DefaultPause = 100 * time.Millisecond
)

// ErrActive is returned by Run when another sequence has not finished yet.
var ErrActive = errors.New("fire sequence already active")

// Target is the running flag a sequence drives.
type Target interface {
	SetRunning(running bool)
}

type Config struct {
	Count int
	Burst time.Duration
	Pause time.Duration
}

func DefaultConfig() Config {
	return Config{Count: DefaultCount, Burst: DefaultBurst, Pause: DefaultPause}
}

// Total is how long a complete sequence takes.
func (c Config) Total() time.Duration {
	return time.Duration(c.Count) * (c.Burst + c.Pause)
}

type Option func(*Sequence)

// WithSleep replaces the timer based wait between state changes.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Sequence) { s.sleep = sleep }
}

// WithBurstHook registers fn to run at the start of every burst.
func WithBurstHook(fn func(n int, d time.Duration)) Option {
	return func(s *Sequence) { s.onBurst = append(s.onBurst, fn) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequence) { s.logger = logger }
}

// Sequence is not reentrant: at most one run is active at a time and
// overlapping triggers are rejected rather than queued.
type Sequence struct {
	cfg     Config
	target  Target
	active  *semaphore.Weighted
	sleep   func(ctx context.Context, d time.Duration) error
	onBurst []func(n int, d time.Duration)
	logger  *slog.Logger
}

func New(target Target, cfg Config, opts ...Option) *Sequence {
	s := &Sequence{
		cfg:    cfg,
		target: target,
		active: semaphore.NewWeighted(1),
		sleep:  sleepContext,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequence) Config() Config {
	return s.cfg
}

// Trigger starts a sequence in the background and reports whether it was
// started. ctx only ends the run early when the host is torn down.
func (s *Sequence) Trigger(ctx context.Context) bool {
	if !s.active.TryAcquire(1) {
		s.logger.Debug("fire ignored, sequence in progress")
		return false
	}
	go func() {
		defer s.active.Release(1)
		if err := s.run(ctx); err != nil {
			s.logger.Debug("fire sequence interrupted", "err", err)
		}
	}()
	return true
}

// Run executes a sequence on the calling goroutine.
func (s *Sequence) Run(ctx context.Context) error {
	if !s.active.TryAcquire(1) {
		return ErrActive
	}
	defer s.active.Release(1)
	return s.run(ctx)
}

func (s *Sequence) run(ctx context.Context) error {
	s.logger.Info("fire", "bursts", s.cfg.Count, "burst", s.cfg.Burst, "pause", s.cfg.Pause)

	for i := 0; i < s.cfg.Count; i++ {
		s.logger.Debug("burst", "n", i+1)
		s.target.SetRunning(true)
		for _, fn := range s.onBurst {
			fn(i, s.cfg.Burst)
		}
		if err := s.sleep(ctx, s.cfg.Burst); err != nil {
			s.target.SetRunning(false)
			return err
		}

		s.target.SetRunning(false)
		if err := s.sleep(ctx, s.cfg.Pause); err != nil {
			return err
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
