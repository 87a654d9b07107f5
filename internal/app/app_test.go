package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/Flasher/internal/config"
	"github.com/ThatOtherAndrew/Flasher/internal/fire"
	"github.com/ThatOtherAndrew/Flasher/internal/fullscreen"
	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

// scripted is a backend that delivers a fixed list of key presses, one
// batch per poll, and closes after maxPolls.
type scripted struct {
	script   map[int][]models.KeyEvent
	maxPolls int

	polls    int
	pending  []models.KeyEvent
	colors   []models.Color
	statuses []string
	closed   bool
	full     bool
	notify   []func(string)
}

func (s *scripted) DrawSolid(c models.Color) { s.colors = append(s.colors, c) }
func (s *scripted) Present()                 {}
func (s *scripted) Wait(time.Duration)       { time.Sleep(time.Millisecond) }
func (s *scripted) ShouldClose() bool        { return s.closed || s.polls >= s.maxPolls }
func (s *scripted) Close()                   { s.closed = true }
func (s *scripted) SetStatus(text string)    { s.statuses = append(s.statuses, text) }
func (s *scripted) Fullscreen() bool         { return s.full }

func (s *scripted) PollEvents() {
	s.polls++
	s.pending = append(s.pending, s.script[s.polls]...)
}

func (s *scripted) KeyEvents() []models.KeyEvent {
	keys := s.pending
	s.pending = nil
	return keys
}

func (s *scripted) Strategies() []fullscreen.Strategy {
	toggle := func(v bool) func() error {
		return func() error {
			s.full = v
			for _, fn := range s.notify {
				fn("size")
				fn("framebuffer")
			}
			return nil
		}
	}
	return []fullscreen.Strategy{{Name: "fake", Enter: toggle(true), Exit: toggle(false)}}
}

func (s *scripted) OnStateChange(fn func(string)) { s.notify = append(s.notify, fn) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStepKeysUpdateReadout(t *testing.T) {
	backend := &scripted{
		maxPolls: 10,
		script: map[int][]models.KeyEvent{
			2: {{Key: models.KeyUp}},
			3: {{Key: models.KeyDown, Shift: true}, {Key: models.KeyDown, Shift: true}},
			4: {{Key: models.KeySpace, Shift: true}, {Key: models.KeyUnknown}},
		},
	}

	a, err := New(config.Default(), backend, quietLogger())
	require.NoError(t, err)

	a.Run(context.Background())

	assert.Equal(t, []string{"2.004", "2.104", "2.103", "2.102"}, backend.statuses)
	assert.InDelta(t, 2.102, a.Oscillator.Step(), 1e-5)
	assert.Empty(t, backend.colors, "nothing is drawn before the first fire")
}

func TestStartRunningDrawsEveryFrame(t *testing.T) {
	settings := config.Default()
	settings.StartRunning = true
	settings.Step = 0.5
	backend := &scripted{maxPolls: 4}

	a, err := New(settings, backend, quietLogger())
	require.NoError(t, err)
	a.Run(context.Background())

	// 0.5, 1.0, 1.5 clamped back to 1.0 on the way down, then 0.5
	require.Len(t, backend.colors, 4)
	gray := float32(128.0 / 255.0)
	want := []float32{0.75 * gray, gray, gray, 0.75 * gray}
	for i, w := range want {
		assert.InDelta(t, w, backend.colors[i].R, 1e-6, "frame %d", i)
	}
}

func TestSpaceFires(t *testing.T) {
	settings := config.Default()
	settings.Fire = config.Fire{Count: 1, Burst: time.Hour, Pause: 0}

	burstStarted := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	sleep := func(ctx context.Context, d time.Duration) error {
		if d == time.Hour {
			once.Do(func() { close(burstStarted) })
			select {
			case <-release:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	backend := &scripted{
		maxPolls: 1 << 20,
		script:   map[int][]models.KeyEvent{1: {{Key: models.KeySpace}}},
	}

	a, err := New(settings, backend, quietLogger(), fire.WithSleep(sleep))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// stop once a few frames made it out
		for {
			select {
			case <-time.After(time.Millisecond):
			case <-ctx.Done():
				return
			}
			if snapshot := a.Oscillator.Snapshot(); snapshot.Running {
				time.Sleep(20 * time.Millisecond)
				cancel()
				return
			}
		}
	}()

	a.Run(ctx)
	<-done
	<-burstStarted
	close(release)

	assert.NotEmpty(t, backend.colors)
	assert.Eventually(t, func() bool { return !a.Oscillator.Running() }, time.Second, time.Millisecond)
}

func TestFullscreenKeyTogglesAndLogsOnce(t *testing.T) {
	backend := &scripted{
		maxPolls: 5,
		script: map[int][]models.KeyEvent{
			2: {{Key: models.KeyF}},
			4: {{Key: models.KeyF, Shift: true}},
		},
	}

	a, err := New(config.Default(), backend, quietLogger())
	require.NoError(t, err)

	var changes []bool
	a.Fullscreen.OnChange(func(active bool) { changes = append(changes, active) })

	a.Run(context.Background())

	assert.Equal(t, []bool{true, false}, changes)
	assert.False(t, a.Fullscreen.IsActive())
}

func TestQuitKeyClosesBackend(t *testing.T) {
	backend := &scripted{
		maxPolls: 1000,
		script:   map[int][]models.KeyEvent{3: {{Key: models.KeyEscape}}},
	}

	a, err := New(config.Default(), backend, quietLogger())
	require.NoError(t, err)
	a.Run(context.Background())

	assert.True(t, backend.closed)
	assert.Equal(t, 3, backend.polls)
}

func TestUnknownEasing(t *testing.T) {
	settings := config.Default()
	settings.Easing = "bounce"

	_, err := New(settings, &scripted{}, quietLogger())
	assert.Error(t, err)
}
