// Package terminal is a tcell host: it paints the solid color as the
// background of every cell and reads keys from the terminal.
package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ThatOtherAndrew/Flasher/internal/fullscreen"
	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	keys   []models.KeyEvent
	status string
	// background of the last drawn frame
	bg tcell.Color
	closed bool
}

// New initialises screen and starts forwarding its events.
func New(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// ToColor converts a normalized color to a terminal true color.
func ToColor(c models.Color) tcell.Color {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Terminal) DrawSolid(c models.Color) {
	t.bg = ToColor(c)
	t.screen.Fill(' ', tcell.StyleDefault.Background(t.bg))
	t.drawStatus()
}

// drawStatus repaints the bottom row over the current background.
func (t *Terminal) drawStatus() {
	w, h := t.screen.Size()
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Background(t.bg).Foreground(tcell.ColorWhite)
	text := []rune("step " + t.status)
	if t.status == "" {
		text = nil
	}
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		t.screen.SetContent(x, h-1, r, nil, style)
	}
}

func (t *Terminal) Present() {
	t.screen.Show()
}

// PollEvents drains pending terminal events without blocking.
func (t *Terminal) PollEvents() {
	for {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			return
		}
	}
}

// Wait blocks until an event arrives or d has passed.
func (t *Terminal) Wait(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case ev := <-t.events:
		t.handle(ev)
	case <-timer.C:
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(ev) {
			t.Close()
			return
		}
		t.keys = append(t.keys, translateKey(ev))
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0
}

func translateKey(ev *tcell.EventKey) models.KeyEvent {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyUp:
		return models.KeyEvent{Key: models.KeyUp, Shift: shift}
	case tcell.KeyDown:
		return models.KeyEvent{Key: models.KeyDown, Shift: shift}
	case tcell.KeyEscape:
		return models.KeyEvent{Key: models.KeyEscape, Shift: shift}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return models.KeyEvent{Key: models.KeySpace, Shift: shift}
		case 'f':
			return models.KeyEvent{Key: models.KeyF}
		case 'F':
			return models.KeyEvent{Key: models.KeyF, Shift: true}
		case 'q':
			return models.KeyEvent{Key: models.KeyQ}
		case 'Q':
			return models.KeyEvent{Key: models.KeyQ, Shift: true}
		}
	}
	return models.KeyEvent{Key: models.KeyUnknown, Shift: shift}
}

func (t *Terminal) KeyEvents() []models.KeyEvent {
	keys := t.keys
	t.keys = nil
	return keys
}

func (t *Terminal) ShouldClose() bool {
	return t.closed
}

func (t *Terminal) Close() {
	t.closed = true
}

// SetStatus paints the readout immediately, so it stays current while the
// animation is stopped.
func (t *Terminal) SetStatus(text string) {
	t.status = text
	t.drawStatus()
	t.screen.Show()
}

// Fullscreen is always true: the terminal grid is the whole surface.
func (t *Terminal) Fullscreen() bool {
	return true
}

func (t *Terminal) Strategies() []fullscreen.Strategy {
	return nil
}

// OnStateChange is a no-op; a terminal never changes fullscreen state.
func (t *Terminal) OnStateChange(func(source string)) {}

func (t *Terminal) Destroy() {
	close(t.quit)
	t.screen.Fini()
}
