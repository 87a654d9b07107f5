package window

import (
	"fmt"
	"time"

	"github.com/ThatOtherAndrew/Flasher/internal/fullscreen"
	"github.com/ThatOtherAndrew/Flasher/internal/models"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *WindowError) Unwrap() error {
	return e.err
}

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window is a glfw window with a current OpenGL 4.1 core context. All
// methods must be called from the thread that created it.
type Window struct {
	win        *glfw.Window
	title      string
	keys       []models.KeyEvent
	borderless bool
	// windowed geometry to restore when leaving fullscreen
	savedX, savedY int
	savedW, savedH int
	stateSubs      []func(source string)
}

func NewWindow(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{"failed to initialise glfw", err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{"failed to create window", err}
	}

	w := &Window{
		win:    win,
		title:  opts.Title,
		savedW: width,
		savedH: height,
	}

	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	win.SetKeyCallback(w.onKey)
	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) { w.notify("size") })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) { w.notify("framebuffer") })
	glfw.SetMonitorCallback(func(_ *glfw.Monitor, _ glfw.PeripheralEvent) { w.notify("monitor") })

	if opts.Fullscreen {
		if err := w.enterExclusive(); err != nil {
			_ = w.enterBorderless()
		}
	}

	return w, nil
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	w.keys = append(w.keys, models.KeyEvent{
		Key:   translateKey(key),
		Shift: mods&glfw.ModShift != 0,
	})
}

func translateKey(key glfw.Key) models.Key {
	switch key {
	case glfw.KeyUp:
		return models.KeyUp
	case glfw.KeyDown:
		return models.KeyDown
	case glfw.KeySpace:
		return models.KeySpace
	case glfw.KeyF:
		return models.KeyF
	case glfw.KeyQ:
		return models.KeyQ
	case glfw.KeyEscape:
		return models.KeyEscape
	default:
		return models.KeyUnknown
	}
}

// OnStateChange registers fn for every notification that may signal a
// fullscreen transition. source names the underlying glfw callback.
func (w *Window) OnStateChange(fn func(source string)) {
	w.stateSubs = append(w.stateSubs, fn)
}

func (w *Window) notify(source string) {
	for _, fn := range w.stateSubs {
		fn(source)
	}
}

// KeyEvents returns the key presses collected since the last call.
func (w *Window) KeyEvents() []models.KeyEvent {
	keys := w.keys
	w.keys = nil
	return keys
}

func (w *Window) GetSize() (int, int) {
	return w.win.GetSize()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Present shows the frame drawn since the last swap.
func (w *Window) Present() {
	w.win.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Wait blocks until an event arrives or d has passed.
func (w *Window) Wait(d time.Duration) {
	glfw.WaitEventsTimeout(d.Seconds())
}

// SetStatus shows the readout text in the title bar.
func (w *Window) SetStatus(text string) {
	w.win.SetTitle(fmt.Sprintf("%s (step %s)", w.title, text))
}

func (w *Window) Fullscreen() bool {
	return w.borderless || w.win.GetMonitor() != nil
}

// Strategies are tried in order: a real video mode switch on the primary
// monitor, then an undecorated window covering it.
func (w *Window) Strategies() []fullscreen.Strategy {
	return []fullscreen.Strategy{
		{Name: "exclusive", Enter: w.enterExclusive, Exit: w.exitFullscreen},
		{Name: "borderless", Enter: w.enterBorderless, Exit: w.exitFullscreen},
	}
}

func (w *Window) saveGeometry() {
	w.savedX, w.savedY = w.win.GetPos()
	w.savedW, w.savedH = w.win.GetSize()
}

func (w *Window) enterExclusive() error {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return fullscreen.ErrUnsupported
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return fullscreen.ErrUnsupported
	}
	w.saveGeometry()
	w.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	if w.win.GetMonitor() == nil {
		return &WindowError{msg: "compositor refused exclusive fullscreen"}
	}
	return nil
}

func (w *Window) enterBorderless() error {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return fullscreen.ErrUnsupported
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return fullscreen.ErrUnsupported
	}
	w.saveGeometry()
	x, y := monitor.GetPos()
	w.win.SetAttrib(glfw.Decorated, glfw.False)
	w.win.SetPos(x, y)
	w.win.SetSize(mode.Width, mode.Height)
	w.borderless = true
	w.notify("borderless")
	return nil
}

func (w *Window) exitFullscreen() error {
	if w.win.GetMonitor() != nil {
		w.win.SetMonitor(nil, w.savedX, w.savedY, w.savedW, w.savedH, 0)
		return nil
	}
	if w.borderless {
		w.borderless = false
		w.win.SetAttrib(glfw.Decorated, glfw.True)
		w.win.SetPos(w.savedX, w.savedY)
		w.win.SetSize(w.savedW, w.savedH)
		w.notify("borderless")
		return nil
	}
	return fullscreen.ErrUnsupported
}

func (w *Window) Destroy() {
	if w.win != nil {
		w.win.Destroy()
	}
	glfw.Terminate()
}
