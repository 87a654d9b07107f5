package draw

import (
	"context"
	"time"

	"github.com/ThatOtherAndrew/Flasher/internal/easing"
	"github.com/ThatOtherAndrew/Flasher/internal/models"
)

// BaseGray is the color the eased intensity scales.
var BaseGray = models.Gray(128.0 / 255.0)

const (
	DefaultMinValue      float32 = 0.5
	DefaultFrameInterval         = time.Second / 60
)

type Renderer interface {
	DrawSolid(c models.Color)
}

type Ticker interface {
	Tick() bool
	Intensity() float32
}

// Host drives the loop: it owns the display surface and its event queue.
type Host interface {
	PollEvents()
	Present()
	Wait(d time.Duration)
	ShouldClose() bool
}

type Options struct {
	Easing        easing.Func
	MinValue      float32
	Base          models.Color
	FrameInterval time.Duration
}

type Loop struct {
	osc      Ticker
	renderer Renderer
	ease     easing.Func
	minValue float32
	base     models.Color
	interval time.Duration
}

func New(osc Ticker, renderer Renderer, opts Options) *Loop {
	l := &Loop{
		osc:      osc,
		renderer: renderer,
		ease:     opts.Easing,
		minValue: opts.MinValue,
		base:     opts.Base,
		interval: opts.FrameInterval,
	}
	if l.ease == nil {
		l.ease = easing.Cosine
	}
	if l.base == (models.Color{}) {
		l.base = BaseGray
	}
	if l.interval <= 0 {
		l.interval = DefaultFrameInterval
	}
	return l
}

// Shade scales the RGB channels of base by v. Alpha is always opaque.
func Shade(base models.Color, v float32) models.Color {
	return models.Color{R: v * base.R, G: v * base.G, B: v * base.B, A: 1}
}

// Frame runs one tick and draws it. It reports whether anything was drawn;
// a stopped oscillator leaves the previous frame on screen.
func (l *Loop) Frame() bool {
	if !l.osc.Tick() {
		return false
	}
	eased := l.ease(l.osc.Intensity(), l.minValue)
	l.renderer.DrawSolid(Shade(l.base, eased))
	return true
}

// Run ticks once per frame until ctx is done or the host closes. The next
// frame is always scheduled; only the tick payload depends on the running
// flag.
func (l *Loop) Run(ctx context.Context, host Host) {
	for ctx.Err() == nil && !host.ShouldClose() {
		host.PollEvents()
		if l.Frame() {
			host.Present()
		} else {
			host.Wait(l.interval)
		}
	}
}
