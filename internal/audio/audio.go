// Package audio plays a short tone at the start of every fire burst.
package audio

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)
	ToneFreq   = 880
	MaxBlip    = 50 * time.Millisecond
)

type Cue struct {
	ready bool
	play  func(beep.Streamer)
}

// New opens the speaker. A failure leaves a silent cue behind and is only
// logged; sound is never required.
func New(logger *slog.Logger) *Cue {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		logger.Warn("Audio initialization failed", "err", err)
		return &Cue{}
	}
	return &Cue{ready: true, play: func(s beep.Streamer) { speaker.Play(s) }}
}

// Tone is a sine blip no longer than MaxBlip.
func Tone(d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, ToneFreq)
	if err != nil {
		return nil, err
	}
	return beep.Take(SampleRate.N(min(d, MaxBlip)), sine), nil
}

// Burst matches the fire package's burst hook signature.
func (c *Cue) Burst(_ int, d time.Duration) {
	if !c.ready {
		return
	}
	tone, err := Tone(d)
	if err != nil {
		return
	}
	c.play(tone)
}

func (c *Cue) Close() {
	if c.ready {
		speaker.Close()
	}
}
