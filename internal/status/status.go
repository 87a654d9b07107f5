// Package status publishes the current step size to the host's readout.
package status

import (
	"strconv"
	"sync"
)

// Sink is anything that can show a one-line status text.
type Sink interface {
	SetStatus(text string)
}

// Format renders a step the way the readout shows it: fixed, three decimals.
func Format(step float32) string {
	return strconv.FormatFloat(float64(step), 'f', 3, 32)
}

// Readout keeps the last published text so hosts that redraw from scratch
// can ask for it.
type Readout struct {
	mu    sync.Mutex
	text  string
	sinks []Sink
}

func New(sinks ...Sink) *Readout {
	return &Readout{sinks: sinks}
}

// Publish formats step and writes it to every sink.
func (r *Readout) Publish(step float32) {
	text := Format(step)

	r.mu.Lock()
	r.text = text
	sinks := r.sinks
	r.mu.Unlock()

	for _, s := range sinks {
		s.SetStatus(text)
	}
}

func (r *Readout) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}
