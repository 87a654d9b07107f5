// Package easing maps a raw oscillator intensity onto a brightness scalar.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknown = errors.New("unknown easing")

// Func eases t in [0, 1]. minValue is the floor the result is rescaled
// into; policies that do not rescale ignore it.
type Func func(t, minValue float32) float32

// Cosine is a cosine smoothstep rescaled into [minValue, 1], so a positive
// minValue keeps the output away from black at the trough.
func Cosine(t, minValue float32) float32 {
	raw := -0.5 * (math.Cos(math.Pi*float64(t)) - 1)
	return float32(raw*(1-float64(minValue)) + float64(minValue))
}

// Linear is the identity.
func Linear(t, _ float32) float32 {
	return t
}

var byName = map[string]Func{
	"cosine": Cosine,
	"linear": Linear,
}

const Default = "cosine"

func Lookup(name string) (Func, error) {
	fn, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknown, name, Names())
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
