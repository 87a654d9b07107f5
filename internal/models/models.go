package models

// Color is a normalized RGBA color, every channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Gray returns an opaque gray with all three channels set to v.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// State is the oscillator's mutable state.
type State struct {
	Intensity float32
	Direction float32
	Step      float32
	Running   bool
}

type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeySpace
	KeyF
	KeyQ
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeySpace:
		return "Space"
	case KeyF:
		return "F"
	case KeyQ:
		return "Q"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// KeyEvent is a key press as delivered by a host, reduced to the physical
// key and the shift modifier bit.
type KeyEvent struct {
	Key   Key
	Shift bool
}
