// Package ease provides easing curves as graph builders.
//
// Curves map normalized time x to progress. They are not clamped: inputs
// outside [0, 1] extrapolate the polynomial.
package ease

import (
	"fmt"

	"github.com/gogpu/vfx/node"
	tween "github.com/tanema/gween/ease"
)

// Func builds an easing curve over a float node.
type Func func(x node.Node) node.Node

// Linear returns x.
func Linear(x node.Node) node.Node {
	return x
}

// InCubic returns x³.
func InCubic(x node.Node) node.Node {
	return x.Mul(x).Mul(x)
}

// OutCubic returns 1 - (1-x)³.
func OutCubic(x node.Node) node.Node {
	return cube(x.OneMinus()).OneMinus()
}

// InOutCubic returns 4x³ below 0.5 and 1 - (2-2x)³/2 from 0.5 on.
func InOutCubic(x node.Node) node.Node {
	in := x.Mul(node.Float(4)).Mul(x).Mul(x)
	out := cube(node.Float(2).Sub(x.Mul(node.Float(2)))).Div(node.Float(2)).OneMinus()
	return node.Select(x.LessThan(node.Float(0.5)), in, out)
}

// cube is written as a product so negative bases stay defined on the GPU,
// where pow(x, 3) is undefined for x < 0.
func cube(x node.Node) node.Node {
	return x.Mul(x).Mul(x)
}

// Mode selects an easing curve by number, which lets a float uniform switch
// curves without rebuilding a graph.
type Mode int

const (
	ModeLinear Mode = iota
	ModeInCubic
	ModeOutCubic
	ModeInOutCubic
)

// Modes lists the modes in numeric order.
var Modes = []Mode{ModeLinear, ModeInCubic, ModeOutCubic, ModeInOutCubic}

var modeNames = map[Mode]string{
	ModeLinear:     "linear",
	ModeInCubic:    "easeInCubic",
	ModeOutCubic:   "easeOutCubic",
	ModeInOutCubic: "easeInOutCubic",
}

// String returns the curve name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("ease: unknown mode %q", s)
}

// Func returns the graph builder for m. Unknown modes are linear.
func (m Mode) Func() Func {
	switch m {
	case ModeInCubic:
		return InCubic
	case ModeOutCubic:
		return OutCubic
	case ModeInOutCubic:
		return InOutCubic
	}
	return Linear
}

// Tween returns the host-side curve for m, for drivers that animate values
// outside a graph.
func (m Mode) Tween() tween.TweenFunc {
	switch m {
	case ModeInCubic:
		return tween.InCubic
	case ModeOutCubic:
		return tween.OutCubic
	case ModeInOutCubic:
		return tween.InOutCubic
	}
	return tween.Linear
}

// Apply evaluates m at x on the host.
func (m Mode) Apply(x float64) float64 {
	return float64(m.Tween()(float32(x), 0, 1, 1))
}

// Select builds every curve over x and picks one by the float node mode:
// 0 linear, 1 in, 2 out, 3 in-out. Other values fall back to linear.
func Select(mode, x node.Node) node.Node {
	out := Linear(x)
	for _, m := range Modes[1:] {
		out = node.Select(mode.Equal(node.Float(float64(m))), m.Func()(x), out)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
