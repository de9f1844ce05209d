package vfx

import (
	"math"

	"github.com/gogpu/vfx/node"
)

// Vec2 is a 2D parameter: an offset, a scale or a direction.
type Vec2 struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Lerp interpolates between v and w.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (w.X-v.X)*t, Y: v.Y + (w.Y-v.Y)*t}
}

// Rotate returns the vector rotated counter-clockwise by angle radians,
// matching node.Rotate.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Value returns v as a vec2 value.
func (v Vec2) Value() node.Value {
	return node.Vector(v.X, v.Y)
}

// Node returns v as a vec2 constant node.
func (v Vec2) Node() node.Node {
	return node.V2(v.X, v.Y)
}
