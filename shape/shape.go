// Package shape builds the animated ring used across the gallery.
//
// A shape interpolates between a start and an end keyframe (color, size,
// thickness, inner and outer fade, offset) by an eased normalized time. All
// state lives in uniforms; animating a shape means writing Time each frame.
package shape

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/ease"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/sdf"
)

// Params holds the initial uniform values of a shape.
//
// Size, thickness, fades and offset are diameters in uv units: a size of 1
// spans the whole quad. They are halved when the graph is built.
type Params struct {
	StartSize      float64  `toml:"start_size" yaml:"start_size"`
	StartColor     vfx.RGBA `toml:"start_color" yaml:"start_color"`
	StartThickness float64  `toml:"start_thickness" yaml:"start_thickness"`
	StartInnerFade float64  `toml:"start_inner_fade" yaml:"start_inner_fade"`
	StartOuterFade float64  `toml:"start_outer_fade" yaml:"start_outer_fade"`
	StartOffset    vfx.Vec2 `toml:"start_offset" yaml:"start_offset"`

	EndSize      float64  `toml:"end_size" yaml:"end_size"`
	EndColor     vfx.RGBA `toml:"end_color" yaml:"end_color"`
	EndThickness float64  `toml:"end_thickness" yaml:"end_thickness"`
	EndInnerFade float64  `toml:"end_inner_fade" yaml:"end_inner_fade"`
	EndOuterFade float64  `toml:"end_outer_fade" yaml:"end_outer_fade"`
	EndOffset    vfx.Vec2 `toml:"end_offset" yaml:"end_offset"`

	Time     float64   `toml:"time" yaml:"time"`
	Duration float64   `toml:"duration" yaml:"duration"`
	Easing   ease.Mode `toml:"easing" yaml:"easing"`

	// Proportional scales thickness and fades by the current size.
	Proportional bool `toml:"proportional" yaml:"proportional"`
	Visible      bool `toml:"visible" yaml:"visible"`
	// Boomerang plays forward over the first half of time and back over
	// the second.
	Boomerang bool `toml:"boomerang" yaml:"boomerang"`
}

// DefaultParams returns a black-to-white ring of full size.
func DefaultParams() Params {
	return Params{
		StartSize:      1,
		StartColor:     vfx.RGBA{R: 0, G: 0, B: 0, A: 1},
		StartThickness: 0.2,
		EndSize:        1,
		EndColor:       vfx.RGBA{R: 1, G: 1, B: 1, A: 1},
		EndThickness:   0.2,
		Duration:       1,
		Easing:         ease.ModeLinear,
		Visible:        true,
	}
}

// Uniforms are the handles of one shape instance.
type Uniforms struct {
	StartColor     *node.Uniform
	StartSize      *node.Uniform
	StartThickness *node.Uniform
	StartInnerFade *node.Uniform
	StartOuterFade *node.Uniform
	StartOffset    *node.Uniform

	EndColor     *node.Uniform
	EndSize      *node.Uniform
	EndThickness *node.Uniform
	EndInnerFade *node.Uniform
	EndOuterFade *node.Uniform
	EndOffset    *node.Uniform

	Time         *node.Uniform
	Duration     *node.Uniform
	Easing       *node.Uniform
	Proportional *node.Uniform
	Visible      *node.Uniform
	Boomerang    *node.Uniform
}

func newUniforms(p Params) Uniforms {
	return Uniforms{
		StartColor:     node.NewUniform("startColor", p.StartColor.Value()),
		StartSize:      node.UniformFloat("startSize", p.StartSize),
		StartThickness: node.UniformFloat("startThickness", p.StartThickness),
		StartInnerFade: node.UniformFloat("startInnerFade", p.StartInnerFade),
		StartOuterFade: node.UniformFloat("startOuterFade", p.StartOuterFade),
		StartOffset:    node.UniformVec2("startOffset", p.StartOffset.X, p.StartOffset.Y),

		EndColor:     node.NewUniform("endColor", p.EndColor.Value()),
		EndSize:      node.UniformFloat("endSize", p.EndSize),
		EndThickness: node.UniformFloat("endThickness", p.EndThickness),
		EndInnerFade: node.UniformFloat("endInnerFade", p.EndInnerFade),
		EndOuterFade: node.UniformFloat("endOuterFade", p.EndOuterFade),
		EndOffset:    node.UniformVec2("endOffset", p.EndOffset.X, p.EndOffset.Y),

		Time:         node.UniformFloat("time", p.Time),
		Duration:     node.UniformFloat("duration", p.Duration),
		Easing:       node.UniformFloat("easing", float64(p.Easing)),
		Proportional: node.UniformFloat("proportional", flag(p.Proportional)),
		Visible:      node.UniformFloat("visible", flag(p.Visible)),
		Boomerang:    node.UniformFloat("boomerang", flag(p.Boomerang)),
	}
}

// Apply writes every value of p into the uniforms.
func (u *Uniforms) Apply(p Params) {
	u.StartColor.SetVec4(p.StartColor.R, p.StartColor.G, p.StartColor.B, p.StartColor.A)
	u.StartSize.SetFloat(p.StartSize)
	u.StartThickness.SetFloat(p.StartThickness)
	u.StartInnerFade.SetFloat(p.StartInnerFade)
	u.StartOuterFade.SetFloat(p.StartOuterFade)
	u.StartOffset.SetVec2(p.StartOffset.X, p.StartOffset.Y)

	u.EndColor.SetVec4(p.EndColor.R, p.EndColor.G, p.EndColor.B, p.EndColor.A)
	u.EndSize.SetFloat(p.EndSize)
	u.EndThickness.SetFloat(p.EndThickness)
	u.EndInnerFade.SetFloat(p.EndInnerFade)
	u.EndOuterFade.SetFloat(p.EndOuterFade)
	u.EndOffset.SetVec2(p.EndOffset.X, p.EndOffset.Y)

	u.Time.SetFloat(p.Time)
	u.Duration.SetFloat(p.Duration)
	u.Easing.SetFloat(float64(p.Easing))
	u.Proportional.SetFloat(flag(p.Proportional))
	u.Visible.SetFloat(flag(p.Visible))
	u.Boomerang.SetFloat(flag(p.Boomerang))
}

// List returns the handles in declaration order.
func (u *Uniforms) List() []*node.Uniform {
	return []*node.Uniform{
		u.StartColor, u.StartSize, u.StartThickness, u.StartInnerFade, u.StartOuterFade, u.StartOffset,
		u.EndColor, u.EndSize, u.EndThickness, u.EndInnerFade, u.EndOuterFade, u.EndOffset,
		u.Time, u.Duration, u.Easing, u.Proportional, u.Visible, u.Boomerang,
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Option configures New.
type Option func(*options)

type options struct {
	position node.Node
}

// WithPosition evaluates the shape at p instead of uv - 0.5.
func WithPosition(p node.Node) Option {
	return func(o *options) {
		o.position = p
	}
}

// Shape is one animated shape instance.
type Shape struct {
	Uniforms Uniforms
	// Color is the premultiplied output color.
	Color node.Node
}

// New builds a shape graph with fresh uniforms initialised from p.
func New(p Params, opts ...Option) *Shape {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.position.IsNil() {
		o.position = node.UV().Sub(node.Float(0.5))
	}

	u := newUniforms(p)
	half := node.Float(0.5)
	t := u.Time.Node()

	boomerangT := node.Select(u.Boomerang.Node(),
		node.Select(t.GreaterThan(half),
			t.Sub(half).Mul(node.Float(2)).OneMinus(),
			t.Mul(node.Float(2)),
		),
		t,
	)
	eased := ease.Select(u.Easing.Node(), boomerangT)

	lerp := func(a, b *node.Uniform) node.Node {
		return node.Mix(a.Node(), b.Node(), eased)
	}
	lerpHalf := func(a, b *node.Uniform) node.Node {
		return node.Mix(a.Node().Mul(half), b.Node().Mul(half), eased)
	}

	color := lerp(u.StartColor, u.EndColor)
	size := lerpHalf(u.StartSize, u.EndSize)
	scale := node.Select(u.Proportional.Node(), size, node.Float(1))
	thickness := lerpHalf(u.StartThickness, u.EndThickness).Mul(scale)
	innerFade := lerpHalf(u.StartInnerFade, u.EndInnerFade).Mul(scale)
	outerFade := lerpHalf(u.StartOuterFade, u.EndOuterFade).Mul(scale)
	offset := lerpHalf(u.StartOffset, u.EndOffset)

	dist := sdf.Circle(o.position.Sub(offset), size.Sub(thickness))
	innerEdge := node.Smoothstep(innerFade.Neg(), node.Float(0), dist)
	outerEdge := node.Smoothstep(thickness.Sub(outerFade), thickness, dist)
	opacity := innerEdge.Sub(outerEdge).Mul(color.W())

	out := node.Vec4(color.XYZ().Mul(opacity), opacity)
	return &Shape{
		Uniforms: u,
		Color:    node.Select(u.Visible.Node(), out, node.Float(0)),
	}
}

// ColorNode returns the premultiplied output color.
func (s *Shape) ColorNode() node.Node { return s.Color }

// UniformList returns the shape's uniform handles.
func (s *Shape) UniformList() []*node.Uniform { return s.Uniforms.List() }
