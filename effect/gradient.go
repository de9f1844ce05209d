package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// GradientParams configures NewGradient.
type GradientParams struct {
	Color1   vfx.RGBA `toml:"color1" yaml:"color1"`
	Color2   vfx.RGBA `toml:"color2" yaml:"color2"`
	Rotation float64  `toml:"rotation" yaml:"rotation"`
}

// DefaultGradientParams returns a red-to-green vertical gradient.
func DefaultGradientParams() GradientParams {
	return GradientParams{
		Color1: vfx.RGBA{R: 1, G: 0, B: 0, A: 1},
		Color2: vfx.RGBA{R: 0, G: 1, B: 0, A: 1},
	}
}

// GradientUniforms are the handles of one gradient.
type GradientUniforms struct {
	Color1   *node.Uniform
	Color2   *node.Uniform
	Rotation *node.Uniform
}

// List returns the handles in declaration order.
func (u *GradientUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Color1, u.Color2, u.Rotation}
}

// Apply writes p into the uniforms.
func (u *GradientUniforms) Apply(p GradientParams) {
	setColor(u.Color1, p.Color1)
	setColor(u.Color2, p.Color2)
	u.Rotation.SetFloat(p.Rotation)
}

// Gradient is a linear blend between two colors from bottom (Color1) to
// top (Color2), rotated about the quad's center.
type Gradient struct {
	Uniforms GradientUniforms
	Color    node.Node
}

// NewGradient builds a gradient.
func NewGradient(p GradientParams) *Gradient {
	u := GradientUniforms{
		Color1:   colorUniform("color1", p.Color1),
		Color2:   colorUniform("color2", p.Color2),
		Rotation: node.UniformFloat("rotation", p.Rotation),
	}
	along := node.Rotate(uvCenter(), u.Rotation.Node()).Add(node.Float(0.5)).Y()
	return &Gradient{
		Uniforms: u,
		Color:    node.Mix(premultiply(u.Color1.Node()), premultiply(u.Color2.Node()), along),
	}
}

// ColorNode returns the premultiplied output color.
func (fx *Gradient) ColorNode() node.Node { return fx.Color }

// UniformList returns the gradient's uniform handles.
func (fx *Gradient) UniformList() []*node.Uniform { return fx.Uniforms.List() }
