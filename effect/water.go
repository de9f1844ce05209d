package effect

import (
	"math"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// WaterParams configures NewWater.
type WaterParams struct {
	Scale  float64  `toml:"scale" yaml:"scale"`
	Time   float64  `toml:"time" yaml:"time"`
	Color1 vfx.RGBA `toml:"color1" yaml:"color1"`
	Color2 vfx.RGBA `toml:"color2" yaml:"color2"`
	// Octaves is the number of extra noise octaves; it is baked into the
	// graph.
	Octaves int `toml:"octaves" yaml:"octaves"`
}

// DefaultWaterParams returns black-to-white water with a single octave.
func DefaultWaterParams() WaterParams {
	return WaterParams{
		Scale:  1,
		Color1: vfx.RGBA{R: 0, G: 0, B: 0, A: 1},
		Color2: vfx.RGBA{R: 1, G: 1, B: 1, A: 1},
	}
}

// WaterUniforms are the handles of one water surface.
type WaterUniforms struct {
	Scale  *node.Uniform
	Time   *node.Uniform
	Color1 *node.Uniform
	Color2 *node.Uniform
}

// List returns the handles in declaration order.
func (u *WaterUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Scale, u.Time, u.Color1, u.Color2}
}

// Apply writes p into the uniforms. Octaves is ignored.
func (u *WaterUniforms) Apply(p WaterParams) {
	u.Scale.SetFloat(p.Scale)
	u.Time.SetFloat(p.Time)
	setColor(u.Color1, p.Color1)
	setColor(u.Color2, p.Color2)
}

// Water is an fBm noise field mapped between two colors.
type Water struct {
	Uniforms WaterUniforms
	// Value is the raw noise sum before it is remapped to [0, 1].
	Value node.Node
	Color node.Node
}

// waterValue is one octave of the water field.
func waterValue(xy, time node.Node) node.Node {
	return node.Float(0.7).Mul(node.Noise3(node.Vec3(xy, time.Mul(node.Float(0.3)))))
}

// NewWater builds a water surface. Octave i adds the field at frequency 2^i
// and amplitude 0.5^i, shifted by (1.3, 1.7)*i.
func NewWater(p WaterParams) *Water {
	u := WaterUniforms{
		Scale:  node.UniformFloat("scale", p.Scale),
		Time:   node.UniformFloat("time", p.Time),
		Color1: colorUniform("color1", p.Color1),
		Color2: colorUniform("color2", p.Color2),
	}

	space := uvCenter().Mul(u.Scale.Node()).Add(node.Float(0.5))
	t := u.Time.Node()
	value := waterValue(space, t)
	for i := 1; i <= p.Octaves; i++ {
		shift := node.V2(1.3*float64(i), 1.7*float64(i))
		octave := waterValue(space.Mul(node.Float(math.Pow(2, float64(i)))).Sub(shift), t)
		value = value.Add(octave.Mul(node.Float(math.Pow(0.5, float64(i)))))
	}

	adjusted := node.Splat(4, node.Float(0.5).Add(value.Mul(node.Float(0.5))))
	return &Water{
		Uniforms: u,
		Value:    value,
		Color:    node.Mix(premultiply(u.Color1.Node()), premultiply(u.Color2.Node()), adjusted),
	}
}

// ColorNode returns the premultiplied output color.
func (fx *Water) ColorNode() node.Node { return fx.Color }

// UniformList returns the water's uniform handles.
func (fx *Water) UniformList() []*node.Uniform { return fx.Uniforms.List() }
