package effect

import "github.com/gogpu/vfx/node"

// Golden-ratio rotation used by dot noise, stored by column.
var goldColumns = [3][3]float64{
	{-0.571464913, -0.278044873, 0.772087367},
	{0.814921382, -0.303026659, 0.494042493},
	{0.096597072, 0.911518454, 0.399753815},
}

const phi = 1.618033988

// DotNoise returns Xor's dot noise of the vec3 p, mapped to [0, 1].
// See https://mini.gmshaders.com/p/dot-noise.
func DotNoise(p node.Node) node.Node {
	q := node.V3(goldColumns[0][0], goldColumns[0][1], goldColumns[0][2]).Mul(p.X()).
		Add(node.V3(goldColumns[1][0], goldColumns[1][1], goldColumns[1][2]).Mul(p.Y())).
		Add(node.V3(goldColumns[2][0], goldColumns[2][1], goldColumns[2][2]).Mul(p.Z()))
	n := node.Dot(q.Cos(), q.Mul(node.Float(phi)).Sin())
	return n.Add(node.Float(3)).Div(node.Float(6))
}

// DotNoiseParams configures NewDotNoise.
type DotNoiseParams struct {
	Scale float64 `toml:"scale" yaml:"scale"`
	Speed float64 `toml:"speed" yaml:"speed"`
}

// DefaultDotNoiseParams returns unit scale and speed.
func DefaultDotNoiseParams() DotNoiseParams {
	return DotNoiseParams{Scale: 1, Speed: 1}
}

// DotNoiseUniforms are the handles of one dot-noise field.
type DotNoiseUniforms struct {
	Scale *node.Uniform
	Speed *node.Uniform
}

// List returns the handles in declaration order.
func (u *DotNoiseUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Scale, u.Speed}
}

// Apply writes p into the uniforms.
func (u *DotNoiseUniforms) Apply(p DotNoiseParams) {
	u.Scale.SetFloat(p.Scale)
	u.Speed.SetFloat(p.Speed)
}

// DotNoiseEffect is an opaque grey noise field animated by the builtin
// Time.
type DotNoiseEffect struct {
	Uniforms DotNoiseUniforms
	Value    node.Node
	Color    node.Node
}

// NewDotNoise builds a dot-noise field over PositionLocal.xy.
func NewDotNoise(p DotNoiseParams) *DotNoiseEffect {
	u := DotNoiseUniforms{
		Scale: node.UniformFloat("scale", p.Scale),
		Speed: node.UniformFloat("speed", p.Speed),
	}
	local := node.PositionLocal()
	pos := node.Vec3(local.XY(), node.Time().Mul(u.Speed.Node())).Mul(u.Scale.Node())
	v := DotNoise(pos)
	return &DotNoiseEffect{
		Uniforms: u,
		Value:    v,
		Color:    node.Vec4(node.Splat(3, v), node.Float(1)),
	}
}

// ColorNode returns the opaque output color.
func (fx *DotNoiseEffect) ColorNode() node.Node { return fx.Color }

// UniformList returns the field's uniform handles.
func (fx *DotNoiseEffect) UniformList() []*node.Uniform { return fx.Uniforms.List() }
