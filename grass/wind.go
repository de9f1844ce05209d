package grass

import (
	"github.com/gogpu/vfx/node"
)

// WindParams configures NewWind.
type WindParams struct {
	Speed        float64 `toml:"speed" yaml:"speed"`
	Size         float64 `toml:"size" yaml:"size"`
	Displacement float64 `toml:"displacement" yaml:"displacement"`
	// UpBias tilts billboards toward +Y so blades stay visible from above.
	UpBias float64 `toml:"up_bias" yaml:"up_bias"`
}

// DefaultWindParams returns a light breeze.
func DefaultWindParams() WindParams {
	return WindParams{Speed: 0.8, Size: 1.5, Displacement: 0.4, UpBias: 1.5}
}

// WindUniforms are the handles of one wind graph.
type WindUniforms struct {
	Speed        *node.Uniform
	Size         *node.Uniform
	Displacement *node.Uniform
	UpBias       *node.Uniform
}

// List returns the handles in declaration order.
func (u *WindUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Speed, u.Size, u.Displacement, u.UpBias}
}

// Apply writes p into the uniforms.
func (u *WindUniforms) Apply(p WindParams) {
	u.Speed.SetFloat(p.Speed)
	u.Size.SetFloat(p.Size)
	u.Displacement.SetFloat(p.Displacement)
	u.UpBias.SetFloat(p.UpBias)
}

// Wind is the vertex position graph for Build's geometry.
type Wind struct {
	Uniforms WindUniforms
	// Position is PositionLocal plus the blade corner for this vertex:
	// vertex index mod 3 selects left root, tip or right root.
	Position node.Node
}

// NewWind builds the billboard and sway graph. It reads the bladeHeight and
// bladeWidth attributes, the builtin camera position and time.
func NewWind(p WindParams) *Wind {
	u := WindUniforms{
		Speed:        node.UniformFloat("windSpeed", p.Speed),
		Size:         node.UniformFloat("windSize", p.Size),
		Displacement: node.UniformFloat("windDisplacement", p.Displacement),
		UpBias:       node.UniformFloat("upBias", p.UpBias),
	}

	height := node.Attribute(AttrHeight, node.TypeFloat)
	width := node.Attribute(AttrWidth, node.TypeFloat)
	corner := node.VertexIndex().Mod(node.Float(3))

	world := node.PositionWorld()
	up := node.V3(0, 1, 0)
	toCamera := node.CameraPosition().Sub(world).Normalize()
	right := up.Cross(toCamera).Normalize()
	billboardUp := toCamera.Cross(right).Normalize()
	tipDir := billboardUp.Add(up.Mul(u.UpBias.Node())).Normalize()

	d := u.Displacement.Node()
	sway := node.Noise3Vec3(world.Div(u.Size.Node()).Add(node.Time().Mul(u.Speed.Node()))).
		Mul(node.Vec3(d, node.Float(0), d))

	left := right.Mul(width.Mul(node.Float(-0.5)))
	rightRoot := right.Mul(width.Mul(node.Float(0.5)))
	tip := tipDir.Mul(height).Add(sway)

	offset := node.Select(corner.Equal(node.Float(0)), left,
		node.Select(corner.Equal(node.Float(1)), tip, rightRoot))
	return &Wind{Uniforms: u, Position: node.PositionLocal().Add(offset)}
}
