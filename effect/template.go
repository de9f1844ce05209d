package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// Frame is the coordinate frame handed to a template builder.
type Frame struct {
	// Position is the scaled, optionally tiled and rotated vec2 position.
	Position node.Node
	// Time is the template's time uniform.
	Time node.Node
}

// TemplateParams configures NewTemplate.
type TemplateParams struct {
	Time     float64  `toml:"time" yaml:"time"`
	Scale    float64  `toml:"scale" yaml:"scale"`
	Aspect   float64  `toml:"aspect" yaml:"aspect"`
	Rotation float64  `toml:"rotation" yaml:"rotation"`
	Offset   vfx.Vec2 `toml:"offset" yaml:"offset"`
	TileSize float64  `toml:"tile_size" yaml:"tile_size"`
	Tiled    bool     `toml:"tiled" yaml:"tiled"`
}

// DefaultTemplateParams returns an untiled unit frame.
func DefaultTemplateParams() TemplateParams {
	return TemplateParams{Scale: 1, Aspect: 1, TileSize: 1}
}

// TemplateUniforms are the handles of one template frame.
type TemplateUniforms struct {
	Time     *node.Uniform
	Scale    *node.Uniform
	Aspect   *node.Uniform
	Rotation *node.Uniform
	Offset   *node.Uniform
	TileSize *node.Uniform
	// Tiled is 1 to repeat the frame every 1/TileSize units.
	Tiled *node.Uniform
}

// List returns the handles in declaration order.
func (u *TemplateUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Time, u.Scale, u.Aspect, u.Rotation, u.Offset, u.TileSize, u.Tiled}
}

// Apply writes p into the uniforms.
func (u *TemplateUniforms) Apply(p TemplateParams) {
	u.Time.SetFloat(p.Time)
	u.Scale.SetFloat(p.Scale)
	u.Aspect.SetFloat(p.Aspect)
	u.Rotation.SetFloat(p.Rotation)
	u.Offset.SetVec2(p.Offset.X, p.Offset.Y)
	u.TileSize.SetFloat(p.TileSize)
	u.Tiled.SetFloat(boolFloat(p.Tiled))
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Template is a reusable coordinate frame around a caller-supplied color
// builder.
type Template struct {
	Uniforms TemplateUniforms
	Frame    Frame
	Color    node.Node
}

// NewTemplate builds the frame and passes it to build. A nil build shows the
// position itself as vec4(x, y, 0, 1).
func NewTemplate(p TemplateParams, build func(Frame) node.Node) *Template {
	u := TemplateUniforms{
		Time:     node.UniformFloat("time", p.Time),
		Scale:    node.UniformFloat("scale", p.Scale),
		Aspect:   node.UniformFloat("aspect", p.Aspect),
		Rotation: node.UniformFloat("rotation", p.Rotation),
		Offset:   node.UniformVec2("offset", p.Offset.X, p.Offset.Y),
		TileSize: node.UniformFloat("tileSize", p.TileSize),
		Tiled:    node.UniformFloat("tiled", boolFloat(p.Tiled)),
	}

	scaled := node.UV().Add(u.Offset.Node()).Sub(node.Float(0.5)).
		Mul(node.Float(2)).Mul(u.Scale.Node()).
		Mul(node.Vec2(u.Aspect.Node(), node.Float(1)))
	tiledPos := scaled.Mul(u.TileSize.Node()).Fract().Sub(node.Float(0.5)).Mul(node.Float(2))
	tile := node.Select(u.Tiled.Node().Equal(node.Float(1)), tiledPos, scaled)

	f := Frame{
		Position: node.Rotate(tile, u.Rotation.Node()),
		Time:     u.Time.Node(),
	}
	if build == nil {
		build = func(f Frame) node.Node { return f.Position.ToVec4() }
	}
	return &Template{Uniforms: u, Frame: f, Color: build(f)}
}

// ColorNode returns the builder's output.
func (fx *Template) ColorNode() node.Node { return fx.Color }

// UniformList returns the frame's uniform handles.
func (fx *Template) UniformList() []*node.Uniform { return fx.Uniforms.List() }
