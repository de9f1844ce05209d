package grass

import (
	"fmt"

	"github.com/gogpu/vfx/node"
)

// Field is a ready-to-draw grass patch: blade geometry, the wind position
// graph and an opaque color read from the blade vertices.
type Field struct {
	Geometry *Geometry
	Wind     *Wind
	Color    node.Node
}

// NewField builds blades over base and the graphs that draw them.
func NewField(base Mesh, p Params, w WindParams) (*Field, error) {
	g, err := Build(base, p)
	if err != nil {
		return nil, fmt.Errorf("grass: field: %w", err)
	}
	return &Field{
		Geometry: g,
		Wind:     NewWind(w),
		Color:    node.Attribute(AttrColor, node.TypeVec3).ToVec4(),
	}, nil
}

// ColorNode returns the blade color with alpha 1.
func (f *Field) ColorNode() node.Node { return f.Color }

// PositionNode returns the wind-driven billboard position.
func (f *Field) PositionNode() node.Node { return f.Wind.Position }

// UniformList returns the wind uniforms.
func (f *Field) UniformList() []*node.Uniform { return f.Wind.Uniforms.List() }
