package grass

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/vfx"
)

// Attribute names of the blade vertices. The wind graph reads height and
// width; a color graph reads AttrColor.
const (
	AttrHeight = "bladeHeight"
	AttrWidth  = "bladeWidth"
	AttrColor  = "color"
)

// Shader locations of the interleaved vertex attributes. Location 2 is the
// uv slot of generated shaders, which blades do not use; the attributes
// follow in name order.
const (
	LocationPosition = 0
	LocationNormal   = 1
	LocationHeight   = 3
	LocationWidth    = 4
	LocationColor    = 5
)

// floatsPerVertex is position(3) + normal(3) + height + width + color(3).
const floatsPerVertex = 11

// Geometry is a non-interleaved triangle list. All three vertices of a
// blade share its root position, normal, height and width.
type Geometry struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Heights   []float32
	Widths    []float32
	Indices   []uint32
}

func newGeometry(vertices int) *Geometry {
	return &Geometry{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		Colors:    make([]float32, 0, vertices*3),
		Heights:   make([]float32, 0, vertices),
		Widths:    make([]float32, 0, vertices),
		Indices:   make([]uint32, 0, vertices),
	}
}

func (g *Geometry) add(pos, normal mgl32.Vec3, c vfx.RGBA, brightness, height, width float32) {
	g.Positions = append(g.Positions, pos.X(), pos.Y(), pos.Z())
	g.Normals = append(g.Normals, normal.X(), normal.Y(), normal.Z())
	g.Colors = append(g.Colors,
		float32(c.R)*brightness, float32(c.G)*brightness, float32(c.B)*brightness)
	g.Heights = append(g.Heights, height)
	g.Widths = append(g.Widths, width)
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Heights)
}

// Interleaved packs the attributes per vertex in Layout order.
func (g *Geometry) Interleaved() []float32 {
	n := g.VertexCount()
	out := make([]float32, 0, n*floatsPerVertex)
	for i := 0; i < n; i++ {
		out = append(out, g.Positions[i*3:i*3+3]...)
		out = append(out, g.Normals[i*3:i*3+3]...)
		out = append(out, g.Heights[i], g.Widths[i])
		out = append(out, g.Colors[i*3:i*3+3]...)
	}
	return out
}

// Layout describes the buffer returned by Interleaved.
func (g *Geometry) Layout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: floatsPerVertex * 4,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
			{Format: gputypes.VertexFormatFloat32, Offset: 24, ShaderLocation: LocationHeight},
			{Format: gputypes.VertexFormatFloat32, Offset: 28, ShaderLocation: LocationWidth},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 32, ShaderLocation: LocationColor},
		},
	}
}
