package shader

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vfx/node"
)

// Descriptor returns a WGSL descriptor for m. Compiler.Descriptor returns
// the SPIR-V form. Both stages live in the one module, under VertexEntry and
// FragmentEntry.
func (m *Module) Descriptor(label string) *hal.ShaderModuleDescriptor {
	return &hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: m.Source},
	}
}

// BindGroupLayout describes group 0 of m: the single uniform buffer,
// visible to both stages.
func (m *Module) BindGroupLayout(label string) *hal.BindGroupLayoutDescriptor {
	return &hal.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStagesVertexFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: uint64(m.Size),
			},
		}},
	}
}

func vertexFormat(t node.Type) gputypes.VertexFormat {
	switch t {
	case node.TypeVec2:
		return gputypes.VertexFormatFloat32x2
	case node.TypeVec3:
		return gputypes.VertexFormatFloat32x3
	case node.TypeVec4:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatFloat32
	}
}

// VertexLayout returns the interleaved buffer layout the vertex stage reads:
// position, normal, uv when used, then the attributes in location order.
func (m *Module) VertexLayout() gputypes.VertexBufferLayout {
	attrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	}
	off := uint64(24)
	if m.HasUV {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format: gputypes.VertexFormatFloat32x2, Offset: off, ShaderLocation: 2,
		})
		off += 8
	}
	for _, a := range m.Attributes {
		f := vertexFormat(a.Type)
		attrs = append(attrs, gputypes.VertexAttribute{Format: f, Offset: off, ShaderLocation: a.Location})
		off += f.Size()
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: off,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// ColorTarget returns a target for format that blends premultiplied
// output source-over.
func ColorTarget(format gputypes.TextureFormat) gputypes.ColorTargetState {
	blend := gputypes.BlendStatePremultiplied()
	return gputypes.ColorTargetState{
		Format:    format,
		Blend:     &blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// Primitive returns the primitive state of effect meshes: triangle lists,
// both faces drawn.
func Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}
