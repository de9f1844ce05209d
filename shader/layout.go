package shader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/vfx/node"
)

// headerSize covers view_proj (64), camera (12) and time (4).
const headerSize = 80

// Field is one user uniform inside the uniform buffer.
type Field struct {
	// Name is the WGSL member name.
	Name    string
	Uniform *node.Uniform
	Offset  int
	Size    int
}

// Frame holds the per-frame header of the uniform buffer.
type Frame struct {
	ViewProj mgl32.Mat4
	Camera   mgl32.Vec3
	Time     float32
}

// DefaultFrame returns an identity projection at time 0.
func DefaultFrame() Frame {
	return Frame{ViewProj: mgl32.Ident4()}
}

// alignment and size follow the WGSL uniform address space rules.
func alignment(t node.Type) int {
	switch t {
	case node.TypeVec2:
		return 8
	case node.TypeVec3, node.TypeVec4:
		return 16
	default:
		return 4
	}
}

func size(t node.Type) int {
	return 4 * t.Width()
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}

func layout(uniforms []*node.Uniform) ([]Field, int) {
	fields := make([]Field, len(uniforms))
	off := headerSize
	for i, u := range uniforms {
		off = roundUp(off, alignment(u.Type()))
		fields[i] = Field{
			Name:    fmt.Sprintf("u%d_%s", i, identifier(u.Name())),
			Uniform: u,
			Offset:  off,
			Size:    size(u.Type()),
		}
		off += fields[i].Size
	}
	return fields, roundUp(off, 16)
}

// Pack returns the uniform buffer contents for f and the current uniform
// values, little endian.
func (m *Module) Pack(f Frame) []byte {
	return m.PackInto(make([]byte, m.Size), f)
}

// PackInto writes the uniform buffer into dst, growing it when it is
// shorter than Size, and returns it.
func (m *Module) PackInto(dst []byte, f Frame) []byte {
	if len(dst) < m.Size {
		dst = make([]byte, m.Size)
	}
	dst = dst[:m.Size]
	for i, v := range f.ViewProj {
		putFloat(dst, i*4, v)
	}
	for i, v := range f.Camera {
		putFloat(dst, 64+i*4, v)
	}
	putFloat(dst, 76, f.Time)
	for _, fd := range m.Fields {
		v := fd.Uniform.Get()
		for c := 0; c < v.Type.Width(); c++ {
			putFloat(dst, fd.Offset+c*4, float32(v.V[c]))
		}
	}
	return dst
}

func putFloat(b []byte, off int, f float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(f))
}
