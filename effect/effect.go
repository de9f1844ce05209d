// Package effect builds the composite effects of the gallery.
//
// Each constructor takes a params struct (see the matching Default…Params
// function for defaults) and returns a typed result holding its uniform
// handles and output nodes. Color outputs are premultiplied vec4 nodes.
//
// Parameters documented as baked (petal counts, octave counts) shape the
// graph itself; changing them means constructing a new effect. Every other
// parameter is a uniform and may be written between frames.
package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// Effect is implemented by every color-producing effect.
type Effect interface {
	ColorNode() node.Node
	UniformList() []*node.Uniform
}

// Geometric is an Effect that also replaces the vertex position.
type Geometric interface {
	Effect
	PositionNode() node.Node
}

// Option configures the instanced effects (impact and scatter).
type Option func(*options)

type options struct {
	index node.Node
	count int
}

// WithInstance decorrelates GPU-instanced copies. index is usually
// node.InstanceIndex(); count is the number of instances drawn. The index
// is added to every hash seed and time is offset by index/count*0.3, wrapped
// to [0, 1).
func WithInstance(index node.Node, count int) Option {
	return func(o *options) {
		o.index = index
		o.count = count
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// seedFor returns the seed node, shifted by the instance index if any.
func (o options) seedFor(seed node.Node) node.Node {
	if o.index.IsNil() {
		return seed
	}
	return seed.Add(o.index.ToFloat())
}

// timeFor returns the time node, staggered per instance if any.
func (o options) timeFor(t node.Node) node.Node {
	if o.index.IsNil() || o.count <= 0 {
		return t
	}
	stagger := o.index.ToFloat().Div(node.Float(float64(o.count))).Mul(node.Float(0.3))
	return t.Add(stagger).Mod(node.Float(1))
}

// uvCenter is uv - 0.5.
func uvCenter() node.Node {
	return node.UV().Sub(node.Float(0.5))
}

// uvCenterNDC is (uv - 0.5) * 2, spanning [-1, 1].
func uvCenterNDC() node.Node {
	return uvCenter().Mul(node.Float(2))
}

// premultiply turns a straight vec4 color into a premultiplied one.
func premultiply(c node.Node) node.Node {
	return node.Vec4(c.XYZ().Mul(c.W()), c.W())
}

func colorUniform(name string, c vfx.RGBA) *node.Uniform {
	return node.NewUniform(name, c.Value())
}

func setColor(u *node.Uniform, c vfx.RGBA) {
	u.SetVec4(c.R, c.G, c.B, c.A)
}
