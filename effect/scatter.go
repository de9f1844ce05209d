package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/sdf"
)

// ScatterParams configures NewScatter.
type ScatterParams struct {
	Time        float64  `toml:"time" yaml:"time"`
	Aspect      float64  `toml:"aspect" yaml:"aspect"`
	VesicaColor vfx.RGBA `toml:"vesica_color" yaml:"vesica_color"`
	Duration    float64  `toml:"duration" yaml:"duration"`
	Seed        float64  `toml:"seed" yaml:"seed"`
	// VesicaCount is baked into the graph.
	VesicaCount int     `toml:"vesica_count" yaml:"vesica_count"`
	RadiusStart float64 `toml:"radius_start" yaml:"radius_start"`
	RadiusEnd   float64 `toml:"radius_end" yaml:"radius_end"`
}

// DefaultScatterParams returns five white petals growing from nothing.
func DefaultScatterParams() ScatterParams {
	return ScatterParams{
		Aspect:      1,
		VesicaColor: vfx.RGBA{R: 1, G: 1, B: 1, A: 1},
		Duration:    1,
		VesicaCount: 5,
		RadiusStart: 0,
		RadiusEnd:   1,
	}
}

// ScatterUniforms are the handles of one scatter.
type ScatterUniforms struct {
	Time        *node.Uniform
	Aspect      *node.Uniform
	VesicaColor *node.Uniform
	Duration    *node.Uniform
	Seed        *node.Uniform
	RadiusStart *node.Uniform
	RadiusEnd   *node.Uniform
}

// List returns the handles in declaration order.
func (u *ScatterUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Time, u.Aspect, u.VesicaColor, u.Duration, u.Seed, u.RadiusStart, u.RadiusEnd}
}

// Apply writes p into the uniforms. VesicaCount is ignored.
func (u *ScatterUniforms) Apply(p ScatterParams) {
	u.Time.SetFloat(p.Time)
	u.Aspect.SetFloat(p.Aspect)
	setColor(u.VesicaColor, p.VesicaColor)
	u.Duration.SetFloat(p.Duration)
	u.Seed.SetFloat(p.Seed)
	u.RadiusStart.SetFloat(p.RadiusStart)
	u.RadiusEnd.SetFloat(p.RadiusEnd)
}

// Scatter is a burst of vesica petals without the ring of Impact.
type Scatter struct {
	Uniforms ScatterUniforms
	Color    node.Node
	Angles   []node.Node
}

// NewScatter builds a scatter. Petal size follows the same parabolic
// profile as Impact, scaled by RadiusStart..RadiusEnd over time.
func NewScatter(p ScatterParams, opts ...Option) *Scatter {
	o := applyOptions(opts)
	u := ScatterUniforms{
		Time:        node.UniformFloat("time", p.Time),
		Aspect:      node.UniformFloat("aspect", p.Aspect),
		VesicaColor: colorUniform("vesicaColor", p.VesicaColor),
		Duration:    node.UniformFloat("duration", p.Duration),
		Seed:        node.UniformFloat("seed", p.Seed),
		RadiusStart: node.UniformFloat("radiusStart", p.RadiusStart),
		RadiusEnd:   node.UniformFloat("radiusEnd", p.RadiusEnd),
	}

	t := o.timeFor(u.Time.Node())
	pos := uvCenterNDC().Mul(node.Vec2(u.Aspect.Node(), node.Float(1)))
	scale := node.Mix(u.RadiusStart.Node(), u.RadiusEnd.Node(), t)
	r := t.OneMinus().Mul(t).Mul(node.Float(2)).Mul(scale)
	petal := premultiply(u.VesicaColor.Node())
	seed := o.seedFor(u.Seed.Node())

	fx := &Scatter{Uniforms: u}
	out := node.V4(0, 0, 0, 0)
	for i := 0; i < p.VesicaCount; i++ {
		angle := petalAngle(seed.Add(node.Float(float64(i))))
		fx.Angles = append(fx.Angles, angle)
		rp := node.Rotate(pos, angle).Add(node.Vec2(node.Float(0), t.Mul(node.Float(0.9))))
		d := sdf.Vesica(rp, r, r.Mul(node.Float(0.8)))
		// Inside coverage: 1 where d <= 0, so petals are filled lenses.
		out = out.Add(node.Step(d, node.Float(0)).ToVec4().Mul(petal))
	}
	fx.Color = out
	return fx
}

// ColorNode returns the premultiplied output color.
func (fx *Scatter) ColorNode() node.Node { return fx.Color }

// UniformList returns the scatter's uniform handles.
func (fx *Scatter) UniformList() []*node.Uniform { return fx.Uniforms.List() }
