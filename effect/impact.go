package effect

import (
	"math"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/sdf"
)

// ImpactParams configures NewImpact.
type ImpactParams struct {
	Time        float64  `toml:"time" yaml:"time"`
	Aspect      float64  `toml:"aspect" yaml:"aspect"`
	Rotation    float64  `toml:"rotation" yaml:"rotation"`
	CircleColor vfx.RGBA `toml:"circle_color" yaml:"circle_color"`
	VesicaColor vfx.RGBA `toml:"vesica_color" yaml:"vesica_color"`
	Duration    float64  `toml:"duration" yaml:"duration"`
	Seed        float64  `toml:"seed" yaml:"seed"`
	// VesicaCount is baked into the graph.
	VesicaCount     int     `toml:"vesica_count" yaml:"vesica_count"`
	CircleSizeStart float64 `toml:"circle_size_start" yaml:"circle_size_start"`
	CircleSizeEnd   float64 `toml:"circle_size_end" yaml:"circle_size_end"`
	CircleThickness float64 `toml:"circle_thickness" yaml:"circle_thickness"`
}

// DefaultImpactParams returns a black ring with three white petals.
func DefaultImpactParams() ImpactParams {
	return ImpactParams{
		Aspect:          1,
		CircleColor:     vfx.RGBA{R: 0, G: 0, B: 0, A: 1},
		VesicaColor:     vfx.RGBA{R: 1, G: 1, B: 1, A: 1},
		Duration:        1,
		VesicaCount:     3,
		CircleSizeStart: 0.5,
		CircleSizeEnd:   1,
		CircleThickness: 0.2,
	}
}

// ImpactUniforms are the handles of one impact.
type ImpactUniforms struct {
	Time            *node.Uniform
	Aspect          *node.Uniform
	Rotation        *node.Uniform
	CircleColor     *node.Uniform
	VesicaColor     *node.Uniform
	Duration        *node.Uniform
	Seed            *node.Uniform
	CircleSizeStart *node.Uniform
	CircleSizeEnd   *node.Uniform
	CircleThickness *node.Uniform
}

// List returns the handles in declaration order.
func (u *ImpactUniforms) List() []*node.Uniform {
	return []*node.Uniform{
		u.Time, u.Aspect, u.Rotation, u.CircleColor, u.VesicaColor,
		u.Duration, u.Seed, u.CircleSizeStart, u.CircleSizeEnd, u.CircleThickness,
	}
}

// Apply writes p into the uniforms. VesicaCount is ignored.
func (u *ImpactUniforms) Apply(p ImpactParams) {
	u.Time.SetFloat(p.Time)
	u.Aspect.SetFloat(p.Aspect)
	u.Rotation.SetFloat(p.Rotation)
	setColor(u.CircleColor, p.CircleColor)
	setColor(u.VesicaColor, p.VesicaColor)
	u.Duration.SetFloat(p.Duration)
	u.Seed.SetFloat(p.Seed)
	u.CircleSizeStart.SetFloat(p.CircleSizeStart)
	u.CircleSizeEnd.SetFloat(p.CircleSizeEnd)
	u.CircleThickness.SetFloat(p.CircleThickness)
}

// Impact is an expanding ring with a burst of vesica petals.
type Impact struct {
	Uniforms ImpactUniforms
	// Color is the ring plus every petal, added together.
	Color node.Node
	// Circle is the ring layer alone.
	Circle node.Node
	// Angles holds the rotation of each petal in radians, in
	// [-π, π). They depend only on the seed (and instance index).
	Angles []node.Node
}

// NewImpact builds an impact. Time runs over [0, 1]; loop it by resetting
// Time to 0 and changing Seed (see Driver).
func NewImpact(p ImpactParams, opts ...Option) *Impact {
	o := applyOptions(opts)
	u := ImpactUniforms{
		Time:            node.UniformFloat("time", p.Time),
		Aspect:          node.UniformFloat("aspect", p.Aspect),
		Rotation:        node.UniformFloat("rotation", p.Rotation),
		CircleColor:     colorUniform("circleColor", p.CircleColor),
		VesicaColor:     colorUniform("vesicaColor", p.VesicaColor),
		Duration:        node.UniformFloat("duration", p.Duration),
		Seed:            node.UniformFloat("seed", p.Seed),
		CircleSizeStart: node.UniformFloat("circleSizeStart", p.CircleSizeStart),
		CircleSizeEnd:   node.UniformFloat("circleSizeEnd", p.CircleSizeEnd),
		CircleThickness: node.UniformFloat("circleThickness", p.CircleThickness),
	}

	t := o.timeFor(u.Time.Node())
	pos := node.Rotate(
		uvCenterNDC().Mul(node.Vec2(u.Aspect.Node(), node.Float(1))),
		u.Rotation.Node(),
	)

	radius := t.Sqrt()
	thickness := u.CircleThickness.Node().Mul(node.Float(0.5))
	css, cse := u.CircleSizeStart.Node(), u.CircleSizeEnd.Node()
	circleSize := css.Add(cse.Sub(css).Mul(radius)).Sub(thickness)
	circle := sdf.Circle(pos, circleSize).Abs().Step(thickness).ToVec4().
		Mul(premultiply(u.CircleColor.Node()))

	fx := &Impact{Uniforms: u, Circle: circle}
	growth := t.OneMinus().Mul(t).Mul(node.Float(2))
	petal := premultiply(u.VesicaColor.Node())
	seed := o.seedFor(u.Seed.Node())

	out := circle
	for i := 0; i < p.VesicaCount; i++ {
		angle := petalAngle(seed.Add(node.Float(float64(i))))
		fx.Angles = append(fx.Angles, angle)
		rp := node.Rotate(pos, angle).Add(node.Vec2(node.Float(0), t.Mul(node.Float(0.9))))
		d := sdf.Vesica(rp, growth, growth.Mul(node.Float(0.8)))
		out = out.Add(d.Step(node.Float(0.01)).ToVec4().Mul(petal))
	}
	fx.Color = out
	return fx
}

// petalAngle maps a seed to a rotation in [-π, π).
func petalAngle(seed node.Node) node.Node {
	return node.Hash(seed).Mul(node.Float(2)).Sub(node.Float(1)).Mul(node.Float(math.Pi))
}

// ColorNode returns the premultiplied output color.
func (fx *Impact) ColorNode() node.Node { return fx.Color }

// UniformList returns the impact's uniform handles.
func (fx *Impact) UniformList() []*node.Uniform { return fx.Uniforms.List() }
