package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// PulsingRingParams configures NewPulsingRing. Radii and thicknesses are in
// local units, where the unit quad spans [-0.5, 0.5].
type PulsingRingParams struct {
	PulsesPerGroup     float64  `toml:"pulses_per_group" yaml:"pulses_per_group"`
	DelayBetweenGroups float64  `toml:"delay_between_groups" yaml:"delay_between_groups"`
	Speed              float64  `toml:"speed" yaml:"speed"`
	StartColor         vfx.RGBA `toml:"start_color" yaml:"start_color"`
	EndColor           vfx.RGBA `toml:"end_color" yaml:"end_color"`
	StartThickness     float64  `toml:"start_thickness" yaml:"start_thickness"`
	EndThickness       float64  `toml:"end_thickness" yaml:"end_thickness"`
	MaxRadius          float64  `toml:"max_radius" yaml:"max_radius"`
	TransitionStart    float64  `toml:"transition_start" yaml:"transition_start"`
	TransitionDuration float64  `toml:"transition_duration" yaml:"transition_duration"`
	InnerSmoothness    float64  `toml:"inner_smoothness" yaml:"inner_smoothness"`
	OuterSmoothness    float64  `toml:"outer_smoothness" yaml:"outer_smoothness"`
}

// DefaultPulsingRingParams returns groups of three red pulses fading to
// transparent blue.
func DefaultPulsingRingParams() PulsingRingParams {
	return PulsingRingParams{
		PulsesPerGroup:     3,
		DelayBetweenGroups: 2,
		Speed:              1,
		StartColor:         vfx.RGBA{R: 1, G: 0, B: 0, A: 1},
		EndColor:           vfx.RGBA{R: 0, G: 0, B: 1, A: 0},
		StartThickness:     0.07,
		EndThickness:       0.02,
		MaxRadius:          0.45,
		TransitionStart:    0.6,
		TransitionDuration: 0.3,
		InnerSmoothness:    0.01,
		OuterSmoothness:    0.01,
	}
}

// PulsingRingUniforms are the handles of one pulsing ring.
type PulsingRingUniforms struct {
	PulsesPerGroup     *node.Uniform
	DelayBetweenGroups *node.Uniform
	Speed              *node.Uniform
	StartColor         *node.Uniform
	EndColor           *node.Uniform
	StartThickness     *node.Uniform
	EndThickness       *node.Uniform
	MaxRadius          *node.Uniform
	TransitionStart    *node.Uniform
	TransitionDuration *node.Uniform
	InnerSmoothness    *node.Uniform
	OuterSmoothness    *node.Uniform
}

// List returns the handles in declaration order.
func (u *PulsingRingUniforms) List() []*node.Uniform {
	return []*node.Uniform{
		u.PulsesPerGroup, u.DelayBetweenGroups, u.Speed, u.StartColor, u.EndColor,
		u.StartThickness, u.EndThickness, u.MaxRadius, u.TransitionStart,
		u.TransitionDuration, u.InnerSmoothness, u.OuterSmoothness,
	}
}

// Apply writes p into the uniforms.
func (u *PulsingRingUniforms) Apply(p PulsingRingParams) {
	u.PulsesPerGroup.SetFloat(p.PulsesPerGroup)
	u.DelayBetweenGroups.SetFloat(p.DelayBetweenGroups)
	u.Speed.SetFloat(p.Speed)
	setColor(u.StartColor, p.StartColor)
	setColor(u.EndColor, p.EndColor)
	u.StartThickness.SetFloat(p.StartThickness)
	u.EndThickness.SetFloat(p.EndThickness)
	u.MaxRadius.SetFloat(p.MaxRadius)
	u.TransitionStart.SetFloat(p.TransitionStart)
	u.TransitionDuration.SetFloat(p.TransitionDuration)
	u.InnerSmoothness.SetFloat(p.InnerSmoothness)
	u.OuterSmoothness.SetFloat(p.OuterSmoothness)
}

// PulsingRing emits groups of expanding rings separated by a pause. It is
// driven by the builtin Time and measures distance in PositionLocal.
type PulsingRing struct {
	Uniforms PulsingRingUniforms
	Color    node.Node
}

// NewPulsingRing builds a pulsing ring.
//
// A cycle lasts PulsesPerGroup+DelayBetweenGroups time units (scaled by
// Speed). During the first PulsesPerGroup units one ring per unit grows from
// the centre to MaxRadius; the rest of the cycle is empty.
func NewPulsingRing(p PulsingRingParams) *PulsingRing {
	u := PulsingRingUniforms{
		PulsesPerGroup:     node.UniformFloat("pulsesPerGroup", p.PulsesPerGroup),
		DelayBetweenGroups: node.UniformFloat("delayBetweenGroups", p.DelayBetweenGroups),
		Speed:              node.UniformFloat("speed", p.Speed),
		StartColor:         colorUniform("startColor", p.StartColor),
		EndColor:           colorUniform("endColor", p.EndColor),
		StartThickness:     node.UniformFloat("startThickness", p.StartThickness),
		EndThickness:       node.UniformFloat("endThickness", p.EndThickness),
		MaxRadius:          node.UniformFloat("maxRadius", p.MaxRadius),
		TransitionStart:    node.UniformFloat("transitionStart", p.TransitionStart),
		TransitionDuration: node.UniformFloat("transitionDuration", p.TransitionDuration),
		InnerSmoothness:    node.UniformFloat("innerSmoothness", p.InnerSmoothness),
		OuterSmoothness:    node.UniformFloat("outerSmoothness", p.OuterSmoothness),
	}

	pulses := u.PulsesPerGroup.Node()
	cycle := pulses.Add(u.DelayBetweenGroups.Node())
	progress := node.Time().Mul(u.Speed.Node()).Div(cycle).Fract()

	slot := progress.Mul(cycle)
	active := slot.LessThan(pulses).ToFloat()
	radiusProgress := slot.Fract().Mul(active)

	radius := radiusProgress.Mul(u.MaxRadius.Node())
	ts := u.TransitionStart.Node()
	transition := node.Smoothstep(ts, ts.Add(u.TransitionDuration.Node()), radiusProgress)
	thickness := node.Mix(u.StartThickness.Node(), u.EndThickness.Node(), transition)

	dist := node.PositionLocal().XY().Length()
	inner := radius.Sub(thickness)
	opacity := node.Smoothstep(inner, inner.Add(u.InnerSmoothness.Node()), dist).
		Sub(node.Smoothstep(radius.Sub(u.OuterSmoothness.Node()), radius, dist))

	color := node.Mix(u.StartColor.Node(), u.EndColor.Node(), transition)
	alpha := color.W().Mul(opacity).Mul(active)
	return &PulsingRing{
		Uniforms: u,
		Color:    node.Vec4(color.XYZ().Mul(alpha), alpha),
	}
}

// ColorNode returns the premultiplied output color.
func (fx *PulsingRing) ColorNode() node.Node { return fx.Color }

// UniformList returns the ring's uniform handles.
func (fx *PulsingRing) UniformList() []*node.Uniform { return fx.Uniforms.List() }
