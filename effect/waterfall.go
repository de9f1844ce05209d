package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/blend"
	"github.com/gogpu/vfx/node"
)

// FoamLayer configures one band of streaming foam.
type FoamLayer struct {
	Speed     float64  `toml:"speed" yaml:"speed"`
	Color     vfx.RGBA `toml:"color" yaml:"color"`
	Alpha     float64  `toml:"alpha" yaml:"alpha"`
	Scale     vfx.Vec2 `toml:"scale" yaml:"scale"`
	Threshold float64  `toml:"threshold" yaml:"threshold"`
}

// FoamParams configures NewFoam.
type FoamParams struct {
	FlowSpeed          float64  `toml:"flow_speed" yaml:"flow_speed"`
	DeepBlueScale      float64  `toml:"deep_blue_scale" yaml:"deep_blue_scale"`
	DeepBlueFlowSpeed  float64  `toml:"deep_blue_flow_speed" yaml:"deep_blue_flow_speed"`
	DeepBlueNoiseSpeed float64  `toml:"deep_blue_noise_speed" yaml:"deep_blue_noise_speed"`
	DeepBlueColor      vfx.RGBA `toml:"deep_blue_color" yaml:"deep_blue_color"`
	LightBlueColor     vfx.RGBA `toml:"light_blue_color" yaml:"light_blue_color"`
	// BaseOpacity scales the water body under the foam; 0 leaves foam only.
	BaseOpacity float64 `toml:"base_opacity" yaml:"base_opacity"`
	// Bulge displaces Position along the normal by noise.
	Bulge float64 `toml:"bulge" yaml:"bulge"`

	SlowFoam   FoamLayer `toml:"slow_foam" yaml:"slow_foam"`
	MediumFoam FoamLayer `toml:"medium_foam" yaml:"medium_foam"`
	FastFoam   FoamLayer `toml:"fast_foam" yaml:"fast_foam"`

	// NormalDriven is baked: it speeds up and stretches the flow on
	// surfaces that face sideways (large |normal.z| relative to |normal.y|).
	NormalDriven              bool    `toml:"normal_driven" yaml:"normal_driven"`
	VerticalSpeedMultiplier   float64 `toml:"vertical_speed_multiplier" yaml:"vertical_speed_multiplier"`
	HorizontalSpeedMultiplier float64 `toml:"horizontal_speed_multiplier" yaml:"horizontal_speed_multiplier"`
	SpeedTransitionPower      float64 `toml:"speed_transition_power" yaml:"speed_transition_power"`
}

// DefaultFoamParams returns the river look: a blue body with three faint
// white foam bands, not driven by the normal.
func DefaultFoamParams() FoamParams {
	white := vfx.RGBA{R: 1, G: 1, B: 1, A: 1}
	return FoamParams{
		FlowSpeed:          0.02,
		DeepBlueScale:      3,
		DeepBlueFlowSpeed:  0.2,
		DeepBlueNoiseSpeed: 0.1,
		DeepBlueColor:      vfx.Hex("#07e"),
		LightBlueColor:     vfx.Hex("#08f"),
		BaseOpacity:        1,
		SlowFoam:           FoamLayer{Speed: 0.4, Color: white, Alpha: 0.05, Scale: vfx.V2(1.5, 3), Threshold: 0.3},
		MediumFoam:         FoamLayer{Speed: 0.15, Color: white, Alpha: 0.25, Scale: vfx.V2(2, 15), Threshold: 0.25},
		FastFoam:           FoamLayer{Speed: 0.2, Color: white, Alpha: 0.5, Scale: vfx.V2(3, 20), Threshold: 0.3},

		VerticalSpeedMultiplier:   2.2,
		HorizontalSpeedMultiplier: 0.5,
		SpeedTransitionPower:      1.5,
	}
}

// FoamLayerUniforms are the handles of one foam band.
type FoamLayerUniforms struct {
	Speed     *node.Uniform
	Color     *node.Uniform
	Alpha     *node.Uniform
	Scale     *node.Uniform
	Threshold *node.Uniform
}

func newFoamLayerUniforms(prefix string, l FoamLayer) FoamLayerUniforms {
	return FoamLayerUniforms{
		Speed:     node.UniformFloat(prefix+"Speed", l.Speed),
		Color:     colorUniform(prefix+"Color", l.Color),
		Alpha:     node.UniformFloat(prefix+"Alpha", l.Alpha),
		Scale:     node.UniformVec2(prefix+"Scale", l.Scale.X, l.Scale.Y),
		Threshold: node.UniformFloat(prefix+"Threshold", l.Threshold),
	}
}

func (u *FoamLayerUniforms) apply(l FoamLayer) {
	u.Speed.SetFloat(l.Speed)
	setColor(u.Color, l.Color)
	u.Alpha.SetFloat(l.Alpha)
	u.Scale.SetVec2(l.Scale.X, l.Scale.Y)
	u.Threshold.SetFloat(l.Threshold)
}

func (u *FoamLayerUniforms) list() []*node.Uniform {
	return []*node.Uniform{u.Speed, u.Color, u.Alpha, u.Scale, u.Threshold}
}

// FoamUniforms are the handles of one foam surface. The speed multiplier
// handles are nil unless the surface is normal driven.
type FoamUniforms struct {
	FlowSpeed          *node.Uniform
	DeepBlueScale      *node.Uniform
	DeepBlueFlowSpeed  *node.Uniform
	DeepBlueNoiseSpeed *node.Uniform
	DeepBlueColor      *node.Uniform
	LightBlueColor     *node.Uniform
	BaseOpacity        *node.Uniform
	Bulge              *node.Uniform

	SlowFoam   FoamLayerUniforms
	MediumFoam FoamLayerUniforms
	FastFoam   FoamLayerUniforms

	VerticalSpeedMultiplier   *node.Uniform
	HorizontalSpeedMultiplier *node.Uniform
	SpeedTransitionPower      *node.Uniform
}

// List returns the non-nil handles.
func (u *FoamUniforms) List() []*node.Uniform {
	out := []*node.Uniform{
		u.FlowSpeed, u.DeepBlueScale, u.DeepBlueFlowSpeed, u.DeepBlueNoiseSpeed,
		u.DeepBlueColor, u.LightBlueColor, u.BaseOpacity, u.Bulge,
	}
	out = append(out, u.SlowFoam.list()...)
	out = append(out, u.MediumFoam.list()...)
	out = append(out, u.FastFoam.list()...)
	for _, h := range []*node.Uniform{u.VerticalSpeedMultiplier, u.HorizontalSpeedMultiplier, u.SpeedTransitionPower} {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Apply writes p into the uniforms. NormalDriven is ignored.
func (u *FoamUniforms) Apply(p FoamParams) {
	u.FlowSpeed.SetFloat(p.FlowSpeed)
	u.DeepBlueScale.SetFloat(p.DeepBlueScale)
	u.DeepBlueFlowSpeed.SetFloat(p.DeepBlueFlowSpeed)
	u.DeepBlueNoiseSpeed.SetFloat(p.DeepBlueNoiseSpeed)
	setColor(u.DeepBlueColor, p.DeepBlueColor)
	setColor(u.LightBlueColor, p.LightBlueColor)
	u.BaseOpacity.SetFloat(p.BaseOpacity)
	u.Bulge.SetFloat(p.Bulge)
	u.SlowFoam.apply(p.SlowFoam)
	u.MediumFoam.apply(p.MediumFoam)
	u.FastFoam.apply(p.FastFoam)
	if u.VerticalSpeedMultiplier != nil {
		u.VerticalSpeedMultiplier.SetFloat(p.VerticalSpeedMultiplier)
		u.HorizontalSpeedMultiplier.SetFloat(p.HorizontalSpeedMultiplier)
		u.SpeedTransitionPower.SetFloat(p.SpeedTransitionPower)
	}
}

// Foam is a streaming water surface: a two-tone body from fractal noise
// under three step-thresholded foam bands, composited source-over. It is
// animated by the builtin Time.
type Foam struct {
	Uniforms FoamUniforms
	// Speed multiplies every flow speed; Stretch scales the flow axis.
	// Both are 1 unless the surface is normal driven.
	Speed   node.Node
	Stretch node.Node
	// Position is PositionLocal pushed along the normal by Bulge.
	Position node.Node
	Color    node.Node
}

// Per-band second-octave scale factors, time rates and weights.
type foamShape struct {
	scale        [2]float64
	rate1, rate2 float64
	weight       float64
}

var (
	slowShape   = foamShape{scale: [2]float64{0.7, 0.8}, rate1: 0.2, rate2: 0.15, weight: 0.6}
	mediumShape = foamShape{scale: [2]float64{0.9, 1.2}, rate1: 0.4, rate2: 0.35, weight: 0.5}
	fastShape   = foamShape{scale: [2]float64{1.3, 1.25}, rate1: 0.8, rate2: 0.6, weight: 0.6}
)

// NewFoam builds a foam surface.
func NewFoam(p FoamParams) *Foam {
	u := FoamUniforms{
		FlowSpeed:          node.UniformFloat("flowSpeed", p.FlowSpeed),
		DeepBlueScale:      node.UniformFloat("deepBlueScale", p.DeepBlueScale),
		DeepBlueFlowSpeed:  node.UniformFloat("deepBlueFlowSpeed", p.DeepBlueFlowSpeed),
		DeepBlueNoiseSpeed: node.UniformFloat("deepBlueNoiseSpeed", p.DeepBlueNoiseSpeed),
		DeepBlueColor:      colorUniform("deepBlueColor", p.DeepBlueColor),
		LightBlueColor:     colorUniform("lightBlueColor", p.LightBlueColor),
		BaseOpacity:        node.UniformFloat("baseOpacity", p.BaseOpacity),
		Bulge:              node.UniformFloat("bulge", p.Bulge),
		SlowFoam:           newFoamLayerUniforms("slowFoam", p.SlowFoam),
		MediumFoam:         newFoamLayerUniforms("mediumFoam", p.MediumFoam),
		FastFoam:           newFoamLayerUniforms("fastFoam", p.FastFoam),
	}

	fx := &Foam{Speed: node.Float(1), Stretch: node.Float(1)}
	if p.NormalDriven {
		u.VerticalSpeedMultiplier = node.UniformFloat("verticalSpeedMultiplier", p.VerticalSpeedMultiplier)
		u.HorizontalSpeedMultiplier = node.UniformFloat("horizontalSpeedMultiplier", p.HorizontalSpeedMultiplier)
		u.SpeedTransitionPower = node.UniformFloat("speedTransitionPower", p.SpeedTransitionPower)

		n := node.NormalLocal()
		side, top := n.Z().Abs(), n.Y().Abs()
		vertical := node.Smoothstep(node.Float(0.1), node.Float(0.9),
			side.Div(side.Add(top)).Pow(u.SpeedTransitionPower.Node()))
		fx.Speed = node.Mix(u.HorizontalSpeedMultiplier.Node(), u.VerticalSpeedMultiplier.Node(), vertical)
		fx.Stretch = node.Mix(node.Float(1), node.Float(3), vertical)
	}
	fx.Uniforms = u

	uv := node.UV()
	t := node.Time()
	flowingY := uv.Y().Add(t.Mul(u.FlowSpeed.Node().Mul(fx.Speed)))

	deepY := uv.Y().Add(t.Mul(u.DeepBlueFlowSpeed.Node().Mul(fx.Speed)))
	deepP := node.Vec3(uv.X(), deepY.Mul(fx.Stretch), t.Mul(u.DeepBlueNoiseSpeed.Node())).
		Mul(u.DeepBlueScale.Node())
	band := node.Step(node.Float(0), node.FractalNoise3Vec3(deepP, 3, 2, 0.5).X())
	body := node.Mix(u.LightBlueColor.Node().XYZ(), u.DeepBlueColor.Node().XYZ(), band)

	variation := node.Float(0.9).Add(
		node.Noise3(node.Vec3(uv.Mul(node.Float(2)), t.Mul(node.Float(0.1)))).Mul(node.Float(0.2)))
	opacity := u.BaseOpacity.Node()
	base := node.Vec4(body.Mul(variation).Mul(opacity), opacity)

	layer := func(l FoamLayerUniforms, s foamShape) node.Node {
		flow := flowingY.Add(t.Mul(l.Speed.Node().Mul(fx.Speed))).Mul(fx.Stretch)
		scale := l.Scale.Node()
		n1 := node.Noise3(node.Vec3(
			uv.X().Mul(scale.X()),
			flow.Mul(scale.Y()),
			t.Mul(node.Float(s.rate1)),
		))
		n2 := node.Noise3(node.Vec3(
			uv.X().Mul(scale.X().Mul(node.Float(s.scale[0]))),
			flow.Mul(scale.Y().Mul(node.Float(s.scale[1]))),
			t.Mul(node.Float(s.rate2)),
		))
		mixed := n1.Mul(node.Float(s.weight)).Add(n2.Mul(node.Float(1 - s.weight)))
		a := node.Step(l.Threshold.Node(), mixed).Mul(l.Alpha.Node()).Mul(l.Color.Node().W())
		return node.Vec4(l.Color.Node().XYZ().Mul(a), a)
	}

	fx.Color = blend.Over(base,
		layer(u.SlowFoam, slowShape),
		layer(u.MediumFoam, mediumShape),
		layer(u.FastFoam, fastShape),
	)

	local := node.PositionLocal()
	bubble := node.Noise3(local.Mul(node.Float(4)).Add(node.Vec3(node.Float(0), t, node.Float(0))))
	fx.Position = local.Add(node.NormalLocal().Mul(bubble.Mul(u.Bulge.Node())))
	return fx
}

// ColorNode returns the premultiplied output color.
func (fx *Foam) ColorNode() node.Node { return fx.Color }

// UniformList returns the surface's uniform handles.
func (fx *Foam) UniformList() []*node.Uniform { return fx.Uniforms.List() }

// PositionNode returns the bulged vertex position.
func (fx *Foam) PositionNode() node.Node { return fx.Position }

// WavesParams configures NewWaves.
type WavesParams struct {
	Color     vfx.RGBA `toml:"color" yaml:"color"`
	Frequency float64  `toml:"frequency" yaml:"frequency"`
	Speed     float64  `toml:"speed" yaml:"speed"`
	// Width is the fraction of each wave period that is lit.
	Width     float64 `toml:"width" yaml:"width"`
	MaxRadius float64 `toml:"max_radius" yaml:"max_radius"`
}

// DefaultWavesParams returns white ripples that vanish at the quad's edge.
func DefaultWavesParams() WavesParams {
	return WavesParams{
		Color:     vfx.RGBA{R: 1, G: 1, B: 1, A: 1},
		Frequency: 8,
		Speed:     1,
		Width:     0.2,
		MaxRadius: 0.5,
	}
}

// WavesUniforms are the handles of one ripple field.
type WavesUniforms struct {
	Color     *node.Uniform
	Frequency *node.Uniform
	Speed     *node.Uniform
	Width     *node.Uniform
	MaxRadius *node.Uniform
}

// List returns the handles in declaration order.
func (u *WavesUniforms) List() []*node.Uniform {
	return []*node.Uniform{u.Color, u.Frequency, u.Speed, u.Width, u.MaxRadius}
}

// Apply writes p into the uniforms.
func (u *WavesUniforms) Apply(p WavesParams) {
	setColor(u.Color, p.Color)
	u.Frequency.SetFloat(p.Frequency)
	u.Speed.SetFloat(p.Speed)
	u.Width.SetFloat(p.Width)
	u.MaxRadius.SetFloat(p.MaxRadius)
}

// Waves are concentric ripples travelling outward from the quad's center.
// They fade linearly with distance and are fully transparent past
// MaxRadius.
type Waves struct {
	Uniforms WavesUniforms
	Color    node.Node
}

// NewWaves builds a ripple field animated by the builtin Time.
func NewWaves(p WavesParams) *Waves {
	u := WavesUniforms{
		Color:     colorUniform("color", p.Color),
		Frequency: node.UniformFloat("frequency", p.Frequency),
		Speed:     node.UniformFloat("speed", p.Speed),
		Width:     node.UniformFloat("width", p.Width),
		MaxRadius: node.UniformFloat("maxRadius", p.MaxRadius),
	}
	dist := uvCenter().Length()
	maxR := u.MaxRadius.Node()
	phase := dist.Mul(u.Frequency.Node()).Sub(node.Time().Mul(u.Speed.Node())).Fract()
	ring := node.Step(u.Width.Node().OneMinus(), phase)
	fade := dist.Div(maxR).OneMinus().Mul(node.Step(dist, maxR))
	a := ring.Mul(fade).Mul(u.Color.Node().W())
	return &Waves{
		Uniforms: u,
		Color:    node.Vec4(u.Color.Node().XYZ().Mul(a), a),
	}
}

// ColorNode returns the premultiplied output color.
func (fx *Waves) ColorNode() node.Node { return fx.Color }

// UniformList returns the field's uniform handles.
func (fx *Waves) UniformList() []*node.Uniform { return fx.Uniforms.List() }

// WaterfallParams configures the five parts of NewWaterfall.
type WaterfallParams struct {
	River       FoamParams  `toml:"river" yaml:"river"`
	Fall        FoamParams  `toml:"fall" yaml:"fall"`
	RoundedEdge FoamParams  `toml:"rounded_edge" yaml:"rounded_edge"`
	ImpactFoam  FoamParams  `toml:"impact_foam" yaml:"impact_foam"`
	ImpactWaves WavesParams `toml:"impact_waves" yaml:"impact_waves"`
}

// DefaultWaterfallParams returns the stock waterfall scene: a calm river, a
// fast normal-driven fall, a foam-only lip where the two meet, a bubbling
// white impact foam and its ripples.
func DefaultWaterfallParams() WaterfallParams {
	river := DefaultFoamParams()

	fall := DefaultFoamParams()
	fall.NormalDriven = true

	edge := DefaultFoamParams()
	edge.NormalDriven = true
	edge.BaseOpacity = 0
	edge.SlowFoam.Alpha = 0.3
	edge.MediumFoam.Alpha = 0.5
	edge.FastFoam.Alpha = 0.8
	edge.FastFoam.Threshold = 0.1

	impact := DefaultFoamParams()
	impact.DeepBlueColor = vfx.RGBA{R: 0.85, G: 0.92, B: 1, A: 1}
	impact.LightBlueColor = vfx.RGBA{R: 1, G: 1, B: 1, A: 1}
	impact.FlowSpeed = 0.1
	impact.Bulge = 0.05

	return WaterfallParams{
		River:       river,
		Fall:        fall,
		RoundedEdge: edge,
		ImpactFoam:  impact,
		ImpactWaves: DefaultWavesParams(),
	}
}

// Waterfall bundles the parts of a waterfall scene. Each part is meant for
// its own mesh; Color stacks them on one quad for previews.
type Waterfall struct {
	River       *Foam
	Fall        *Foam
	RoundedEdge *Foam
	ImpactFoam  *Foam
	ImpactWaves *Waves
}

// NewWaterfall builds all five parts.
func NewWaterfall(p WaterfallParams) *Waterfall {
	return &Waterfall{
		River:       NewFoam(p.River),
		Fall:        NewFoam(p.Fall),
		RoundedEdge: NewFoam(p.RoundedEdge),
		ImpactFoam:  NewFoam(p.ImpactFoam),
		ImpactWaves: NewWaves(p.ImpactWaves),
	}
}

// Color composites the parts source-over in declaration order.
func (w *Waterfall) Color() node.Node {
	return blend.Over(
		w.River.Color,
		w.Fall.Color,
		w.RoundedEdge.Color,
		w.ImpactFoam.Color,
		w.ImpactWaves.Color,
	)
}

// ColorNode returns Color.
func (w *Waterfall) ColorNode() node.Node { return w.Color() }

// UniformList returns every part's handles.
func (w *Waterfall) UniformList() []*node.Uniform {
	var out []*node.Uniform
	for _, fx := range []Effect{w.River, w.Fall, w.RoundedEdge, w.ImpactFoam, w.ImpactWaves} {
		out = append(out, fx.UniformList()...)
	}
	return out
}
