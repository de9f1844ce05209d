package shader

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/vfx/effect"
	"github.com/gogpu/vfx/grass"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/shape"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0.5, "0.5"},
		{-2, "-2.0"},
		{1e6, "1e+06"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		got, err := literal(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("literal(%g) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), 1e300} {
		if _, err := literal(bad); !errors.Is(err, ErrNonFinite) {
			t.Errorf("literal(%g) err = %v, want ErrNonFinite", bad, err)
		}
	}
}

func TestLayout(t *testing.T) {
	uniforms := []*node.Uniform{
		node.UniformFloat("a", 0),
		node.UniformVec3("b", 0, 0, 0),
		node.UniformVec2("c", 0, 0),
		node.UniformVec4("d", 0, 0, 0, 0),
		node.UniformBool("e", false),
	}
	fields, size := layout(uniforms)
	wantOffsets := []int{80, 96, 112, 128, 144}
	for i, f := range fields {
		if f.Offset != wantOffsets[i] {
			t.Errorf("field %s offset = %d, want %d", f.Name, f.Offset, wantOffsets[i])
		}
	}
	if size != 160 {
		t.Errorf("size = %d, want 160", size)
	}
	if fields[1].Name != "u1_b" || fields[1].Size != 12 {
		t.Errorf("field 1 = %+v", fields[1])
	}
}

func readFloat(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestPack(t *testing.T) {
	tint := node.UniformVec4("tint", 1, 0.5, 0.25, 1)
	gain := node.UniformFloat("gain", 0.5)
	m, err := Generate(Graph{Color: tint.Node().Mul(gain.Node())})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Fields) != 2 || m.Fields[0].Uniform != tint || m.Fields[1].Offset != 96 {
		t.Fatalf("fields = %+v", m.Fields)
	}
	if m.Size != 112 {
		t.Fatalf("Size = %d, want 112", m.Size)
	}

	f := DefaultFrame()
	f.Camera = mgl32.Vec3{1, 2, 3}
	f.Time = 2.5
	gain.SetFloat(0.75)
	buf := m.Pack(f)
	if len(buf) != 112 {
		t.Fatalf("len = %d", len(buf))
	}
	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {4, 0}, {20, 1}, {60, 1},
		{64, 1}, {68, 2}, {72, 3}, {76, 2.5},
		{80, 1}, {84, 0.5}, {88, 0.25}, {92, 1},
		{96, 0.75},
	}
	for _, c := range checks {
		if got := readFloat(buf, c.off); got != c.want {
			t.Errorf("offset %d = %g, want %g", c.off, got, c.want)
		}
	}

	reuse := m.PackInto(make([]byte, 0, 256), f)
	if !reflect.DeepEqual(reuse, buf) {
		t.Error("PackInto differs from Pack")
	}
}

func TestGenerateHelpers(t *testing.T) {
	tests := []struct {
		name  string
		color node.Node
		want  []string
		avoid []string
	}{
		{
			name:  "plain",
			color: node.V4(1, 0, 0, 1),
			want:  []string{"fn vs_main(", "fn fs_main(", "var<uniform> fx: Fx;", "vec4<f32>(1.0, 0.0, 0.0, 1.0)"},
			avoid: []string{"fx_pcg", "@location(2) uv"},
		},
		{
			name:  "hash",
			color: node.Hash(node.Time()).ToVec4(),
			want:  []string{"fn fx_pcg(", "fn fx_hash(", "fx_hash(", "fx.time"},
			avoid: []string{"fn fx_noise3("},
		},
		{
			name:  "noise",
			color: node.Noise3(node.Vec3(node.UV(), node.Float(0))).ToVec4(),
			want:  []string{"fn fx_pcg(", "fn fx_noise3(", "@location(2) uv: vec2<f32>", "vout.uv = vin.uv;"},
			avoid: []string{"fn fx_hash("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(Graph{Color: tt.color})
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range tt.want {
				if !strings.Contains(m.Source, s) {
					t.Errorf("source lacks %q", s)
				}
			}
			for _, s := range tt.avoid {
				if strings.Contains(m.Source, s) {
					t.Errorf("source has %q", s)
				}
			}
		})
	}
}

func TestGenerateExpressions(t *testing.T) {
	x := node.UniformFloat("x", 1).Node()
	on := node.UniformBool("on", true).Node()
	v := node.Vec3(x, x, x)
	color := node.Vec4(
		node.Select(on, v.Mod(node.Float(2)), node.Pow(v, x)),
		node.Step(x, node.Float(0.5)),
	)
	m, err := Generate(Graph{Color: color})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		"(fx.u0_on != 0.0)",
		" - ",
		"* floor(",
		"pow(",
		"vec3<f32>(v",
		"select(",
		"step(",
	} {
		if !strings.Contains(m.Source, s) {
			t.Errorf("source lacks %q", s)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
		want error
	}{
		{"no color", Graph{}, ErrNoColor},
		{"bool color", Graph{Color: node.Bool(true)}, ErrOutputType},
		{"vec2 position", Graph{Color: node.Float(1), Position: node.V2(0, 0)}, ErrOutputType},
		{"nan", Graph{Color: node.Float(math.NaN())}, ErrNonFinite},
		{"attribute", Graph{Color: node.Vec4(
			node.Attribute("w", node.TypeVec2),
			node.Attribute("w", node.TypeFloat),
			node.Float(1),
		)}, ErrAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.g); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNarrowColorWidens(t *testing.T) {
	m, err := Generate(Graph{Color: node.V3(1, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.Source, "-> @location(0) vec4<f32>") {
		t.Error("fragment output is not vec4")
	}
}

func TestGrassLayout(t *testing.T) {
	wind := grass.NewWind(grass.DefaultWindParams())
	color := node.Attribute(grass.AttrColor, node.TypeVec3)
	m, err := Generate(Graph{Color: color, Position: wind.Position})
	if err != nil {
		t.Fatal(err)
	}
	if m.HasUV {
		t.Error("grass shader reads uv")
	}
	g := &grass.Geometry{}
	if got, want := m.VertexLayout(), g.Layout(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %+v\nwant %+v", got, want)
	}
	if !strings.Contains(m.Source, "vout.a2_color = vin.a2_color;") {
		t.Error("color attribute is not forwarded to the fragment stage")
	}
	if strings.Contains(m.Source, "vout.a0_bladeHeight") {
		t.Error("vertex-only attribute forwarded")
	}
}

func TestPipelineState(t *testing.T) {
	m, err := Generate(Graph{Color: node.UV().ToVec4()})
	if err != nil {
		t.Fatal(err)
	}
	l := m.VertexLayout()
	if l.ArrayStride != 32 || len(l.Attributes) != 3 || l.Attributes[2].ShaderLocation != 2 {
		t.Errorf("layout = %+v", l)
	}
	bg := m.BindGroupLayout("fx")
	e := bg.Entries[0]
	if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform || e.Buffer.MinBindingSize != uint64(m.Size) {
		t.Errorf("entry = %+v", e)
	}
	if e.Visibility != gputypes.ShaderStagesVertexFragment {
		t.Errorf("visibility = %v", e.Visibility)
	}
	ct := ColorTarget(gputypes.TextureFormatBGRA8Unorm)
	if ct.Blend == nil || *ct.Blend != gputypes.BlendStatePremultiplied() {
		t.Errorf("blend = %+v", ct.Blend)
	}
	if bg.Label != "fx" || len(bg.Entries) != 1 {
		t.Errorf("bind group layout = %+v", bg)
	}
	d := m.Descriptor("uv")
	if d.Label != "uv" || d.Source.WGSL != m.Source || d.Source.SPIRV != nil {
		t.Errorf("descriptor = %+v", d)
	}
	if Primitive().Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Error("primitive topology")
	}
}

func TestEffectsParse(t *testing.T) {
	wf := effect.NewWaterfall(effect.DefaultWaterfallParams())
	tests := []struct {
		name string
		g    Graph
	}{
		{"shape", Graph{Color: shape.New(shape.DefaultParams()).Color}},
		{"impact", Graph{Color: effect.NewImpact(effect.DefaultImpactParams()).Color}},
		{"scatter", Graph{Color: effect.NewScatter(effect.DefaultScatterParams()).Color}},
		{"pulsing ring", Graph{Color: effect.NewPulsingRing(effect.DefaultPulsingRingParams()).Color}},
		{"water", Graph{Color: effect.NewWater(effect.DefaultWaterParams()).Color}},
		{"gradient", Graph{Color: effect.NewGradient(effect.DefaultGradientParams()).Color}},
		{"dot noise", Graph{Color: effect.NewDotNoise(effect.DefaultDotNoiseParams()).Color}},
		{"template", Graph{Color: effect.NewTemplate(effect.DefaultTemplateParams(), nil).Color}},
		{"triple explosion", Graph{Color: effect.NewTripleExplosion().ColorNode()}},
		{"waterfall", Graph{Color: wf.ColorNode(), Position: wf.Fall.Position}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(tt.g)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := naga.Parse(m.Source); err != nil {
				t.Fatalf("parse: %v\n%s", err, m.Source)
			}
		})
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler(0)
	m := &Module{Source: "not wgsl"}
	if _, err := c.SPIRV(m); err == nil {
		t.Fatal("invalid source compiled")
	}
	if _, err := c.SPIRV(m); err == nil {
		t.Fatal("invalid source compiled on retry")
	}
	st := c.Stats()
	if st.Entries != 0 || st.Misses != 2 {
		t.Errorf("stats = %+v", st)
	}
	if err := Validate(m.Source); err == nil {
		t.Error("Validate accepted invalid source")
	}
	if d, err := c.Descriptor(m, "bad"); err == nil || d != nil {
		t.Errorf("Descriptor = %+v, %v; want nil and an error", d, err)
	}
}
