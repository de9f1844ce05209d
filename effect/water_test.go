package effect

import (
	"math"
	"testing"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

func TestWaterLatticeIsMidGrey(t *testing.T) {
	fx := NewWater(DefaultWaterParams())
	// Noise vanishes on lattice points, so the colors mix half way.
	for _, uv := range [][2]float64{{0, 0}, {1, 1}, {0, 1}} {
		got := vfx.Sample(fx.Color, uv[0], uv[1])
		assertValue(t, got, [4]float64{0.5, 0.5, 0.5, 1}, 1e-9)
	}
}

func TestWaterStaysBetweenColors(t *testing.T) {
	p := DefaultWaterParams()
	p.Time = 1.7
	fx := NewWater(p)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := vfx.Sample(fx.Color, (float64(x)+0.5)/8, (float64(y)+0.5)/8)
			if got.V[0] < 0 || got.V[0] > 1 || math.Abs(got.V[3]-1) > 1e-9 {
				t.Fatalf("(%d,%d): got %v", x, y, got)
			}
		}
	}
}

func TestWaterOctavesAreBaked(t *testing.T) {
	base := node.Compile(NewWater(DefaultWaterParams()).Value).Len()
	p := DefaultWaterParams()
	p.Octaves = 2
	more := node.Compile(NewWater(p).Value).Len()
	if more <= base {
		t.Fatalf("octaves should grow the graph: %d vs %d", more, base)
	}
}

func TestWaterUniforms(t *testing.T) {
	fx := NewWater(DefaultWaterParams())
	before := vfx.Sample(fx.Value, 0.3, 0.6).Float()
	fx.Uniforms.Time.SetFloat(2)
	if after := vfx.Sample(fx.Value, 0.3, 0.6).Float(); after == before {
		t.Fatal("time should move the field")
	}

	p := DefaultWaterParams()
	p.Scale = 0
	fx.Uniforms.Apply(p)
	a := vfx.Sample(fx.Color, 0.1, 0.2)
	b := vfx.Sample(fx.Color, 0.9, 0.7)
	if a != b {
		t.Fatalf("scale 0 should flatten the field: %v vs %v", a, b)
	}
}

func TestWaterPremultipliesColors(t *testing.T) {
	p := DefaultWaterParams()
	p.Color1 = vfx.RGBA{R: 1, G: 0, B: 0, A: 0.5}
	p.Color2 = vfx.RGBA{R: 1, G: 0, B: 0, A: 0.5}
	fx := NewWater(p)
	assertValue(t, vfx.Sample(fx.Color, 0.3, 0.4), [4]float64{0.5, 0, 0, 0.5}, 1e-9)
}
