package effect

import (
	"testing"

	"github.com/gogpu/vfx"
)

func smoothstep(e0, e1, x float64) float64 {
	t := min(max((x-e0)/(e1-e0), 0), 1)
	return t * t * (3 - 2*t)
}

func TestPulsingRing(t *testing.T) {
	fx := NewPulsingRing(DefaultPulsingRingParams())

	tests := []struct {
		name string
		time float64
		dist float64
		want [4]float64
	}{
		// Half way through the first pulse the ring spans 0.155..0.225.
		{"on first pulse", 0.5, 0.19, [4]float64{1, 0, 0, 1}},
		{"inside first pulse", 0.5, 0.05, [4]float64{0, 0, 0, 0}},
		{"outside first pulse", 0.5, 0.3, [4]float64{0, 0, 0, 0}},
		{"second pulse", 1.5, 0.19, [4]float64{1, 0, 0, 1}},
		{"delay between groups", 4, 0.19, [4]float64{0, 0, 0, 0}},
		{"next cycle", 5.5, 0.19, [4]float64{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vfx.Sample(fx.Color, 0.5+tt.dist, 0.5, vfx.WithTime(tt.time))
			assertValue(t, got, tt.want, 1e-6)
		})
	}
}

func TestPulsingRingTransition(t *testing.T) {
	fx := NewPulsingRing(DefaultPulsingRingParams())
	// At 80% of a pulse the color is mostly blended toward the end color.
	tr := smoothstep(0.6, 0.9, 0.8)
	a := 1 - tr
	want := [4]float64{(1 - tr) * a, 0, tr * a, a}
	got := vfx.Sample(fx.Color, 0.5+0.345, 0.5, vfx.WithTime(0.8))
	assertValue(t, got, want, 1e-6)
}

func TestPulsingRingSpeed(t *testing.T) {
	p := DefaultPulsingRingParams()
	p.Speed = 2
	fx := NewPulsingRing(p)
	got := vfx.Sample(fx.Color, 0.69, 0.5, vfx.WithTime(0.25))
	assertValue(t, got, [4]float64{1, 0, 0, 1}, 1e-6)

	fx.Uniforms.Apply(DefaultPulsingRingParams())
	got = vfx.Sample(fx.Color, 0.69, 0.5, vfx.WithTime(0.5))
	assertValue(t, got, [4]float64{1, 0, 0, 1}, 1e-6)
}
