package effect

import (
	"math"
	"testing"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

func assertValue(t *testing.T, got node.Value, want [4]float64, tol float64) {
	t.Helper()
	for i := range want {
		if math.Abs(got.V[i]-want[i]) > tol {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestImpactDefaults(t *testing.T) {
	p := DefaultImpactParams()
	if p.VesicaCount != 3 || p.Duration != 1 || p.Aspect != 1 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	fx := NewImpact(p)
	if len(fx.Angles) != 3 {
		t.Fatalf("len(Angles) = %d, want 3", len(fx.Angles))
	}
	if got := len(fx.UniformList()); got != 10 {
		t.Fatalf("len(UniformList()) = %d, want 10", got)
	}
	if fx.ColorNode().Type() != node.TypeVec4 {
		t.Fatalf("color type = %s", fx.ColorNode().Type())
	}
}

func TestImpactWithoutPetalsIsCircle(t *testing.T) {
	p := DefaultImpactParams()
	p.VesicaCount = 0
	fx := NewImpact(p)
	if fx.Color != fx.Circle {
		t.Fatal("Color should be the circle layer when there are no petals")
	}
	if len(fx.Angles) != 0 {
		t.Fatalf("len(Angles) = %d, want 0", len(fx.Angles))
	}
}

func TestImpactRingAtStart(t *testing.T) {
	fx := NewImpact(DefaultImpactParams())
	// At time 0 the ring sits at radius 0.4 in [-1, 1] space.
	assertValue(t, vfx.Sample(fx.Color, 0.7, 0.5), [4]float64{0, 0, 0, 1}, 1e-9)
	assertValue(t, vfx.Sample(fx.Color, 0.95, 0.95), [4]float64{0, 0, 0, 0}, 1e-9)
}

func TestImpactAnglesDependOnSeed(t *testing.T) {
	eval := func(seed float64) []float64 {
		p := DefaultImpactParams()
		p.Seed = seed
		fx := NewImpact(p)
		out := make([]float64, len(fx.Angles))
		for i, a := range fx.Angles {
			out[i] = node.Eval(a, nil).Float()
		}
		return out
	}

	a, b := eval(7), eval(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("angle %d differs for equal seeds: %v vs %v", i, a[i], b[i])
		}
		if a[i] < -math.Pi || a[i] >= math.Pi {
			t.Fatalf("angle %d = %v out of [-π, π)", i, a[i])
		}
	}

	c := eval(8)
	if a[0] == c[0] && a[1] == c[1] && a[2] == c[2] {
		t.Fatal("angles should change with the seed")
	}
	// Petal i uses seed+i, so seed 8 starts where seed 7 left off.
	if a[1] != c[0] {
		t.Fatalf("angle of seed 7 petal 1 = %v, seed 8 petal 0 = %v", a[1], c[0])
	}
}

func TestImpactSeedUniformIsLive(t *testing.T) {
	fx := NewImpact(DefaultImpactParams())
	first := node.Eval(fx.Angles[0], nil).Float()
	next := node.Eval(fx.Angles[1], nil).Float()

	fx.Uniforms.Seed.SetFloat(1)
	if got := node.Eval(fx.Angles[0], nil).Float(); got != next {
		t.Fatalf("seed 1 petal 0 = %v, want seed 0 petal 1 = %v", got, next)
	}
	fx.Uniforms.Seed.SetFloat(0)
	if got := node.Eval(fx.Angles[0], nil).Float(); got != first {
		t.Fatalf("angle after reset = %v, want %v", got, first)
	}
}

func TestImpactWithInstance(t *testing.T) {
	fx := NewImpact(DefaultImpactParams(), WithInstance(node.InstanceIndex(), 4))
	first := node.Eval(fx.Angles[1], &node.Env{InstanceIndex: 0}).Float()
	second := node.Eval(fx.Angles[0], &node.Env{InstanceIndex: 1}).Float()
	if first != second {
		t.Fatalf("instance 1 petal 0 = %v, want instance 0 petal 1 = %v", second, first)
	}
}

func TestImpactApply(t *testing.T) {
	fx := NewImpact(DefaultImpactParams())
	p := DefaultImpactParams()
	p.Time = 0.25
	p.Seed = 3
	p.CircleColor = vfx.Red
	fx.Uniforms.Apply(p)
	if fx.Uniforms.Time.Float() != 0.25 || fx.Uniforms.Seed.Float() != 3 {
		t.Fatal("Apply did not write scalar uniforms")
	}
	if got := fx.Uniforms.CircleColor.Get(); got != vfx.Red.Value() {
		t.Fatalf("circle color = %v", got)
	}
}
