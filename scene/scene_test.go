package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/blend"
	"github.com/gogpu/vfx/effect"
	"github.com/gogpu/vfx/node"
)

// solid is a uniform-colored layer.
type solid struct {
	color *node.Uniform
}

func newSolid(r, g, b, a float64) *solid {
	return &solid{color: node.UniformVec4("color", r, g, b, a)}
}

func (s *solid) ColorNode() node.Node         { return s.color.Node() }
func (s *solid) UniformList() []*node.Uniform { return []*node.Uniform{s.color} }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func assertColor(t *testing.T, n node.Node, want [4]float64) {
	t.Helper()
	got := vfx.Sample(n, 0.5, 0.5)
	for i := range want {
		if !near(got.V[i], want[i], 1e-9) {
			t.Fatalf("color = %v, want %v", got.V, want)
		}
	}
}

func TestColorFoldsInOrder(t *testing.T) {
	s := New()
	s.Add("base", newSolid(1, 0, 0, 1))
	s.Add("glaze", newSolid(0, 0, 0.5, 0.5))

	c, err := s.Color()
	if err != nil {
		t.Fatal(err)
	}
	assertColor(t, c, [4]float64{0.5, 0, 0.5, 1})

	add := s.Add("light", newSolid(0.1, 0.1, 0.1, 0.9), WithBlend(blend.OpAdd, blend.Options{}))
	c, _ = s.Color()
	assertColor(t, c, [4]float64{0.6, 0.1, 0.6, 1})

	if e, ok := s.Get(add); !ok || e.Blend != blend.OpAdd || e.Name != "light" {
		t.Fatalf("Get = %+v, %v", e, ok)
	}
}

func TestHiddenAndRemove(t *testing.T) {
	s := New()
	a := s.Add("a", newSolid(1, 0, 0, 1))
	b := s.Add("b", newSolid(0, 1, 0, 1))

	if err := s.SetHidden(b, true); err != nil {
		t.Fatal(err)
	}
	c, _ := s.Color()
	assertColor(t, c, [4]float64{1, 0, 0, 1})

	if err := s.Remove(a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Color(); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
	if err := s.Remove(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove err = %v, want ErrNotFound", err)
	}
	if err := s.SetHidden(uuid.New(), false); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetHidden err = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if e, ok := s.Find("b"); !ok || e.ID != b {
		t.Errorf("Find(b) = %v, %v", e, ok)
	}
	if _, ok := s.Find("a"); ok {
		t.Error("removed entry still found")
	}
}

func TestUpdateDrivesEntries(t *testing.T) {
	s := New()
	fx := effect.NewImpact(effect.DefaultImpactParams())
	d := effect.NewDriver(1, fx.Uniforms.Time.SetFloat, effect.WithReseed(fx.Uniforms.Seed))
	s.Add("impact", fx, WithDriver(d))
	s.Add("static", newSolid(0, 0, 0, 0))

	if n := s.Update(0.5); n != 0 {
		t.Fatalf("Update looped %d drivers", n)
	}
	if got := fx.Uniforms.Time.Float(); !near(got, 0.5, 1e-6) {
		t.Errorf("time = %g, want 0.5", got)
	}
	if n := s.Update(0.6); n != 1 {
		t.Fatalf("Update looped %d drivers, want 1", n)
	}
	if fx.Uniforms.Seed.Float() != 1 {
		t.Errorf("seed = %g, want 1", fx.Uniforms.Seed.Float())
	}
	if !near(s.Time(), 1.1, 1e-9) || s.Frames() != 2 {
		t.Errorf("clock = %g, frames = %d", s.Time(), s.Frames())
	}
}

func TestLoopCallbackCallsScene(t *testing.T) {
	s := New()
	fx := effect.NewImpact(effect.DefaultImpactParams())
	var id uuid.UUID
	calls := 0
	d := effect.NewDriver(1, fx.Uniforms.Time.SetFloat, effect.WithOnLoop(func(int) {
		calls++
		if err := s.SetHidden(id, true); err != nil {
			t.Error(err)
		}
		if s.Len() != 1 {
			t.Errorf("Len = %d inside callback", s.Len())
		}
	}))
	id = s.Add("impact", fx, WithDriver(d))

	if n := s.Update(1.5); n != 1 || calls != 1 {
		t.Fatalf("Update = %d, callbacks = %d; want 1, 1", n, calls)
	}
	if e, _ := s.Get(id); !e.Hidden {
		t.Error("callback did not hide the entry")
	}
}

func TestUniformsDeduplicated(t *testing.T) {
	shared := newSolid(1, 1, 1, 1)
	s := New()
	s.Add("a", shared)
	s.Add("b", shared)
	s.Add("c", newSolid(0, 0, 0, 1))
	if got := len(s.Uniforms()); got != 2 {
		t.Errorf("len(Uniforms) = %d, want 2", got)
	}
	if got := len(s.Entries()); got != 3 {
		t.Errorf("len(Entries) = %d, want 3", got)
	}
}

func TestRender(t *testing.T) {
	s := New()
	s.Add("red", newSolid(1, 0, 0, 1))
	pm := vfx.NewPixmap(4, 4)
	if err := s.Render(pm); err != nil {
		t.Fatal(err)
	}
	got := pm.Premultiplied(2, 1)
	if !near(got.R, 1, 1e-9) || !near(got.A, 1, 1e-9) || got.G != 0 {
		t.Errorf("pixel = %+v", got)
	}
	if err := New().Render(pm); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty render err = %v", err)
	}
}

func TestShaders(t *testing.T) {
	s := New()
	flat := s.Add("flat", newSolid(1, 0, 0, 1))
	foam := s.Add("foam", effect.NewFoam(effect.DefaultFoamParams()))

	mods, err := s.Shaders()
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != 2 {
		t.Fatalf("len = %d, want 2", len(mods))
	}
	if !strings.Contains(mods[flat].Source, "vec4<f32>(vin.position, 1.0)") {
		t.Error("flat entry does not keep the mesh position")
	}
	if strings.Contains(mods[foam].Source, "vec4<f32>(vin.position, 1.0)") {
		t.Error("foam entry ignores its position graph")
	}
}
