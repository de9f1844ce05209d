package effect

import (
	"math"
	"testing"

	"github.com/gogpu/vfx/ease"
	"github.com/gogpu/vfx/node"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestDriverAdvancesAndLoops(t *testing.T) {
	tm := node.UniformFloat("time", 0.9)
	seed := node.UniformFloat("seed", 4)
	var loops []int
	d := NewDriver(1, tm.SetFloat, WithReseed(seed), WithOnLoop(func(n int) {
		loops = append(loops, n)
	}))
	if tm.Float() != 0 {
		t.Fatalf("NewDriver should reset time, got %v", tm.Float())
	}

	steps := []struct {
		dt     float64
		want   float64
		looped bool
	}{
		{0.25, 0.25, false},
		{0.5, 0.75, false},
		{0.5, 0, true},
		{0.5, 0.5, false},
	}
	for i, s := range steps {
		if got := d.Update(s.dt); got != s.looped {
			t.Fatalf("step %d: looped = %v, want %v", i, got, s.looped)
		}
		if !approx(tm.Float(), s.want) {
			t.Fatalf("step %d: time = %v, want %v", i, tm.Float(), s.want)
		}
	}
	if seed.Float() != 5 {
		t.Fatalf("seed = %v, want 5", seed.Float())
	}
	if len(loops) != 1 || loops[0] != 1 || d.Loops() != 1 {
		t.Fatalf("loops = %v, Loops() = %d", loops, d.Loops())
	}
}

func TestDriverEasing(t *testing.T) {
	var got float64
	d := NewDriver(2, func(v float64) { got = v }, WithEasing(ease.ModeInCubic))
	d.Update(1)
	if !approx(got, 0.125) {
		t.Fatalf("eased value = %v, want 0.125", got)
	}
	if !approx(d.Progress(), 0.5) {
		t.Fatalf("Progress() = %v, want 0.5", d.Progress())
	}
}

func TestDriverSeekAndDuration(t *testing.T) {
	var got float64
	d := NewDriver(1, func(v float64) { got = v })
	d.Seek(0.5)
	if !approx(got, 0.5) {
		t.Fatalf("after Seek: %v, want 0.5", got)
	}

	d.SetDuration(2)
	if !approx(got, 0.5) || !approx(d.Progress(), 0.5) {
		t.Fatalf("SetDuration should keep progress, got %v (%v)", got, d.Progress())
	}
	d.Update(0.5)
	if !approx(got, 0.75) {
		t.Fatalf("after Update: %v, want 0.75", got)
	}
	if d.Loops() != 0 {
		t.Fatalf("Seek and SetDuration must not loop, Loops() = %d", d.Loops())
	}
}
