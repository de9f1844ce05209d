package sdf

import (
	"math"
	"testing"

	"github.com/gogpu/vfx/node"
)

func eval(n node.Node) float64 {
	return node.Eval(n, nil).Float()
}

func TestCircle(t *testing.T) {
	tests := []struct {
		name string
		p    node.Node
		r    float64
		want float64
	}{
		{"3-4-5", node.V2(3, 4), 2, 3},
		{"center", node.V2(0, 0), 1, -1},
		{"on boundary", node.V2(0, 0.5), 0.5, 0},
		{"negative radius", node.V2(1, 0), -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(Circle(tt.p, node.Float(tt.r)))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Circle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircleSign(t *testing.T) {
	r := node.Float(1)
	for _, p := range [][2]float64{{0.1, 0.2}, {-0.5, 0.5}, {0, -0.99}} {
		if d := eval(Circle(node.V2(p[0], p[1]), r)); d >= 0 {
			t.Errorf("inside point %v: distance %v, want < 0", p, d)
		}
	}
	for _, p := range [][2]float64{{1.1, 0}, {-1, 1}, {0, -2}} {
		if d := eval(Circle(node.V2(p[0], p[1]), r)); d <= 0 {
			t.Errorf("outside point %v: distance %v, want > 0", p, d)
		}
	}
}

func TestVesica(t *testing.T) {
	tests := []struct {
		name string
		p    [2]float64
		want float64
	}{
		// b = 0.6; the origin takes the side-circle branch: 0.8 - 1.
		{"origin", [2]float64{0, 0}, -0.2},
		// Past the tip at (0, 0.6) the arc branch measures to the tip.
		{"above tip", [2]float64{0, 1}, 0.4},
		{"mirrored", [2]float64{0, -1}, 0.4},
		{"side", [2]float64{0.5, 0}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(Vesica(node.V2(tt.p[0], tt.p[1]), node.Float(1), node.Float(0.8)))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Vesica(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestVesicaRadiusSmallerThanOffset(t *testing.T) {
	tests := []struct {
		p    [2]float64
		want float64
	}{
		{[2]float64{0, 0}, 0.3},
		{[2]float64{0, 1}, math.Hypot(0.8, 1) - 0.5},
		{[2]float64{0.3, 0.2}, math.Hypot(1.1, 0.2) - 0.5},
	}
	for _, tt := range tests {
		got := eval(Vesica(node.V2(tt.p[0], tt.p[1]), node.Float(0.5), node.Float(0.8)))
		if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Vesica(%v, r=0.5, d=0.8) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestHeart(t *testing.T) {
	if d := eval(Heart(node.V2(0, 0.5))); d >= 0 {
		t.Errorf("Heart(0,0.5) = %v, want inside", d)
	}
	if d := eval(Heart(node.V2(0, 2))); d <= 0 {
		t.Errorf("Heart(0,2) = %v, want outside", d)
	}
	// The tip is on the boundary.
	if d := eval(Heart(node.V2(0, 0))); math.Abs(d) > 1e-9 {
		t.Errorf("Heart(0,0) = %v, want 0", d)
	}
	left := eval(Heart(node.V2(-0.3, 0.9)))
	right := eval(Heart(node.V2(0.3, 0.9)))
	if left != right {
		t.Errorf("heart is not mirror symmetric: %v vs %v", left, right)
	}
}
