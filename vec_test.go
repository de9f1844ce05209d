package vfx

import (
	"math"
	"testing"

	"github.com/gogpu/vfx/node"
)

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(1, 2), V2(3, 5)
	if got := a.Add(b); got != V2(4, 7) {
		t.Errorf("Add() = %v", got)
	}
	if got := b.Sub(a); got != V2(2, 3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Mul(2); got != V2(2, 4) {
		t.Errorf("Mul() = %v", got)
	}
	if got := V2(3, 4).Length(); got != 5 {
		t.Errorf("Length() = %v", got)
	}
	if got := a.Lerp(b, 0.5); got != V2(2, 3.5) {
		t.Errorf("Lerp() = %v", got)
	}
}

func TestVec2RotateMatchesNode(t *testing.T) {
	v := V2(0.3, -0.7)
	for _, angle := range []float64{0, 0.5, math.Pi / 2, -2} {
		host := v.Rotate(angle)
		graph := node.Eval(node.Rotate(v.Node(), node.Float(angle)), nil)
		if math.Abs(host.X-graph.V[0]) > 1e-12 || math.Abs(host.Y-graph.V[1]) > 1e-12 {
			t.Errorf("angle %v: host %v, graph %v", angle, host, graph)
		}
	}
	if V2(1, 2).Value() != node.Vector(1, 2) {
		t.Error("Value() mismatch")
	}
}
