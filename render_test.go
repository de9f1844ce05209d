package vfx

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/vfx/node"
)

func nanValue() float64 { return math.NaN() }

func TestRenderSolid(t *testing.T) {
	pm := NewPixmap(8, 4)
	if err := Render(pm, node.V4(0, 0.5, 0, 0.5), WithWorkers(3)); err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{G: 128, A: 128}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if pm.At(x, y) != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, pm.At(x, y), want)
			}
		}
	}
}

func TestRenderUVOrientation(t *testing.T) {
	pm := NewPixmap(2, 2)
	uv := node.UV()
	out := node.Vec4(uv, node.Float(0), node.Float(1))
	if err := Render(pm, out); err != nil {
		t.Fatal(err)
	}
	// Top-left pixel is low u and high v.
	tl := pm.Premultiplied(0, 0)
	if math.Abs(tl.R-0.25) > 1.0/255 || math.Abs(tl.G-0.75) > 1.0/255 {
		t.Errorf("top-left = %v, want uv (0.25, 0.75)", tl)
	}
	br := pm.Premultiplied(1, 1)
	if math.Abs(br.R-0.75) > 1.0/255 || math.Abs(br.G-0.25) > 1.0/255 {
		t.Errorf("bottom-right = %v, want uv (0.75, 0.25)", br)
	}
}

func TestRenderBackground(t *testing.T) {
	pm := NewPixmap(1, 1)
	// Half-transparent black over white.
	if err := Render(pm, node.V4(0, 0, 0, 0.5), WithBackground(White)); err != nil {
		t.Fatal(err)
	}
	got := pm.Premultiplied(0, 0)
	if !colorsClose(got, RGBA{0.5, 0.5, 0.5, 1}, 1.0/255) {
		t.Errorf("pixel = %v", got)
	}

	if err := Render(pm, node.Node{}, WithBackground(Red)); err != nil {
		t.Fatal(err)
	}
	if pm.At(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("nil graph should render the background, got %v", pm.At(0, 0))
	}
}

func TestRenderTimeAndUniforms(t *testing.T) {
	u := node.UniformFloat("gain", 0.5)
	out := node.Vec4(node.Time().Mul(u.Node()).ToVec4().XYZ(), node.Float(1))
	got := Sample(out, 0.5, 0.5, WithTime(1))
	if math.Abs(got.V[0]-0.5) > 1e-12 {
		t.Errorf("Sample() = %v", got)
	}
	u.SetFloat(0.25)
	got = Sample(out, 0.5, 0.5, WithTime(1))
	if math.Abs(got.V[0]-0.25) > 1e-12 {
		t.Errorf("Sample() after Set = %v", got)
	}
}

func TestRenderRejectsNonColor(t *testing.T) {
	pm := NewPixmap(1, 1)
	err := Render(pm, node.Float(1))
	if !errors.Is(err, ErrNotColor) {
		t.Errorf("Render() error = %v, want ErrNotColor", err)
	}
}

func TestSamplePositionCentered(t *testing.T) {
	got := Sample(node.Vec4(node.PositionLocal(), node.Float(1)), 0.75, 0.25)
	if math.Abs(got.V[0]-0.25) > 1e-12 || math.Abs(got.V[1]+0.25) > 1e-12 {
		t.Errorf("position = %v", got)
	}
}
