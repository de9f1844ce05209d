package vfx

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func colorsClose(a, b RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#fff", RGBA{1, 1, 1, 1}},
		{"000", RGBA{0, 0, 0, 1}},
		{"f008", RGBA{1, 0, 0, 136.0 / 255}},
		{"#ff8000", RGBA{1, 128.0 / 255, 0, 1}},
		{"0000ff80", RGBA{0, 0, 1, 128.0 / 255}},
		{"nothex", Black},
		{"#12", Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexError(t *testing.T) {
	for _, in := range []string{"", "#", "gg0000", "12345"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.25}
	text, err := c.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "#ff800040" {
		t.Errorf("MarshalText() = %s", text)
	}
	var back RGBA
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if !colorsClose(back, c, 1.0/255) {
		t.Errorf("round trip = %v, want %v", back, c)
	}
	if err := back.UnmarshalText([]byte("zz")); err == nil {
		t.Error("UnmarshalText should reject invalid input")
	}
}

func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0.25, A: 0.5}
	p := c.Premultiply()
	if !colorsClose(p, RGBA{0.5, 0.25, 0.125, 0.5}, 1e-12) {
		t.Errorf("Premultiply() = %v", p)
	}
	if !colorsClose(p.Unpremultiply(), c, 1e-12) {
		t.Errorf("Unpremultiply() = %v, want %v", p.Unpremultiply(), c)
	}
	if Transparent.Unpremultiply() != (RGBA{}) {
		t.Error("transparent should unpremultiply to zero")
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.25)
	if !colorsClose(got, RGBA{0.25, 0.25, 0.25, 1}, 1e-12) {
		t.Errorf("Lerp() = %v", got)
	}
}

func TestColorConversions(t *testing.T) {
	c := FromColor(color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	if !colorsClose(c, RGBA{1, 0, 0, 128.0 / 255}, 1e-9) {
		t.Errorf("FromColor() = %v", c)
	}
	n := RGBA{0.2, 0.4, 0.6, 0.8}
	if FromValue(n.Value()) != n {
		t.Errorf("FromValue(Value()) = %v", FromValue(n.Value()))
	}
	if n.Node().Type().Width() != 4 {
		t.Error("Node() should be a vec4")
	}
}
