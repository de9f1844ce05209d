package vfx

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 || len(pm.Data()) != 48 {
		t.Fatalf("unexpected dimensions %dx%d/%d", pm.Width(), pm.Height(), len(pm.Data()))
	}

	pm.SetPixel(1, 2, RGBA{R: 1, G: 0, B: 0, A: 0.5})
	got := pm.Premultiplied(1, 2)
	if !colorsClose(got, RGBA{0.5, 0, 0, 0.5}, 1.0/255) {
		t.Errorf("Premultiplied() = %v", got)
	}
	if straight := pm.GetPixel(1, 2); !colorsClose(straight, RGBA{1, 0, 0, 0.5}, 2.0/255) {
		t.Errorf("GetPixel() = %v", straight)
	}
	if pm.At(1, 2) != (color.RGBA{R: 128, A: 128}) {
		t.Errorf("At() = %v", pm.At(1, 2))
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(2, 0, White)
	for _, b := range pm.Data() {
		if b != 0 {
			t.Fatal("out-of-bounds write changed data")
		}
	}
	if pm.GetPixel(5, 5) != Transparent {
		t.Error("out-of-bounds read should be transparent")
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.Clear(Red)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if pm.At(x, y) != (color.RGBA{R: 255, A: 255}) {
				t.Fatalf("pixel (%d,%d) = %v", x, y, pm.At(x, y))
			}
		}
	}
}

func TestPixmapNaNIsZero(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetPremultiplied(0, 0, RGBA{R: nanValue(), G: 2, B: -1, A: 1})
	if pm.At(0, 0) != (color.RGBA{R: 0, G: 255, B: 0, A: 255}) {
		t.Errorf("At() = %v", pm.At(0, 0))
	}
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Clear(Blue)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
	if err := pm.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}
