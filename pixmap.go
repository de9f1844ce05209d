package vfx

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is an 8-bit premultiplied RGBA pixel buffer, laid out like
// image.RGBA.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a transparent pixmap.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPremultiplied stores a premultiplied color.
func (p *Pixmap) SetPremultiplied(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = quantize(c.R)
	p.data[i+1] = quantize(c.G)
	p.data[i+2] = quantize(c.B)
	p.data[i+3] = quantize(c.A)
}

// SetPixel stores a straight color.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	p.SetPremultiplied(x, y, c.Premultiply())
}

// Premultiplied returns the stored premultiplied color.
func (p *Pixmap) Premultiplied(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// GetPixel returns the straight color of a pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	return p.Premultiplied(x, y).Unpremultiply()
}

// Clear fills the pixmap with a straight color.
func (p *Pixmap) Clear(c RGBA) {
	pm := c.Premultiply()
	px := [4]uint8{quantize(pm.R), quantize(pm.G), quantize(pm.B), quantize(pm.A)}
	for i := 0; i < len(p.data); i += 4 {
		copy(p.data[i:i+4], px[:])
	}
}

// ToImage returns a copy of the pixmap as an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("vfx: create %s: %w", path, err)
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("vfx: encode %s: %w", path, err)
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

func quantize(v float64) uint8 {
	return uint8(clamp255(v*255 + 0.5))
}
