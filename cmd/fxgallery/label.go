package main

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// labeler shapes cell captions with HarfBuzz and fills the glyph outlines.
// It is not safe for concurrent use.
type labeler struct {
	size    float64
	face    *font.Face
	outline *sfnt.Font
	shaper  shaping.HarfbuzzShaper
	buf     sfnt.Buffer
}

func newLabeler(size float64) (*labeler, error) {
	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}
	outline, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}
	return &labeler{size: size, face: face, outline: outline}, nil
}

// lineHeight is the vertical space one caption needs.
func (l *labeler) lineHeight() int {
	return int(math.Ceil(l.size * 1.5))
}

func (l *labeler) shape(text string) []shaping.Glyph {
	runes := []rune(text)
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.face,
		Size:      fixed.Int26_6(l.size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}

// draw fills text in src with its baseline starting at (x, y) and returns
// the advance in pixels.
func (l *labeler) draw(dst draw.Image, src image.Image, text string, x, y int) (int, error) {
	if text == "" {
		return 0, nil
	}
	glyphs := l.shape(text)
	var width fixed.Int26_6
	for _, g := range glyphs {
		width += g.Advance
	}
	w := width.Ceil() + 2
	h := l.lineHeight()
	ascent := float32(math.Ceil(l.size * 1.1))

	z := vector.NewRasterizer(w, h)
	ppem := fixed.Int26_6(l.size * 64)
	var pen fixed.Int26_6
	for _, g := range glyphs {
		segs, err := l.outline.LoadGlyph(&l.buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
		if err != nil {
			return 0, fmt.Errorf("label %q: %w", text, err)
		}
		ox := float32(pen+g.XOffset) / 64
		oy := ascent - float32(g.YOffset)/64
		pt := func(p fixed.Point26_6) (float32, float32) {
			return ox + float32(p.X)/64, oy + float32(p.Y)/64
		}
		for i, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if i > 0 {
					z.ClosePath()
				}
				z.MoveTo(pt(s.Args[0]))
			case sfnt.SegmentOpLineTo:
				z.LineTo(pt(s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				bx, by := pt(s.Args[0])
				cx, cy := pt(s.Args[1])
				z.QuadTo(bx, by, cx, cy)
			case sfnt.SegmentOpCubeTo:
				bx, by := pt(s.Args[0])
				cx, cy := pt(s.Args[1])
				dx, dy := pt(s.Args[2])
				z.CubeTo(bx, by, cx, cy, dx, dy)
			}
		}
		if len(segs) > 0 {
			z.ClosePath()
		}
		pen += g.Advance
	}

	top := y - int(ascent)
	z.Draw(dst, image.Rect(x, top, x+w, top+h), src, image.Point{})
	return width.Ceil(), nil
}
