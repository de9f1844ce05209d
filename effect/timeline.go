package effect

import (
	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/blend"
	"github.com/gogpu/vfx/ease"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/shape"
)

// Track schedules one shape on a timeline. StartAt and Duration are in
// timeline units, where the whole timeline usually spans [0, 1].
type Track struct {
	Name     string
	Shape    *shape.Shape
	StartAt  float64
	Duration float64
}

// Timeline sequences shapes. Tracks are composited with blend.Alpha in
// order, so later tracks draw on top.
type Timeline struct {
	Tracks []Track
}

// NewTimeline returns a timeline over tracks.
func NewTimeline(tracks ...Track) *Timeline {
	return &Timeline{Tracks: tracks}
}

// Seek sets every shape's time to its local progress at total. A shape is
// visible only while its progress is strictly between 0 and 1. A track
// with no positive Duration jumps from 0 to completed at StartAt and is
// never visible.
func (tl *Timeline) Seek(total float64) {
	for _, tr := range tl.Tracks {
		var t float64
		switch {
		case tr.Duration > 0:
			t = min(max((total-tr.StartAt)/tr.Duration, 0), 1)
		case total >= tr.StartAt:
			t = 1
		}
		tr.Shape.Uniforms.Time.SetFloat(t)
		visible := 0.0
		if t != 0 && t != 1 {
			visible = 1
		}
		tr.Shape.Uniforms.Visible.SetFloat(visible)
	}
}

// Length returns the time at which the last track ends.
func (tl *Timeline) Length() float64 {
	var end float64
	for _, tr := range tl.Tracks {
		end = max(end, tr.StartAt+tr.Duration)
	}
	return end
}

// Color composites the tracks. It is the null node for an empty timeline.
func (tl *Timeline) Color() node.Node {
	layers := make([]node.Node, len(tl.Tracks))
	for i, tr := range tl.Tracks {
		layers[i] = tr.Shape.Color
	}
	return blend.Alpha(layers...)
}

// ColorNode returns Color.
func (tl *Timeline) ColorNode() node.Node { return tl.Color() }

// UniformList returns every shape's handles in track order.
func (tl *Timeline) UniformList() []*node.Uniform {
	var out []*node.Uniform
	for _, tr := range tl.Tracks {
		out = append(out, tr.Shape.UniformList()...)
	}
	return out
}

// Track returns the track with the given name, or false.
func (tl *Timeline) Track(name string) (Track, bool) {
	for _, tr := range tl.Tracks {
		if tr.Name == name {
			return tr, true
		}
	}
	return Track{}, false
}

func dropParams(end vfx.Vec2) shape.Params {
	p := shape.DefaultParams()
	p.StartColor = vfx.RGBA{R: 0, G: 0, B: 0, A: 1}
	p.StartSize = 0.3
	p.StartThickness = 1
	p.EndColor = vfx.RGBA{R: 0, G: 0, B: 0, A: 0.6}
	p.EndSize = 0
	p.EndThickness = 0
	p.EndOffset = end
	return p
}

func explosionParams(at vfx.Vec2) shape.Params {
	p := shape.DefaultParams()
	p.StartColor = vfx.RGBA{R: 1, G: 0.2, B: 0, A: 1}
	p.StartSize = 0.1
	p.StartThickness = 0.5
	p.StartInnerFade = 1
	p.StartOffset = at
	p.EndColor = vfx.RGBA{R: 1, G: 0.7, B: 0, A: 1}
	p.EndSize = 0.5
	p.EndThickness = 0
	p.EndInnerFade = 0
	p.EndOffset = at
	p.Easing = ease.ModeOutCubic
	return p
}

func blowParams(at vfx.Vec2) shape.Params {
	p := shape.DefaultParams()
	p.StartColor = vfx.RGBA{R: 1, G: 1, B: 1, A: 1}
	p.StartSize = 0.1
	p.StartThickness = 0.5
	p.StartInnerFade = 1
	p.StartOffset = at
	p.Proportional = true
	p.EndColor = vfx.RGBA{R: 1, G: 1, B: 1, A: 0.5}
	p.EndSize = 0.6
	p.EndThickness = 0
	p.EndInnerFade = 0
	p.EndOffset = at
	return p
}

// NewTripleExplosion returns three drops flying to the corners of a
// triangle, each followed by a white blow and an orange explosion. The
// timeline spans [0, 1]; drive it with a Driver calling Seek.
func NewTripleExplosion() *Timeline {
	left, right, bottom := vfx.V2(-0.4, 0.4), vfx.V2(0.4, 0.4), vfx.V2(0, -0.4)
	track := func(name string, p shape.Params, startAt, duration float64) Track {
		return Track{Name: name, Shape: shape.New(p), StartAt: startAt, Duration: duration}
	}
	tl := NewTimeline(
		track("blow3", blowParams(bottom), 0.36, 0.12),
		track("explosion3", explosionParams(bottom), 0.5, 0.45),
		track("blow2", blowParams(right), 0.26, 0.12),
		track("explosion2", explosionParams(right), 0.4, 0.45),
		track("blow1", blowParams(left), 0.15, 0.12),
		track("explosion1", explosionParams(left), 0.3, 0.45),
		track("drop1", dropParams(left), 0, 0.12),
		track("drop2", dropParams(right), 0.1, 0.12),
		track("drop3", dropParams(bottom), 0.21, 0.12),
	)
	tl.Seek(0)
	return tl
}
