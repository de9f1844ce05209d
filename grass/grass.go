// Package grass scatters billboard grass blades over a base mesh.
//
// Build runs on the CPU and produces one triangle per blade; every vertex of
// a blade carries the blade's root position, so the triangle is shaped on
// the GPU by the graph from NewWind, which also sways the tip.
package grass

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/vfx"
)

// ErrMeshMismatch is returned when a base mesh has a different number of
// positions and normals.
var ErrMeshMismatch = errors.New("grass: positions and normals differ in length")

// Mesh is the base surface grass grows on: one blade cluster per point.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `toml:"min" yaml:"min"`
	Max float64 `toml:"max" yaml:"max"`
}

func (r Range) sample(rng *rand.Rand) float32 {
	return float32(r.Min + rng.Float64()*(r.Max-r.Min))
}

// Params configures Build.
type Params struct {
	ColorA         vfx.RGBA `toml:"color_a" yaml:"color_a"`
	ColorB         vfx.RGBA `toml:"color_b" yaml:"color_b"`
	BladesPerPoint int      `toml:"blades_per_point" yaml:"blades_per_point"`
	ClusterRadius  float64  `toml:"cluster_radius" yaml:"cluster_radius"`
	Height         Range    `toml:"height" yaml:"height"`
	Width          Range    `toml:"width" yaml:"width"`
	// Seed makes Build deterministic.
	Seed uint64 `toml:"seed" yaml:"seed"`
}

// DefaultParams returns thirty green blades per point.
func DefaultParams() Params {
	return Params{
		ColorA:         vfx.Hex("#3a0"),
		ColorB:         vfx.Hex("#180"),
		BladesPerPoint: 30,
		ClusterRadius:  0.5,
		Height:         Range{Min: 0.3, Max: 0.7},
		Width:          Range{Min: 0.1, Max: 0.2},
		Seed:           1,
	}
}

// Base and tip brightness of a blade's vertex colors.
const (
	rootBrightness = 0.3
	tipBrightness  = 1.0
)

// Build scatters blades over base. The first blade of each cluster sits on
// its point; the others are spread uniformly over a disk of ClusterRadius in
// the point's tangent plane.
func Build(base Mesh, p Params) (*Geometry, error) {
	if len(base.Positions) != len(base.Normals) {
		return nil, fmt.Errorf("%w: %d positions, %d normals",
			ErrMeshMismatch, len(base.Positions), len(base.Normals))
	}

	blades := len(base.Positions) * max(p.BladesPerPoint, 0)
	g := newGeometry(blades * 3)
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	radius := float32(p.ClusterRadius)

	for i, center := range base.Positions {
		normal := base.Normals[i]
		t1, t2 := tangentFrame(normal)
		for j := 0; j < p.BladesPerPoint; j++ {
			height := p.Height.sample(rng)
			width := p.Width.sample(rng)
			color := p.ColorA.Lerp(p.ColorB, rng.Float64())

			root := center
			if j > 0 {
				angle := float32(rng.Float64()) * 2 * math32.Pi
				dist := math32.Sqrt(float32(rng.Float64())) * radius
				root = root.
					Add(t1.Mul(math32.Cos(angle) * dist)).
					Add(t2.Mul(math32.Sin(angle) * dist))
			}

			for k := 0; k < 3; k++ {
				brightness := float32(rootBrightness)
				if k == 1 && p.Height.Max != 0 {
					brightness += float32(float64(height)/p.Height.Max) * (tipBrightness - rootBrightness)
				}
				g.add(root, normal, color, brightness, height, width)
			}
			n := uint32(len(g.Indices))
			g.Indices = append(g.Indices, n, n+2, n+1)
		}
	}

	vfx.Logger().Debug("grass: built", "points", len(base.Positions), "blades", blades)
	return g, nil
}

// tangentFrame returns two unit vectors spanning the plane normal to n.
func tangentFrame(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(n.Y()) >= 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	t1 := n.Cross(ref).Normalize()
	t2 := n.Cross(t1).Normalize()
	return t1, t2
}
