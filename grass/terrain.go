package grass

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Perlin generator settings for Terrain.
const (
	terrainAlpha   = 2
	terrainBeta    = 2
	terrainOctaves = 3
	terrainFreq    = 0.35
)

// Terrain returns a square heightfield of (segments+1)² points centred on
// the origin in the XZ plane, displaced along Y by Perlin noise scaled by
// amplitude. Normals come from central differences of the height.
func Terrain(size float64, segments int, amplitude float64, seed int64) Mesh {
	segments = max(segments, 1)
	gen := perlin.NewPerlin(terrainAlpha, terrainBeta, terrainOctaves, seed)
	height := func(x, z float64) float64 {
		return amplitude * gen.Noise2D(x*terrainFreq, z*terrainFreq)
	}

	step := size / float64(segments)
	eps := step / 2
	n := (segments + 1) * (segments + 1)
	m := Mesh{
		Positions: make([]mgl32.Vec3, 0, n),
		Normals:   make([]mgl32.Vec3, 0, n),
	}
	for iz := 0; iz <= segments; iz++ {
		z := -size/2 + float64(iz)*step
		for ix := 0; ix <= segments; ix++ {
			x := -size/2 + float64(ix)*step
			dx := (height(x+eps, z) - height(x-eps, z)) / (2 * eps)
			dz := (height(x, z+eps) - height(x, z-eps)) / (2 * eps)
			m.Positions = append(m.Positions, mgl32.Vec3{float32(x), float32(height(x, z)), float32(z)})
			m.Normals = append(m.Normals, mgl32.Vec3{float32(-dx), 1, float32(-dz)}.Normalize())
		}
	}
	return m
}
