// Package noise implements the deterministic hash and gradient noise used by
// node programs on the CPU.
//
// Every function here has a WGSL twin emitted by the shader package. The two
// are written against the same integer arithmetic (32-bit wrapping PCG) so a
// seed produces the same lattice on the CPU preview and on the GPU.
package noise

import "math"

// PCG is one round of the PCG-RXS-M-XS permutation over 32-bit state.
func PCG(v uint32) uint32 {
	state := v*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

// Hash maps a float seed to a pseudo-random value in [0, 1).
// The seed is truncated toward zero and saturated to the uint32 range, which
// is what a shader u32(f32) conversion does.
func Hash(seed float64) float64 {
	return float64(PCG(toUint32(seed))) / 4294967296.0
}

func toUint32(f float64) uint32 {
	if !(f > 0) {
		return 0
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}

// lattice hashes an integer lattice corner.
func lattice(x, y, z int32) uint32 {
	return PCG(uint32(x) + PCG(uint32(y)+PCG(uint32(z))))
}

// grad returns the dot product of (x, y, z) with one of the twelve cube-edge
// gradients selected by the low four bits of h.
func grad(h uint32, x, y, z float64) float64 {
	k := h & 15
	u := y
	if k < 8 {
		u = x
	}
	var v float64
	switch {
	case k < 4:
		v = y
	case k == 12 || k == 14:
		v = x
	default:
		v = z
	}
	if k&1 != 0 {
		u = -u
	}
	if k&2 != 0 {
		v = -v
	}
	return u + v
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3 interpolant.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Perlin3 returns 3D gradient noise at (x, y, z), roughly in [-1, 1].
// It is zero at every integer lattice point.
func Perlin3(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int32(fx), int32(fy), int32(fz)
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := fade(x), fade(y), fade(z)

	n000 := grad(lattice(ix, iy, iz), x, y, z)
	n100 := grad(lattice(ix+1, iy, iz), x-1, y, z)
	n010 := grad(lattice(ix, iy+1, iz), x, y-1, z)
	n110 := grad(lattice(ix+1, iy+1, iz), x-1, y-1, z)
	n001 := grad(lattice(ix, iy, iz+1), x, y, z-1)
	n101 := grad(lattice(ix+1, iy, iz+1), x-1, y, z-1)
	n011 := grad(lattice(ix, iy+1, iz+1), x, y-1, z-1)
	n111 := grad(lattice(ix+1, iy+1, iz+1), x-1, y-1, z-1)

	x00 := lerp(n000, n100, u)
	x10 := lerp(n010, n110, u)
	x01 := lerp(n001, n101, u)
	x11 := lerp(n011, n111, u)
	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}
