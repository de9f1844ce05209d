package shader

import "strings"

// The helpers below match internal/noise bit for bit on the integer side.
const pcgSource = `fn fx_pcg(v: u32) -> u32 {
	let state = v * 747796405u + 2891336453u;
	let word = ((state >> ((state >> 28u) + 4u)) ^ state) * 277803737u;
	return (word >> 22u) ^ word;
}

`

const hashSource = `fn fx_hash(seed: f32) -> f32 {
	return f32(fx_pcg(u32(max(seed, 0.0)))) / 4294967296.0;
}

`

const noiseSource = `fn fx_lattice(c: vec3<i32>) -> u32 {
	return fx_pcg(bitcast<u32>(c.x) + fx_pcg(bitcast<u32>(c.y) + fx_pcg(bitcast<u32>(c.z))));
}

fn fx_grad(h: u32, p: vec3<f32>) -> f32 {
	let k = h & 15u;
	let u = select(p.y, p.x, k < 8u);
	let v = select(select(p.z, p.x, k == 12u || k == 14u), p.y, k < 4u);
	return select(u, -u, (k & 1u) != 0u) + select(v, -v, (k & 2u) != 0u);
}

fn fx_fade(t: vec3<f32>) -> vec3<f32> {
	return t * t * t * (t * (t * 6.0 - 15.0) + 10.0);
}

fn fx_noise3(p: vec3<f32>) -> f32 {
	let cell = floor(p);
	let i = vec3<i32>(cell);
	let f = p - cell;
	let w = fx_fade(f);
	let n000 = fx_grad(fx_lattice(i), f);
	let n100 = fx_grad(fx_lattice(i + vec3<i32>(1, 0, 0)), f - vec3<f32>(1.0, 0.0, 0.0));
	let n010 = fx_grad(fx_lattice(i + vec3<i32>(0, 1, 0)), f - vec3<f32>(0.0, 1.0, 0.0));
	let n110 = fx_grad(fx_lattice(i + vec3<i32>(1, 1, 0)), f - vec3<f32>(1.0, 1.0, 0.0));
	let n001 = fx_grad(fx_lattice(i + vec3<i32>(0, 0, 1)), f - vec3<f32>(0.0, 0.0, 1.0));
	let n101 = fx_grad(fx_lattice(i + vec3<i32>(1, 0, 1)), f - vec3<f32>(1.0, 0.0, 1.0));
	let n011 = fx_grad(fx_lattice(i + vec3<i32>(0, 1, 1)), f - vec3<f32>(0.0, 1.0, 1.0));
	let n111 = fx_grad(fx_lattice(i + vec3<i32>(1, 1, 1)), f - vec3<f32>(1.0, 1.0, 1.0));
	let x00 = mix(n000, n100, w.x);
	let x10 = mix(n010, n110, w.x);
	let x01 = mix(n001, n101, w.x);
	let x11 = mix(n011, n111, w.x);
	return mix(mix(x00, x10, w.y), mix(x01, x11, w.y), w.z);
}

`

func writeHelpers(b *strings.Builder, h helper) {
	if h == 0 {
		return
	}
	b.WriteString(pcgSource)
	if h&helperHash != 0 {
		b.WriteString(hashSource)
	}
	if h&helperNoise != 0 {
		b.WriteString(noiseSource)
	}
}
