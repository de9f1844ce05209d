// Package shader lowers node graphs to WGSL and hands the result to naga.
//
// A Graph has a color output evaluated per fragment and an optional
// position output evaluated per vertex. Generate walks both graphs once and
// produces a Module: the WGSL source, the layout of the uniform buffer that
// feeds it, and the vertex buffer layout it expects.
//
// The emitted code computes exactly what node.Eval computes on the CPU,
// including the hash and gradient noise, so a CPU preview and a GPU frame
// of the same graph agree up to float32 rounding.
//
// Binding model:
//
//	@group(0) @binding(0)  uniform Fx { view_proj, camera, time, <uniforms> }
//	@location(0)           position  vec3
//	@location(1)           normal    vec3
//	@location(2)           uv        vec2 (only when a graph reads uv)
//	@location(3..)         attributes, sorted by name
//
// Entry points are vs_main and fs_main. The fragment output is
// premultiplied; pair it with ColorTarget.
package shader
