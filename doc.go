// Package vfx builds procedural visual effects as immutable expression
// graphs.
//
// # Overview
//
// An effect is a graph of [node.Node] values: signed distances, easing
// curves, noise and premultiplied-alpha blending combined into a single vec4
// color. The graph is built once; per-frame animation happens by writing
// [node.Uniform] handles, never by rebuilding.
//
//	fx := effect.NewImpact(effect.DefaultImpactParams())
//	pm := vfx.NewPixmap(256, 256)
//	for frame := 0; frame < 60; frame++ {
//	    fx.Uniforms.Time.SetFloat(float64(frame) / 60)
//	    if err := vfx.Render(pm, fx.Color); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Packages
//
//   - node: expression graph, uniforms and the CPU program
//   - sdf, ease, blend: leaf building blocks
//   - shape: the animated ring/disc shape
//   - effect: impact, scatter, pulsing ring, water, waterfall and friends
//   - grass: blade geometry and its billboard vertex graph
//   - shader: WGSL generation, uniform layout and naga compilation
//   - scene, preset: instance registry, per-frame driving and preset files
//
// # Rendering
//
// This package renders graphs on the CPU with [Render], which is what tests
// and the fxgallery command use. GPU pipelines take the WGSL produced by the
// shader package and own the device, passes and camera themselves.
//
// # Colors
//
// [RGBA] is a straight color on the host. Color nodes inside graphs are
// premultiplied by convention, and [Pixmap] stores premultiplied pixels the
// way image.RGBA does.
//
// # Logging
//
// Nothing is logged unless [SetLogger] is called.
package vfx
