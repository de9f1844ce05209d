package vfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/vfx/internal/parallel"
	"github.com/gogpu/vfx/node"
)

// ErrNotColor is returned when a graph handed to Render is not a vec4.
var ErrNotColor = errors.New("vfx: output node is not a vec4 color")

// Render evaluates a premultiplied vec4 color graph for every pixel of dst,
// treating dst as a unit quad facing +Z.
//
// Each pixel samples its center: UV runs from (0,0) at the bottom-left to
// (1,1) at the top-right, PositionLocal and PositionWorld are (uv-0.5, 0) and
// the normal is (0,0,1). The result is composited over the background with
// source-over.
//
// A null out renders the background alone. Uniforms are read while
// rendering; callers should not expect a consistent snapshot if they write
// uniforms concurrently.
func Render(dst *Pixmap, out node.Node, opts ...RenderOption) error {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !out.IsNil() && out.Type() != node.TypeVec4 {
		return fmt.Errorf("%w: got %s", ErrNotColor, out.Type())
	}

	prog := node.Compile(out)
	Logger().Debug("vfx: render",
		"width", dst.width, "height", dst.height, "nodes", prog.Len())

	bg := o.background.Premultiply()
	w, h := dst.width, dst.height
	row := func(y int, ev *node.Evaluator, env *node.Env) {
		v := 1 - (float64(y)+0.5)/float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			env.UV = [2]float64{u, v}
			env.PositionLocal = [3]float64{u - 0.5, v - 0.5, 0}
			env.PositionWorld = env.PositionLocal

			c := bg
			if !out.IsNil() {
				c = over(FromValue(ev.Eval(env)), bg)
			}
			dst.SetPremultiplied(x, y, c)
		}
	}

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()
	pool.ForEach(h, func(start, end int) {
		ev := prog.NewEvaluator()
		env := &node.Env{
			Normal:        [3]float64{0, 0, 1},
			Camera:        o.camera,
			Time:          o.time,
			InstanceIndex: o.instance,
		}
		for y := start; y < end; y++ {
			row(y, ev, env)
		}
	})
	return nil
}

// Sample evaluates out at a single uv coordinate with the same conventions
// as Render and returns the premultiplied result.
func Sample(out node.Node, u, v float64, opts ...RenderOption) node.Value {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pos := [3]float64{u - 0.5, v - 0.5, 0}
	return node.Eval(out, &node.Env{
		UV:            [2]float64{u, v},
		PositionLocal: pos,
		PositionWorld: pos,
		Normal:        [3]float64{0, 0, 1},
		Camera:        o.camera,
		Time:          o.time,
		InstanceIndex: o.instance,
	})
}

// over composites premultiplied src over premultiplied dst.
func over(src, dst RGBA) RGBA {
	k := 1 - src.A
	return RGBA{
		R: src.R + dst.R*k,
		G: src.G + dst.G*k,
		B: src.B + dst.B*k,
		A: src.A + dst.A*k,
	}
}
