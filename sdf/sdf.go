// Package sdf builds 2D signed-distance expressions.
//
// Every function returns a float node that is negative inside the shape,
// zero on its boundary and positive outside. Inputs are not validated; NaN
// and infinities propagate into the result.
//
// The formulas follow https://iquilezles.org/articles/distfunctions2d/.
package sdf

import (
	"math"

	"github.com/gogpu/vfx/node"
)

// Circle is the distance from p to a circle of radius r centred at the
// origin.
func Circle(p, r node.Node) node.Node {
	return p.Length().Sub(r)
}

// Vesica is the distance from p to the lens formed by two circles of radius
// r whose centres sit at (±d, 0). When r < d there is no lens: the arc test
// is false for every p and the result is the finite distance to a circle of
// radius r centred at (-|d|, 0) in the folded quadrant.
func Vesica(p, r, d node.Node) node.Node {
	pa := p.Abs()
	b := r.Mul(r).Sub(d.Mul(d)).Sqrt()
	arc := pa.Y().Sub(b).Mul(d).GreaterThan(pa.X().Mul(b))
	return node.Select(arc,
		pa.Sub(node.Vec2(node.Float(0), b)).Length(),
		pa.Sub(node.Vec2(d.Neg(), node.Float(0))).Length().Sub(r),
	)
}

// Heart is the distance from p to a unit heart whose lobes meet at (0, 1)
// and whose tip sits at the origin.
func Heart(p node.Node) node.Node {
	q := node.Vec2(p.X().Abs(), p.Y())
	upper := dot2(q.Sub(node.V2(0.25, 0.75))).Sqrt().Sub(node.Float(math.Sqrt2 / 4))
	lower := node.Min(
		dot2(q.Sub(node.V2(0, 1))),
		dot2(q.Sub(node.Max(q.X().Add(q.Y()), node.Float(0)).Mul(node.Float(0.5)))),
	).Sqrt().Mul(q.X().Sub(q.Y()).Sign())
	return node.Select(q.Y().Add(q.X()).GreaterThan(node.Float(1)), upper, lower)
}

func dot2(v node.Node) node.Node {
	return node.Dot(v, v)
}
