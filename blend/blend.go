// Package blend folds premultiplied color layers into one color node.
//
// Every operator takes its layers in order and folds left to right. An empty
// layer list is a construction mistake: the operators log it at error level
// through vfx.Logger and return the null node, which callers are expected to
// check with IsNil before compositing further. Reduce is the error-returning
// form.
package blend

import (
	"errors"
	"fmt"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/node"
)

// ErrNoLayers is returned by Reduce when there is nothing to blend.
var ErrNoLayers = errors.New("blend: no layers provided")

// Operator is a blending operator.
type Operator int

const (
	OpAlpha Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMax
	OpMin
	OpOver
)

var operatorNames = [...]string{
	OpAlpha: "alpha",
	OpAdd:   "add",
	OpSub:   "sub",
	OpMul:   "mul",
	OpDiv:   "div",
	OpMax:   "max",
	OpMin:   "min",
	OpOver:  "over",
}

// String returns the operator name.
func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// ParseOperator returns the operator with the given name.
func ParseOperator(s string) (Operator, error) {
	for i, name := range operatorNames {
		if name == s {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("blend: unknown operator %q", s)
}

// Options configures the arithmetic operators.
type Options struct {
	// Alpha includes the alpha channel in the arithmetic. When false, each
	// incoming layer's alpha is replaced by the operator's identity so the
	// accumulated alpha is left as it was.
	Alpha bool
}

// identity is the alpha that leaves the accumulator unchanged.
func (op Operator) identity() float64 {
	switch op {
	case OpMul, OpDiv, OpMin:
		return 1
	}
	return 0
}

func (op Operator) apply(acc, layer node.Node) node.Node {
	switch op {
	case OpAdd:
		return acc.Add(layer)
	case OpSub:
		return acc.Sub(layer)
	case OpMul:
		return acc.Mul(layer)
	case OpDiv:
		return acc.Div(layer)
	case OpMax:
		return node.Max(acc, layer)
	case OpMin:
		return node.Min(acc, layer)
	case OpOver:
		return layer.Add(acc.Mul(layer.W().OneMinus()))
	}
	return node.Mix(acc, layer, layer.W())
}

// Reduce folds layers with op. Null layers are skipped.
func Reduce(op Operator, opts Options, layers []node.Node) (node.Node, error) {
	var acc node.Node
	for _, layer := range layers {
		if layer.IsNil() {
			continue
		}
		if acc.IsNil() {
			acc = layer
			continue
		}
		if op != OpAlpha && op != OpOver && !opts.Alpha {
			layer = node.Vec4(layer.XYZ(), node.Float(op.identity()))
		}
		acc = op.apply(acc, layer)
	}
	if acc.IsNil() {
		return node.Node{}, fmt.Errorf("%w: %s", ErrNoLayers, op)
	}
	return acc, nil
}

func reduceOrLog(op Operator, opts Options, layers []node.Node) node.Node {
	out, err := Reduce(op, opts, layers)
	if err != nil {
		vfx.Logger().Error("blend: nothing to blend", "op", op.String(), "layers", len(layers))
	}
	return out
}

// Alpha composites layers over one another: acc = mix(acc, layer, layer.a).
func Alpha(layers ...node.Node) node.Node {
	return reduceOrLog(OpAlpha, Options{}, layers)
}

// Over composites premultiplied layers with Porter-Duff source-over:
// acc = layer + acc*(1-layer.a).
func Over(layers ...node.Node) node.Node {
	return reduceOrLog(OpOver, Options{}, layers)
}

// Add sums layers.
func Add(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpAdd, opts, layers)
}

// Sub subtracts each layer from the accumulator.
func Sub(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpSub, opts, layers)
}

// Mul multiplies layers.
func Mul(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpMul, opts, layers)
}

// Div divides the accumulator by each layer.
func Div(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpDiv, opts, layers)
}

// Max keeps the component-wise maximum.
func Max(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpMax, opts, layers)
}

// Min keeps the component-wise minimum.
func Min(opts Options, layers ...node.Node) node.Node {
	return reduceOrLog(OpMin, opts, layers)
}

// By returns the two-layer form of op, for use with Pipe.
func By(op Operator, opts Options) func(acc, layer node.Node) node.Node {
	return func(acc, layer node.Node) node.Node {
		return reduceOrLog(op, opts, []node.Node{acc, layer})
	}
}

// Pipe folds rest into first with fn, left to right.
func Pipe[T any](fn func(acc, next T) T, first T, rest ...T) T {
	acc := first
	for _, next := range rest {
		acc = fn(acc, next)
	}
	return acc
}
