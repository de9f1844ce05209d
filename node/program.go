package node

import (
	"math"

	"github.com/gogpu/vfx/internal/noise"
)

// Order returns every node reachable from outs exactly once, each after all
// of its operands. Null outputs are skipped.
func Order(outs ...Node) []Node {
	var order []Node
	seen := make(map[*expr]bool)
	var visit func(e *expr)
	visit = func(e *expr) {
		if seen[e] {
			return
		}
		seen[e] = true
		for _, a := range e.args {
			visit(a)
		}
		order = append(order, Node{e: e})
	}
	for _, n := range outs {
		if n.e != nil {
			visit(n.e)
		}
	}
	return order
}

// Env supplies the builtin inputs of one evaluation.
type Env struct {
	UV            [2]float64
	PositionLocal [3]float64
	PositionWorld [3]float64
	Normal        [3]float64
	Camera        [3]float64
	Time          float64
	InstanceIndex int
	VertexIndex   int
	Attributes    map[string]Value
}

type step struct {
	e    *expr
	args []int
}

// Program is a graph flattened into evaluation order. Shared sub-graphs
// occupy one slot and are computed once per evaluation.
//
// A Program is immutable and may be shared between goroutines; each
// goroutine needs its own Evaluator.
type Program struct {
	steps []step
	typ   Type
}

// Compile flattens the graph rooted at out. A null out compiles to a
// program that yields the zero Value.
func Compile(out Node) *Program {
	order := Order(out)
	slot := make(map[*expr]int, len(order))
	p := &Program{steps: make([]step, len(order)), typ: out.Type()}
	for i, n := range order {
		slot[n.e] = i
		s := step{e: n.e}
		if len(n.e.args) > 0 {
			s.args = make([]int, len(n.e.args))
			for j, a := range n.e.args {
				s.args[j] = slot[a]
			}
		}
		p.steps[i] = s
	}
	return p
}

// Len returns the number of distinct nodes in the program.
func (p *Program) Len() int { return len(p.steps) }

// Type returns the type of the program's result.
func (p *Program) Type() Type { return p.typ }

// Evaluator runs a Program. It is not safe for concurrent use.
type Evaluator struct {
	prog  *Program
	slots []Value
}

// NewEvaluator returns an evaluator with its own scratch space.
func (p *Program) NewEvaluator() *Evaluator {
	return &Evaluator{prog: p, slots: make([]Value, len(p.steps))}
}

// Eval evaluates the program against env. Uniform values are read at the
// moment each uniform slot is reached.
func (ev *Evaluator) Eval(env *Env) Value {
	if len(ev.prog.steps) == 0 {
		return Value{}
	}
	if env == nil {
		env = &Env{}
	}
	for i := range ev.prog.steps {
		ev.slots[i] = ev.step(&ev.prog.steps[i], env)
	}
	return ev.slots[len(ev.slots)-1]
}

// Eval compiles n and evaluates it once. Prefer Compile for repeated use.
func Eval(n Node, env *Env) Value {
	return Compile(n).NewEvaluator().Eval(env)
}

func (ev *Evaluator) arg(s *step, i int) Value {
	return ev.slots[s.args[i]]
}

func (ev *Evaluator) step(s *step, env *Env) Value {
	e := s.e
	switch e.op {
	case OpConst:
		return e.value
	case OpUniform:
		return e.uniform.Get()
	case OpInput:
		return inputValue(e.input, env)
	case OpAttribute:
		if v, ok := env.Attributes[e.name]; ok {
			return v
		}
		return Value{Type: e.typ}
	case OpSwizzle:
		src := ev.arg(s, 0)
		out := Value{Type: e.typ}
		for i, k := range e.swz {
			out.V[i] = src.V[k]
		}
		return out
	case OpSplat:
		f := ev.arg(s, 0).V[0]
		out := Value{Type: e.typ}
		for i := 0; i < e.typ.Width(); i++ {
			out.V[i] = f
		}
		return out
	case OpConstruct:
		out := Value{Type: e.typ}
		k := 0
		for i := range s.args {
			v := ev.arg(s, i)
			for j := 0; j < v.Type.Width(); j++ {
				out.V[k] = v.V[j]
				k++
			}
		}
		return out
	case OpLength:
		return Scalar(length(ev.arg(s, 0)))
	case OpNormalize:
		v := ev.arg(s, 0)
		l := length(v)
		return mapN(e.typ, func(i int) float64 { return v.V[i] / l })
	case OpDot:
		a, b := ev.arg(s, 0), ev.arg(s, 1)
		d := 0.0
		for i := 0; i < a.Type.Width(); i++ {
			d += a.V[i] * b.V[i]
		}
		return Scalar(d)
	case OpCross:
		a, b := ev.arg(s, 0), ev.arg(s, 1)
		return Vector(
			a.V[1]*b.V[2]-a.V[2]*b.V[1],
			a.V[2]*b.V[0]-a.V[0]*b.V[2],
			a.V[0]*b.V[1]-a.V[1]*b.V[0],
		)
	case OpSelect:
		if ev.arg(s, 0).Bool() {
			return widen(ev.arg(s, 1), e.typ)
		}
		return widen(ev.arg(s, 2), e.typ)
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual:
		return Boolean(compareValues(e.op, ev.arg(s, 0).V[0], ev.arg(s, 1).V[0]))
	case OpToFloat:
		return Scalar(ev.arg(s, 0).V[0])
	case OpHash:
		return Scalar(noise.Hash(ev.arg(s, 0).V[0]))
	case OpNoise3:
		p := ev.arg(s, 0)
		return Scalar(noise.Perlin3(p.V[0], p.V[1], p.V[2]))
	case OpSmoothstep:
		a, b, x := ev.arg(s, 0), ev.arg(s, 1), ev.arg(s, 2)
		return mapN(e.typ, func(i int) float64 { return smoothstep(a.At(i), b.At(i), x.At(i)) })
	case OpMix:
		a, b, t := ev.arg(s, 0), ev.arg(s, 1), ev.arg(s, 2)
		return mapN(e.typ, func(i int) float64 { return a.At(i)*(1-t.At(i)) + b.At(i)*t.At(i) })
	}
	if len(s.args) == 1 {
		a := ev.arg(s, 0)
		f := unaryFuncs[e.op]
		return mapN(e.typ, func(i int) float64 { return f(a.V[i]) })
	}
	a, b := ev.arg(s, 0), ev.arg(s, 1)
	f := binaryFuncs[e.op]
	return mapN(e.typ, func(i int) float64 { return f(a.At(i), b.At(i)) })
}

func inputValue(in Input, env *Env) Value {
	switch in {
	case InputUV:
		return Vector(env.UV[0], env.UV[1])
	case InputTime:
		return Scalar(env.Time)
	case InputPositionLocal:
		return Vector(env.PositionLocal[:]...)
	case InputPositionWorld:
		return Vector(env.PositionWorld[:]...)
	case InputNormalLocal:
		return Vector(env.Normal[:]...)
	case InputCameraPosition:
		return Vector(env.Camera[:]...)
	case InputInstanceIndex:
		return Scalar(float64(env.InstanceIndex))
	case InputVertexIndex:
		return Scalar(float64(env.VertexIndex))
	}
	return Value{}
}

func mapN(t Type, f func(i int) float64) Value {
	out := Value{Type: t}
	for i := 0; i < t.Width(); i++ {
		out.V[i] = f(i)
	}
	return out
}

func widen(v Value, t Type) Value {
	if v.Type == t {
		return v
	}
	return mapN(t, v.At)
}

func length(v Value) float64 {
	sum := 0.0
	for i := 0; i < v.Type.Width(); i++ {
		sum += v.V[i] * v.V[i]
	}
	return math.Sqrt(sum)
}

func smoothstep(e0, e1, x float64) float64 {
	t := (x - e0) / (e1 - e0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func compareValues(op Op, a, b float64) bool {
	switch op {
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpEqual:
		return a == b
	}
	return a != b
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

var unaryFuncs = map[Op]func(float64) float64{
	OpNeg:   func(x float64) float64 { return -x },
	OpAbs:   math.Abs,
	OpSign:  sign,
	OpFloor: math.Floor,
	OpFract: func(x float64) float64 { return x - math.Floor(x) },
	OpSqrt:  math.Sqrt,
	OpSin:   math.Sin,
	OpCos:   math.Cos,
}

var binaryFuncs = map[Op]func(a, b float64) float64{
	OpAdd: func(a, b float64) float64 { return a + b },
	OpSub: func(a, b float64) float64 { return a - b },
	OpMul: func(a, b float64) float64 { return a * b },
	OpDiv: func(a, b float64) float64 { return a / b },
	OpMod: func(a, b float64) float64 { return a - b*math.Floor(a/b) },
	OpPow: math.Pow,
	OpMin: math.Min,
	OpMax: math.Max,
	OpStep: func(edge, x float64) float64 {
		if x >= edge {
			return 1
		}
		return 0
	},
}
