package node

import "fmt"

// Op identifies the operation an expression performs.
type Op uint8

const (
	OpConst Op = iota
	OpUniform
	OpInput
	OpAttribute
	OpSwizzle
	OpConstruct
	OpSplat

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg

	OpAbs
	OpSign
	OpFloor
	OpFract
	OpSqrt
	OpSin
	OpCos
	OpNormalize
	OpLength

	OpPow
	OpMin
	OpMax
	OpStep
	OpSmoothstep
	OpMix
	OpDot
	OpCross
	OpSelect

	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpToFloat

	OpHash
	OpNoise3
)

var opNames = [...]string{
	OpConst:        "const",
	OpUniform:      "uniform",
	OpInput:        "input",
	OpAttribute:    "attribute",
	OpSwizzle:      "swizzle",
	OpConstruct:    "construct",
	OpSplat:        "splat",
	OpAdd:          "add",
	OpSub:          "sub",
	OpMul:          "mul",
	OpDiv:          "div",
	OpMod:          "mod",
	OpNeg:          "neg",
	OpAbs:          "abs",
	OpSign:         "sign",
	OpFloor:        "floor",
	OpFract:        "fract",
	OpSqrt:         "sqrt",
	OpSin:          "sin",
	OpCos:          "cos",
	OpNormalize:    "normalize",
	OpLength:       "length",
	OpPow:          "pow",
	OpMin:          "min",
	OpMax:          "max",
	OpStep:         "step",
	OpSmoothstep:   "smoothstep",
	OpMix:          "mix",
	OpDot:          "dot",
	OpCross:        "cross",
	OpSelect:       "select",
	OpLess:         "lessThan",
	OpLessEqual:    "lessThanEqual",
	OpGreater:      "greaterThan",
	OpGreaterEqual: "greaterThanEqual",
	OpEqual:        "equal",
	OpNotEqual:     "notEqual",
	OpToFloat:      "toFloat",
	OpHash:         "hash",
	OpNoise3:       "noise3",
}

// String returns the operation name.
func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Input identifies a value the renderer supplies per invocation.
type Input uint8

const (
	InputUV Input = iota
	InputTime
	InputPositionLocal
	InputPositionWorld
	InputNormalLocal
	InputCameraPosition
	InputInstanceIndex
	InputVertexIndex
)

var inputNames = [...]string{
	InputUV:             "uv",
	InputTime:           "time",
	InputPositionLocal:  "positionLocal",
	InputPositionWorld:  "positionWorld",
	InputNormalLocal:    "normalLocal",
	InputCameraPosition: "cameraPosition",
	InputInstanceIndex:  "instanceIndex",
	InputVertexIndex:    "vertexIndex",
}

var inputTypes = [...]Type{
	InputUV:             TypeVec2,
	InputTime:           TypeFloat,
	InputPositionLocal:  TypeVec3,
	InputPositionWorld:  TypeVec3,
	InputNormalLocal:    TypeVec3,
	InputCameraPosition: TypeVec3,
	InputInstanceIndex:  TypeFloat,
	InputVertexIndex:    TypeFloat,
}

// String returns the input name.
func (in Input) String() string {
	if int(in) < len(inputNames) {
		return inputNames[in]
	}
	return fmt.Sprintf("Input(%d)", uint8(in))
}

// Type returns the static type of the input.
func (in Input) Type() Type {
	if int(in) < len(inputTypes) {
		return inputTypes[in]
	}
	return TypeInvalid
}

// expr is the immutable payload behind a Node.
type expr struct {
	op      Op
	typ     Type
	args    []*expr
	value   Value    // OpConst
	uniform *Uniform // OpUniform
	input   Input    // OpInput
	name    string   // OpAttribute
	swz     []int    // OpSwizzle
}

// Node is an immutable expression in a deferred computation graph.
//
// Nodes are cheap values that share their payload; combining nodes never
// mutates them. Node is comparable, and two Nodes are equal exactly when they
// refer to the same expression, so it can key a map.
//
// The zero Node is the null node: it has TypeInvalid and is what graph
// builders return when they have nothing to produce.
type Node struct {
	e *expr
}

func newNode(op Op, typ Type, args ...Node) Node {
	e := &expr{op: op, typ: typ}
	if len(args) > 0 {
		e.args = make([]*expr, len(args))
		for i, a := range args {
			e.args[i] = a.e
		}
	}
	return Node{e: e}
}

// IsNil reports whether n is the null node.
func (n Node) IsNil() bool {
	return n.e == nil
}

// Type returns the static type of n.
func (n Node) Type() Type {
	if n.e == nil {
		return TypeInvalid
	}
	return n.e.typ
}

// Op returns the operation n performs.
func (n Node) Op() Op {
	if n.e == nil {
		return OpConst
	}
	return n.e.op
}

// NumArgs returns the number of operands.
func (n Node) NumArgs() int {
	if n.e == nil {
		return 0
	}
	return len(n.e.args)
}

// Arg returns operand i.
func (n Node) Arg(i int) Node {
	return Node{e: n.e.args[i]}
}

// Value returns the constant value of an OpConst node.
func (n Node) Value() Value {
	if n.e == nil {
		return Value{}
	}
	return n.e.value
}

// Uniform returns the handle of an OpUniform node, or nil.
func (n Node) Uniform() *Uniform {
	if n.e == nil {
		return nil
	}
	return n.e.uniform
}

// Input returns the input of an OpInput node.
func (n Node) Input() Input {
	if n.e == nil {
		return 0
	}
	return n.e.input
}

// AttributeName returns the attribute name of an OpAttribute node.
func (n Node) AttributeName() string {
	if n.e == nil {
		return ""
	}
	return n.e.name
}

// SwizzleIndices returns the component indices of an OpSwizzle node.
func (n Node) SwizzleIndices() []int {
	if n.e == nil {
		return nil
	}
	out := make([]int, len(n.e.swz))
	copy(out, n.e.swz)
	return out
}

// String describes n for diagnostics.
func (n Node) String() string {
	if n.e == nil {
		return "<nil>"
	}
	switch n.e.op {
	case OpConst:
		return n.e.value.String()
	case OpUniform:
		return "uniform(" + n.e.uniform.Name() + ")"
	case OpInput:
		return n.e.input.String()
	case OpAttribute:
		return "attribute(" + n.e.name + ")"
	}
	return fmt.Sprintf("%s:%s", n.e.op, n.e.typ)
}
