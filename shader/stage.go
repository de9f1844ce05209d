package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/vfx/node"
)

type stageKind uint8

const (
	stageVertex stageKind = iota
	stageFragment
)

// stage emits one entry point body, a let per node in dependency order.
type stage struct {
	kind   stageKind
	fields map[*node.Uniform]Field
	attrs  map[string]Attribute
	names  map[node.Node]string
	b      strings.Builder
}

func newStage(kind stageKind, fields map[*node.Uniform]Field, attrs []Attribute) *stage {
	s := &stage{
		kind:   kind,
		fields: fields,
		attrs:  make(map[string]Attribute, len(attrs)),
		names:  make(map[node.Node]string),
	}
	for _, a := range attrs {
		s.attrs[a.Name] = a
	}
	return s
}

func (s *stage) emit(out node.Node) (string, error) {
	for i, n := range node.Order(out) {
		expr, err := s.expr(n)
		if err != nil {
			return "", err
		}
		name := fmt.Sprintf("v%d", i)
		s.names[n] = name
		fmt.Fprintf(&s.b, "\tlet %s: %s = %s;\n", name, wgslType(n.Type()), expr)
	}
	return s.b.String(), nil
}

func (s *stage) arg(n node.Node, i int) string {
	return s.names[n.Arg(i)]
}

// widened returns argument i splatted to the result type when it is a
// scalar feeding a vector builtin.
func (s *stage) widened(n node.Node, i int) string {
	a := n.Arg(i)
	if a.Type() == node.TypeFloat && n.Type().IsVector() {
		return fmt.Sprintf("%s(%s)", wgslType(n.Type()), s.names[a])
	}
	return s.names[a]
}

var infix = map[node.Op]string{
	node.OpAdd:          "+",
	node.OpSub:          "-",
	node.OpMul:          "*",
	node.OpDiv:          "/",
	node.OpLess:         "<",
	node.OpLessEqual:    "<=",
	node.OpGreater:      ">",
	node.OpGreaterEqual: ">=",
	node.OpEqual:        "==",
	node.OpNotEqual:     "!=",
}

var builtin = map[node.Op]string{
	node.OpAbs:        "abs",
	node.OpSign:       "sign",
	node.OpFloor:      "floor",
	node.OpFract:      "fract",
	node.OpSqrt:       "sqrt",
	node.OpSin:        "sin",
	node.OpCos:        "cos",
	node.OpNormalize:  "normalize",
	node.OpLength:     "length",
	node.OpPow:        "pow",
	node.OpMin:        "min",
	node.OpMax:        "max",
	node.OpStep:       "step",
	node.OpSmoothstep: "smoothstep",
	node.OpDot:        "dot",
	node.OpCross:      "cross",
}

func (s *stage) expr(n node.Node) (string, error) {
	op := n.Op()
	if sym, ok := infix[op]; ok {
		return fmt.Sprintf("(%s %s %s)", s.arg(n, 0), sym, s.arg(n, 1)), nil
	}
	switch op {
	case node.OpConst:
		return constant(n.Value())
	case node.OpUniform:
		f := s.fields[n.Uniform()]
		if n.Type() == node.TypeBool {
			return fmt.Sprintf("(fx.%s != 0.0)", f.Name), nil
		}
		return "fx." + f.Name, nil
	case node.OpInput:
		return s.input(n.Input()), nil
	case node.OpAttribute:
		return "vin." + s.attrs[n.AttributeName()].ident, nil
	case node.OpSwizzle:
		var sw strings.Builder
		for _, k := range n.SwizzleIndices() {
			sw.WriteByte("xyzw"[k])
		}
		return s.arg(n, 0) + "." + sw.String(), nil
	case node.OpSplat:
		return fmt.Sprintf("%s(%s)", wgslType(n.Type()), s.arg(n, 0)), nil
	case node.OpConstruct:
		parts := make([]string, n.NumArgs())
		for i := range parts {
			parts[i] = s.arg(n, i)
		}
		return fmt.Sprintf("%s(%s)", wgslType(n.Type()), strings.Join(parts, ", ")), nil
	case node.OpMod:
		a, b := s.arg(n, 0), s.arg(n, 1)
		return fmt.Sprintf("(%s - %s * floor(%s / %s))", a, b, a, b), nil
	case node.OpNeg:
		return fmt.Sprintf("(-%s)", s.arg(n, 0)), nil
	case node.OpMix:
		return fmt.Sprintf("mix(%s, %s, %s)", s.widened(n, 0), s.widened(n, 1), s.arg(n, 2)), nil
	case node.OpSelect:
		return fmt.Sprintf("select(%s, %s, %s)", s.widened(n, 2), s.widened(n, 1), s.arg(n, 0)), nil
	case node.OpToFloat:
		return fmt.Sprintf("select(0.0, 1.0, %s)", s.arg(n, 0)), nil
	case node.OpHash:
		return fmt.Sprintf("fx_hash(%s)", s.arg(n, 0)), nil
	case node.OpNoise3:
		return fmt.Sprintf("fx_noise3(%s)", s.arg(n, 0)), nil
	}
	fn, ok := builtin[op]
	if !ok {
		return "", fmt.Errorf("shader: no WGSL for %s", op)
	}
	args := make([]string, n.NumArgs())
	for i := range args {
		switch op {
		case node.OpDot, node.OpCross, node.OpLength, node.OpNormalize:
			args[i] = s.arg(n, i)
		default:
			args[i] = s.widened(n, i)
		}
	}
	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", ")), nil
}

func (s *stage) input(in node.Input) string {
	switch in {
	case node.InputUV:
		return "vin.uv"
	case node.InputTime:
		return "fx.time"
	case node.InputPositionLocal, node.InputPositionWorld:
		if s.kind == stageVertex {
			return "vin.position"
		}
		return "vin.local"
	case node.InputNormalLocal:
		return "vin.normal"
	case node.InputCameraPosition:
		return "fx.camera"
	case node.InputInstanceIndex:
		if s.kind == stageVertex {
			return "f32(vin.instance_index)"
		}
		return "f32(vin.instance_id)"
	case node.InputVertexIndex:
		if s.kind == stageVertex {
			return "f32(vin.vertex_index)"
		}
		return "f32(vin.vertex_id)"
	}
	return "0.0"
}

func constant(v node.Value) (string, error) {
	if v.Type == node.TypeBool {
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	}
	parts := make([]string, v.Type.Width())
	for i := range parts {
		lit, err := literal(v.V[i])
		if err != nil {
			return "", err
		}
		parts[i] = lit
	}
	if v.Type == node.TypeFloat {
		return parts[0], nil
	}
	return fmt.Sprintf("%s(%s)", wgslType(v.Type), strings.Join(parts, ", ")), nil
}
