package node

import (
	"fmt"
	"strings"
)

// Float returns a float constant.
func Float(f float64) Node {
	return Const(Scalar(f))
}

// Bool returns a bool constant.
func Bool(b bool) Node {
	return Const(Boolean(b))
}

// V2 returns a vec2 constant.
func V2(x, y float64) Node {
	return Const(Vector(x, y))
}

// V3 returns a vec3 constant.
func V3(x, y, z float64) Node {
	return Const(Vector(x, y, z))
}

// V4 returns a vec4 constant.
func V4(x, y, z, w float64) Node {
	return Const(Vector(x, y, z, w))
}

// Const returns a constant node holding v.
func Const(v Value) Node {
	if v.Type == TypeInvalid {
		panic("node: constant of invalid type")
	}
	n := newNode(OpConst, v.Type)
	n.e.value = v
	return n
}

// FromInput returns the builtin input node.
func FromInput(in Input) Node {
	t := in.Type()
	if t == TypeInvalid {
		panic(fmt.Sprintf("node: unknown input %d", uint8(in)))
	}
	n := newNode(OpInput, t)
	n.e.input = in
	return n
}

// UV is the interpolated surface coordinate in [0,1]².
func UV() Node { return FromInput(InputUV) }

// Time is the renderer clock in seconds.
func Time() Node { return FromInput(InputTime) }

// PositionLocal is the object-space position of the current fragment or vertex.
func PositionLocal() Node { return FromInput(InputPositionLocal) }

// PositionWorld is the world-space position.
func PositionWorld() Node { return FromInput(InputPositionWorld) }

// NormalLocal is the object-space normal.
func NormalLocal() Node { return FromInput(InputNormalLocal) }

// CameraPosition is the world-space camera position.
func CameraPosition() Node { return FromInput(InputCameraPosition) }

// InstanceIndex is the index of the instance being drawn, as a float.
func InstanceIndex() Node { return FromInput(InputInstanceIndex) }

// VertexIndex is the index of the vertex being processed, as a float.
func VertexIndex() Node { return FromInput(InputVertexIndex) }

// Attribute reads the named per-vertex attribute.
func Attribute(name string, t Type) Node {
	if name == "" {
		panic("node: attribute without a name")
	}
	if t.Width() == 0 || t == TypeBool {
		panic(fmt.Sprintf("node: attribute %q of type %s", name, t))
	}
	n := newNode(OpAttribute, t)
	n.e.name = name
	return n
}

func mustFloat(op string, ns ...Node) {
	for _, n := range ns {
		if n.e == nil {
			panic(fmt.Sprintf("node: %s of nil node", op))
		}
		if n.e.typ == TypeBool || n.e.typ == TypeInvalid {
			panic(fmt.Sprintf("node: %s of %s", op, n.e.typ))
		}
	}
}

// broadcast returns the result type of combining ns component-wise.
// Scalars widen to the vector width; two different vector widths panic.
func broadcast(op string, ns ...Node) Type {
	mustFloat(op, ns...)
	t := TypeFloat
	for _, n := range ns {
		nt := n.e.typ
		if nt == TypeFloat || nt == t {
			continue
		}
		if t != TypeFloat {
			panic(fmt.Sprintf("node: %s of %s and %s", op, t, nt))
		}
		t = nt
	}
	return t
}

func binary(op Op, a, b Node) Node {
	return newNode(op, broadcast(op.String(), a, b), a, b)
}

func unary(op Op, a Node) Node {
	mustFloat(op.String(), a)
	return newNode(op, a.e.typ, a)
}

// Add returns n + m.
func (n Node) Add(m Node) Node { return binary(OpAdd, n, m) }

// Sub returns n - m.
func (n Node) Sub(m Node) Node { return binary(OpSub, n, m) }

// Mul returns the component-wise product n * m.
func (n Node) Mul(m Node) Node { return binary(OpMul, n, m) }

// Div returns n / m.
func (n Node) Div(m Node) Node { return binary(OpDiv, n, m) }

// Mod returns n - m*floor(n/m).
func (n Node) Mod(m Node) Node { return binary(OpMod, n, m) }

// Neg returns -n.
func (n Node) Neg() Node { return unary(OpNeg, n) }

// Abs returns |n|.
func (n Node) Abs() Node { return unary(OpAbs, n) }

// Sign returns -1, 0 or 1 per component.
func (n Node) Sign() Node { return unary(OpSign, n) }

// Floor rounds toward negative infinity.
func (n Node) Floor() Node { return unary(OpFloor, n) }

// Fract returns n - floor(n).
func (n Node) Fract() Node { return unary(OpFract, n) }

// Sqrt returns the square root.
func (n Node) Sqrt() Node { return unary(OpSqrt, n) }

// Sin returns the sine.
func (n Node) Sin() Node { return unary(OpSin, n) }

// Cos returns the cosine.
func (n Node) Cos() Node { return unary(OpCos, n) }

// Normalize returns n scaled to unit length.
func (n Node) Normalize() Node { return unary(OpNormalize, n) }

// Length returns the Euclidean length of n as a float.
func (n Node) Length() Node {
	mustFloat("length", n)
	return newNode(OpLength, TypeFloat, n)
}

// OneMinus returns 1 - n.
func (n Node) OneMinus() Node { return Float(1).Sub(n) }

// Pow returns n raised to m.
func (n Node) Pow(m Node) Node { return binary(OpPow, n, m) }

// Min returns the component-wise minimum.
func (n Node) Min(m Node) Node { return binary(OpMin, n, m) }

// Max returns the component-wise maximum.
func (n Node) Max(m Node) Node { return binary(OpMax, n, m) }

// Step returns 0 where x < n and 1 otherwise; n is the edge.
func (n Node) Step(x Node) Node { return Step(n, x) }

// Clamp limits n to [lo, hi].
func (n Node) Clamp(lo, hi Node) Node { return n.Max(lo).Min(hi) }

// Dot returns the dot product.
func (n Node) Dot(m Node) Node { return Dot(n, m) }

// Cross returns the cross product of two vec3 nodes.
func (n Node) Cross(m Node) Node { return Cross(n, m) }

func compare(op Op, a, b Node) Node {
	mustFloat(op.String(), a, b)
	if a.e.typ != TypeFloat || b.e.typ != TypeFloat {
		panic(fmt.Sprintf("node: %s of %s and %s", op, a.e.typ, b.e.typ))
	}
	return newNode(op, TypeBool, a, b)
}

// LessThan returns n < m.
func (n Node) LessThan(m Node) Node { return compare(OpLess, n, m) }

// LessThanEqual returns n <= m.
func (n Node) LessThanEqual(m Node) Node { return compare(OpLessEqual, n, m) }

// GreaterThan returns n > m.
func (n Node) GreaterThan(m Node) Node { return compare(OpGreater, n, m) }

// GreaterThanEqual returns n >= m.
func (n Node) GreaterThanEqual(m Node) Node { return compare(OpGreaterEqual, n, m) }

// Equal returns n == m.
func (n Node) Equal(m Node) Node { return compare(OpEqual, n, m) }

// NotEqual returns n != m.
func (n Node) NotEqual(m Node) Node { return compare(OpNotEqual, n, m) }

// ToFloat converts a bool to 0 or 1. Floats pass through unchanged.
func (n Node) ToFloat() Node {
	if n.e == nil {
		panic("node: toFloat of nil node")
	}
	switch n.e.typ {
	case TypeFloat:
		return n
	case TypeBool:
		return newNode(OpToFloat, TypeFloat, n)
	}
	panic(fmt.Sprintf("node: toFloat of %s", n.e.typ))
}

// ToVec4 widens n to vec4. A float splats; vec2 and vec3 are padded with
// zeros and a w of 1.
func (n Node) ToVec4() Node {
	mustFloat("toVec4", n)
	switch n.e.typ {
	case TypeFloat:
		return Splat(4, n)
	case TypeVec2:
		return Vec4(n, Float(0), Float(1))
	case TypeVec3:
		return Vec4(n, Float(1))
	}
	return n
}

// X returns the first component.
func (n Node) X() Node { return n.Swizzle("x") }

// Y returns the second component.
func (n Node) Y() Node { return n.Swizzle("y") }

// Z returns the third component.
func (n Node) Z() Node { return n.Swizzle("z") }

// W returns the fourth component.
func (n Node) W() Node { return n.Swizzle("w") }

// XY returns the first two components.
func (n Node) XY() Node { return n.Swizzle("xy") }

// XYZ returns the first three components.
func (n Node) XYZ() Node { return n.Swizzle("xyz") }

// Swizzle selects components by name, "xyzw" or "rgba". Swizzling a float
// with x repeats it.
func (n Node) Swizzle(s string) Node {
	mustFloat("swizzle", n)
	if len(s) < 1 || len(s) > 4 {
		panic(fmt.Sprintf("node: swizzle %q", s))
	}
	width := n.e.typ.Width()
	idx := make([]int, len(s))
	for i, c := range s {
		k := strings.IndexRune("xyzw", c)
		if k < 0 {
			k = strings.IndexRune("rgba", c)
		}
		if k < 0 || (k >= width && width > 1) || (width == 1 && k != 0) {
			panic(fmt.Sprintf("node: swizzle %q of %s", s, n.e.typ))
		}
		idx[i] = k
	}
	if width == 1 {
		if len(s) == 1 {
			return n
		}
		return Splat(len(s), n)
	}
	if len(idx) == width && isIdentity(idx) {
		return n
	}
	out := newNode(OpSwizzle, FloatType(len(idx)), n)
	out.e.swz = idx
	return out
}

func isIdentity(idx []int) bool {
	for i, k := range idx {
		if i != k {
			return false
		}
	}
	return true
}

// Splat repeats a float into a vector of width components.
func Splat(width int, f Node) Node {
	mustFloat("splat", f)
	if f.e.typ != TypeFloat {
		panic(fmt.Sprintf("node: splat of %s", f.e.typ))
	}
	if width == 1 {
		return f
	}
	return newNode(OpSplat, FloatType(width), f)
}

func construct(width int, parts []Node) Node {
	mustFloat("construct", parts...)
	if len(parts) == 1 && parts[0].e.typ == TypeFloat {
		return Splat(width, parts[0])
	}
	sum := 0
	for _, p := range parts {
		sum += p.e.typ.Width()
	}
	if sum != width {
		panic(fmt.Sprintf("node: %d components given for %s", sum, FloatType(width)))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return newNode(OpConstruct, FloatType(width), parts...)
}

// Vec2 composes a vec2 from parts whose widths sum to 2, or splats one float.
func Vec2(parts ...Node) Node { return construct(2, parts) }

// Vec3 composes a vec3 from parts whose widths sum to 3, or splats one float.
func Vec3(parts ...Node) Node { return construct(3, parts) }

// Vec4 composes a vec4 from parts whose widths sum to 4, or splats one float.
func Vec4(parts ...Node) Node { return construct(4, parts) }

// Pow returns a raised to b.
func Pow(a, b Node) Node { return binary(OpPow, a, b) }

// Min returns the component-wise minimum.
func Min(a, b Node) Node { return binary(OpMin, a, b) }

// Max returns the component-wise maximum.
func Max(a, b Node) Node { return binary(OpMax, a, b) }

// Step returns 0 where x < edge and 1 otherwise.
func Step(edge, x Node) Node { return binary(OpStep, edge, x) }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi Node) Node { return x.Clamp(lo, hi) }

// Smoothstep returns the Hermite interpolation of x between e0 and e1.
func Smoothstep(e0, e1, x Node) Node {
	return newNode(OpSmoothstep, broadcast("smoothstep", e0, e1, x), e0, e1, x)
}

// Mix returns a*(1-t) + b*t.
func Mix(a, b, t Node) Node {
	return newNode(OpMix, broadcast("mix", a, b, t), a, b, t)
}

// Dot returns the dot product of two nodes of equal width.
func Dot(a, b Node) Node {
	mustFloat("dot", a, b)
	if a.e.typ != b.e.typ {
		panic(fmt.Sprintf("node: dot of %s and %s", a.e.typ, b.e.typ))
	}
	return newNode(OpDot, TypeFloat, a, b)
}

// Cross returns the cross product of two vec3 nodes.
func Cross(a, b Node) Node {
	mustFloat("cross", a, b)
	if a.e.typ != TypeVec3 || b.e.typ != TypeVec3 {
		panic(fmt.Sprintf("node: cross of %s and %s", a.e.typ, b.e.typ))
	}
	return newNode(OpCross, TypeVec3, a, b)
}

// Select returns a where cond holds and b otherwise. Both branches are
// always evaluated. A float condition holds when it is non-zero.
func Select(cond, a, b Node) Node {
	if cond.e == nil {
		panic("node: select with nil condition")
	}
	switch cond.e.typ {
	case TypeBool:
	case TypeFloat:
		cond = cond.NotEqual(Float(0))
	default:
		panic(fmt.Sprintf("node: select on %s", cond.e.typ))
	}
	return newNode(OpSelect, broadcast("select", a, b), cond, a, b)
}

// Rotate turns the vec2 p counter-clockwise by angle radians.
func Rotate(p, angle Node) Node {
	mustFloat("rotate", p, angle)
	if p.e.typ != TypeVec2 || angle.e.typ != TypeFloat {
		panic(fmt.Sprintf("node: rotate of %s by %s", p.e.typ, angle.e.typ))
	}
	c, s := angle.Cos(), angle.Sin()
	x, y := p.X(), p.Y()
	return Vec2(c.Mul(x).Sub(s.Mul(y)), s.Mul(x).Add(c.Mul(y)))
}

// Hash maps a float seed to a pseudo-random float in [0,1). The seed is
// truncated to an unsigned integer first, so seeds in [k, k+1) agree.
func Hash(seed Node) Node {
	mustFloat("hash", seed)
	if seed.e.typ != TypeFloat {
		panic(fmt.Sprintf("node: hash of %s", seed.e.typ))
	}
	return newNode(OpHash, TypeFloat, seed)
}

// Noise3 is 3D gradient noise of p, roughly in [-1,1] and 0 on integer
// lattice points.
func Noise3(p Node) Node {
	mustFloat("noise3", p)
	if p.e.typ != TypeVec3 {
		panic(fmt.Sprintf("node: noise3 of %s", p.e.typ))
	}
	return newNode(OpNoise3, TypeFloat, p)
}

// Noise3Vec3 returns three decorrelated noise channels of p.
func Noise3Vec3(p Node) Node {
	return Vec3(
		Noise3(p),
		Noise3(p.Add(V3(31.341, -43.23, 12.34))),
		Noise3(p.Add(V3(-231.341, 124.23, -54.34))),
	)
}

// FractalNoise3Vec3 sums octaves of Noise3Vec3, scaling frequency by
// lacunarity and amplitude by diminish per octave.
func FractalNoise3Vec3(p Node, octaves int, lacunarity, diminish float64) Node {
	if octaves < 1 {
		return Splat(3, Float(0))
	}
	var sum Node
	freq, amp := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		layer := Noise3Vec3(p.Mul(Float(freq))).Mul(Float(amp))
		if sum.IsNil() {
			sum = layer
		} else {
			sum = sum.Add(layer)
		}
		freq *= lacunarity
		amp *= diminish
	}
	return sum
}
