package node

import "fmt"

// Type is the static type of an expression.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeBool
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
)

// String returns the shader-style name of the type.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	default:
		return "invalid"
	}
}

// Width returns the number of components of the type.
func (t Type) Width() int {
	switch t {
	case TypeBool, TypeFloat:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	default:
		return 0
	}
}

// IsVector reports whether t is vec2, vec3 or vec4.
func (t Type) IsVector() bool {
	return t >= TypeVec2 && t <= TypeVec4
}

// FloatType returns the float type with n components.
func FloatType(n int) Type {
	switch n {
	case 1:
		return TypeFloat
	case 2:
		return TypeVec2
	case 3:
		return TypeVec3
	case 4:
		return TypeVec4
	default:
		panic(fmt.Sprintf("node: no float type with %d components", n))
	}
}

// Value is an evaluated expression result or a constant.
// Components past the type's width are zero. Booleans are stored as 0 or 1.
type Value struct {
	Type Type
	V    [4]float64
}

// Scalar returns a float value.
func Scalar(f float64) Value {
	return Value{Type: TypeFloat, V: [4]float64{f}}
}

// Vector returns a float value with len(c) components (1 to 4).
func Vector(c ...float64) Value {
	v := Value{Type: FloatType(len(c))}
	copy(v.V[:], c)
	return v
}

// Boolean returns a bool value.
func Boolean(b bool) Value {
	v := Value{Type: TypeBool}
	if b {
		v.V[0] = 1
	}
	return v
}

// Float returns the first component.
func (v Value) Float() float64 {
	return v.V[0]
}

// Bool reports whether the first component is non-zero.
func (v Value) Bool() bool {
	return v.V[0] != 0
}

// At returns component i. A scalar answers every index with its only
// component, which matches shader broadcasting.
func (v Value) At(i int) float64 {
	if v.Type.Width() == 1 {
		return v.V[0]
	}
	return v.V[i]
}

// Components returns the meaningful components as a slice.
func (v Value) Components() []float64 {
	out := make([]float64, v.Type.Width())
	copy(out, v.V[:])
	return out
}

// String formats the value for diagnostics.
func (v Value) String() string {
	switch v.Type.Width() {
	case 1:
		if v.Type == TypeBool {
			return fmt.Sprintf("%t", v.Bool())
		}
		return fmt.Sprintf("%g", v.V[0])
	case 2:
		return fmt.Sprintf("vec2(%g, %g)", v.V[0], v.V[1])
	case 3:
		return fmt.Sprintf("vec3(%g, %g, %g)", v.V[0], v.V[1], v.V[2])
	case 4:
		return fmt.Sprintf("vec4(%g, %g, %g, %g)", v.V[0], v.V[1], v.V[2], v.V[3])
	}
	return "invalid"
}
