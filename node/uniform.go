package node

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTypeMismatch is returned when a value does not match a uniform's type.
var ErrTypeMismatch = errors.New("node: value type does not match uniform")

// Uniform is a named, typed parameter that is written by the host between
// frames and read whenever a graph using it is evaluated.
//
// A Uniform is safe for concurrent use.
type Uniform struct {
	name string
	typ  Type
	node Node

	mu  sync.RWMutex
	val Value
}

// NewUniform creates a uniform holding initial. The uniform's type is the
// type of initial.
func NewUniform(name string, initial Value) *Uniform {
	if initial.Type == TypeInvalid {
		panic(fmt.Sprintf("node: uniform %q of invalid type", name))
	}
	u := &Uniform{name: name, typ: initial.Type, val: initial}
	u.node = newNode(OpUniform, initial.Type)
	u.node.e.uniform = u
	return u
}

// UniformFloat creates a float uniform.
func UniformFloat(name string, f float64) *Uniform {
	return NewUniform(name, Scalar(f))
}

// UniformVec2 creates a vec2 uniform.
func UniformVec2(name string, x, y float64) *Uniform {
	return NewUniform(name, Vector(x, y))
}

// UniformVec3 creates a vec3 uniform.
func UniformVec3(name string, x, y, z float64) *Uniform {
	return NewUniform(name, Vector(x, y, z))
}

// UniformVec4 creates a vec4 uniform.
func UniformVec4(name string, x, y, z, w float64) *Uniform {
	return NewUniform(name, Vector(x, y, z, w))
}

// UniformBool creates a bool uniform.
func UniformBool(name string, b bool) *Uniform {
	return NewUniform(name, Boolean(b))
}

// Name returns the uniform name.
func (u *Uniform) Name() string { return u.name }

// Type returns the uniform type.
func (u *Uniform) Type() Type { return u.typ }

// Node returns the graph node reading u. Every call returns the same node.
func (u *Uniform) Node() Node { return u.node }

// Get returns the current value.
func (u *Uniform) Get() Value {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.val
}

// Float returns the first component of the current value.
func (u *Uniform) Float() float64 {
	return u.Get().V[0]
}

// Set replaces the current value.
func (u *Uniform) Set(v Value) error {
	if v.Type != u.typ {
		return fmt.Errorf("%w: %s is %s, got %s", ErrTypeMismatch, u.name, u.typ, v.Type)
	}
	u.mu.Lock()
	u.val = v
	u.mu.Unlock()
	return nil
}

func (u *Uniform) mustSet(v Value) {
	if err := u.Set(v); err != nil {
		panic(err)
	}
}

// SetFloat sets a float uniform. It panics if u is not a float.
func (u *Uniform) SetFloat(f float64) { u.mustSet(Scalar(f)) }

// SetVec2 sets a vec2 uniform. It panics if u is not a vec2.
func (u *Uniform) SetVec2(x, y float64) { u.mustSet(Vector(x, y)) }

// SetVec3 sets a vec3 uniform. It panics if u is not a vec3.
func (u *Uniform) SetVec3(x, y, z float64) { u.mustSet(Vector(x, y, z)) }

// SetVec4 sets a vec4 uniform. It panics if u is not a vec4.
func (u *Uniform) SetVec4(x, y, z, w float64) { u.mustSet(Vector(x, y, z, w)) }

// SetBool sets a bool uniform. It panics if u is not a bool.
func (u *Uniform) SetBool(b bool) { u.mustSet(Boolean(b)) }

// Uniforms returns the distinct uniforms reachable from the given nodes in
// first-visit order.
func Uniforms(outs ...Node) []*Uniform {
	var list []*Uniform
	seen := make(map[*expr]bool)
	var visit func(e *expr)
	visit = func(e *expr) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true
		if e.op == OpUniform {
			list = append(list, e.uniform)
			return
		}
		for _, a := range e.args {
			visit(a)
		}
	}
	for _, n := range outs {
		visit(n.e)
	}
	return list
}
