package shader

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/vfx/node"
)

// Entry point names of every generated module.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

var (
	// ErrNoColor is returned when a Graph has no color output.
	ErrNoColor = errors.New("shader: graph has no color output")

	// ErrOutputType is returned when an output has a type the stage cannot
	// write.
	ErrOutputType = errors.New("shader: output has the wrong type")

	// ErrNonFinite is returned for NaN or infinite constants, which WGSL
	// cannot spell.
	ErrNonFinite = errors.New("shader: constant is not finite")

	// ErrAttribute is returned when one attribute name is read with two
	// different types.
	ErrAttribute = errors.New("shader: attribute read with conflicting types")
)

// Graph is the pair of outputs that make up one material.
type Graph struct {
	// Color is the premultiplied fragment color. Floats narrower than vec4
	// are widened like node.Node.ToVec4.
	Color node.Node

	// Position replaces the vertex position when set. It must be vec3.
	Position node.Node
}

// Attribute is a per-vertex input read by a graph.
type Attribute struct {
	Name     string
	Type     node.Type
	Location uint32
	ident    string
}

// Module is the generated shader for one Graph.
type Module struct {
	// Source is the complete WGSL module.
	Source string

	// Fields lists the user uniforms in buffer order after the header.
	Fields []Field

	// Size is the uniform buffer size in bytes, a multiple of 16.
	Size int

	// Attributes lists the vertex attributes from location 3 on.
	Attributes []Attribute

	// HasUV reports whether the mesh must supply uv at location 2.
	HasUV bool
}

type helper uint8

const (
	helperHash helper = 1 << iota
	helperNoise
)

// Generate lowers g to WGSL.
func Generate(g Graph) (*Module, error) {
	color, err := colorOutput(g.Color)
	if err != nil {
		return nil, err
	}
	if !g.Position.IsNil() && g.Position.Type() != node.TypeVec3 {
		return nil, fmt.Errorf("%w: position is %s, want vec3", ErrOutputType, g.Position.Type())
	}

	m := &Module{}
	m.Fields, m.Size = layout(node.Uniforms(color, g.Position))

	all := node.Order(color, g.Position)
	attrs, err := collectAttributes(all)
	if err != nil {
		return nil, err
	}
	var helpers helper
	for _, n := range all {
		switch n.Op() {
		case node.OpHash:
			helpers |= helperHash
		case node.OpNoise3:
			helpers |= helperNoise
		case node.OpInput:
			if n.Input() == node.InputUV {
				m.HasUV = true
			}
		}
	}
	m.Attributes = attrs
	fragAttrs := fragmentAttributes(node.Order(color), attrs)

	fields := make(map[*node.Uniform]Field, len(m.Fields))
	for _, f := range m.Fields {
		fields[f.Uniform] = f
	}

	var b strings.Builder
	b.WriteString("// Generated by github.com/gogpu/vfx/shader. Do not edit.\n\n")
	writeUniformStruct(&b, m.Fields)
	writeVertexStructs(&b, m, fragAttrs)
	writeHelpers(&b, helpers)

	vs := newStage(stageVertex, fields, attrs)
	vsBody, err := vs.emit(g.Position)
	if err != nil {
		return nil, err
	}
	fs := newStage(stageFragment, fields, attrs)
	fsBody, err := fs.emit(color)
	if err != nil {
		return nil, err
	}

	b.WriteString("@vertex\n")
	fmt.Fprintf(&b, "fn %s(vin: VertexIn) -> VertexOut {\n", VertexEntry)
	b.WriteString(vsBody)
	b.WriteString("\tvar vout: VertexOut;\n")
	if g.Position.IsNil() {
		b.WriteString("\tvout.clip = fx.view_proj * vec4<f32>(vin.position, 1.0);\n")
	} else {
		fmt.Fprintf(&b, "\tvout.clip = fx.view_proj * vec4<f32>(%s, 1.0);\n", vs.names[g.Position])
	}
	if m.HasUV {
		b.WriteString("\tvout.uv = vin.uv;\n")
	} else {
		b.WriteString("\tvout.uv = vec2<f32>(0.0, 0.0);\n")
	}
	b.WriteString("\tvout.local = vin.position;\n")
	b.WriteString("\tvout.normal = vin.normal;\n")
	b.WriteString("\tvout.instance_id = vin.instance_index;\n")
	b.WriteString("\tvout.vertex_id = vin.vertex_index;\n")
	for _, a := range fragAttrs {
		fmt.Fprintf(&b, "\tvout.%s = vin.%s;\n", a.ident, a.ident)
	}
	b.WriteString("\treturn vout;\n}\n\n")

	b.WriteString("@fragment\n")
	fmt.Fprintf(&b, "fn %s(vin: VertexOut) -> @location(0) vec4<f32> {\n", FragmentEntry)
	b.WriteString(fsBody)
	fmt.Fprintf(&b, "\treturn %s;\n}\n", fs.names[color])

	m.Source = b.String()
	return m, nil
}

func colorOutput(c node.Node) (node.Node, error) {
	if c.IsNil() {
		return c, ErrNoColor
	}
	switch c.Type() {
	case node.TypeFloat, node.TypeVec2, node.TypeVec3:
		return c.ToVec4(), nil
	case node.TypeVec4:
		return c, nil
	}
	return c, fmt.Errorf("%w: color is %s", ErrOutputType, c.Type())
}

func collectAttributes(order []node.Node) ([]Attribute, error) {
	types := make(map[string]node.Type)
	for _, n := range order {
		if n.Op() != node.OpAttribute {
			continue
		}
		name := n.AttributeName()
		if t, ok := types[name]; ok && t != n.Type() {
			return nil, fmt.Errorf("%w: %q is %s and %s", ErrAttribute, name, t, n.Type())
		}
		types[name] = n.Type()
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Attribute, len(names))
	for i, name := range names {
		out[i] = Attribute{
			Name:     name,
			Type:     types[name],
			Location: uint32(3 + i),
			ident:    fmt.Sprintf("a%d_%s", i, identifier(name)),
		}
	}
	return out, nil
}

func fragmentAttributes(order []node.Node, attrs []Attribute) []Attribute {
	used := make(map[string]bool)
	for _, n := range order {
		if n.Op() == node.OpAttribute {
			used[n.AttributeName()] = true
		}
	}
	var out []Attribute
	for _, a := range attrs {
		if used[a.Name] {
			out = append(out, a)
		}
	}
	return out
}

// identifier maps s onto [A-Za-z0-9_].
func identifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func writeUniformStruct(b *strings.Builder, fields []Field) {
	b.WriteString("struct Fx {\n")
	b.WriteString("\tview_proj: mat4x4<f32>,\n")
	b.WriteString("\tcamera: vec3<f32>,\n")
	b.WriteString("\ttime: f32,\n")
	for _, f := range fields {
		fmt.Fprintf(b, "\t%s: %s,\n", f.Name, storageType(f.Uniform.Type()))
	}
	b.WriteString("}\n\n")
	b.WriteString("@group(0) @binding(0) var<uniform> fx: Fx;\n\n")
}

func writeVertexStructs(b *strings.Builder, m *Module, fragAttrs []Attribute) {
	b.WriteString("struct VertexIn {\n")
	b.WriteString("\t@location(0) position: vec3<f32>,\n")
	b.WriteString("\t@location(1) normal: vec3<f32>,\n")
	if m.HasUV {
		b.WriteString("\t@location(2) uv: vec2<f32>,\n")
	}
	for _, a := range m.Attributes {
		fmt.Fprintf(b, "\t@location(%d) %s: %s,\n", a.Location, a.ident, wgslType(a.Type))
	}
	b.WriteString("\t@builtin(vertex_index) vertex_index: u32,\n")
	b.WriteString("\t@builtin(instance_index) instance_index: u32,\n")
	b.WriteString("}\n\n")

	b.WriteString("struct VertexOut {\n")
	b.WriteString("\t@builtin(position) clip: vec4<f32>,\n")
	b.WriteString("\t@location(0) uv: vec2<f32>,\n")
	b.WriteString("\t@location(1) local: vec3<f32>,\n")
	b.WriteString("\t@location(2) normal: vec3<f32>,\n")
	b.WriteString("\t@location(3) @interpolate(flat) instance_id: u32,\n")
	b.WriteString("\t@location(4) @interpolate(flat) vertex_id: u32,\n")
	for i, a := range fragAttrs {
		fmt.Fprintf(b, "\t@location(%d) %s: %s,\n", 5+i, a.ident, wgslType(a.Type))
	}
	b.WriteString("}\n\n")
}

func wgslType(t node.Type) string {
	switch t {
	case node.TypeBool:
		return "bool"
	case node.TypeFloat:
		return "f32"
	default:
		return fmt.Sprintf("vec%d<f32>", t.Width())
	}
}

// storageType is the uniform buffer type; bools travel as f32.
func storageType(t node.Type) string {
	if t == node.TypeBool {
		return "f32"
	}
	return wgslType(t)
}

// literal spells f as a WGSL float literal. The result always has a '.' or
// an exponent so it never reads as an integer.
func literal(f float64) (string, error) {
	f32 := float32(f)
	if math.IsNaN(float64(f32)) || math.IsInf(float64(f32), 0) {
		return "", fmt.Errorf("%w: %g", ErrNonFinite, f)
	}
	s := strconv.FormatFloat(float64(f32), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}
