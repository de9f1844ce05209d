package shader

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/internal/cache"
)

// Compiler translates generated WGSL with naga and caches the results by
// source. A Compiler is safe for concurrent use.
type Compiler struct {
	spirv *cache.Sharded[[]uint32]
	glsl  *cache.Sharded[string]
}

// NewCompiler returns a compiler keeping up to capacity results per cache
// shard. A capacity of 0 selects the default.
func NewCompiler(capacity int) *Compiler {
	return &Compiler{
		spirv: cache.NewSharded[[]uint32](capacity),
		glsl:  cache.NewSharded[string](capacity),
	}
}

// Validate parses, lowers and validates WGSL source.
func Validate(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("shader: lower: %w", err)
	}
	errs, err := naga.Validate(mod)
	if err != nil {
		return fmt.Errorf("shader: validate: %w", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("shader: validate: %w", &errs[0])
	}
	return nil
}

// SPIRV compiles m to SPIR-V words.
func (c *Compiler) SPIRV(m *Module) ([]uint32, error) {
	return c.spirv.GetOrCreate(cache.Key("spirv", m.Source), func() ([]uint32, error) {
		code, err := naga.Compile(m.Source)
		if err != nil {
			return nil, fmt.Errorf("shader: compile: %w", err)
		}
		words := make([]uint32, len(code)/4)
		for i := range words {
			words[i] = binary.LittleEndian.Uint32(code[i*4:])
		}
		vfx.Logger().Debug("shader: compiled SPIR-V", "words", len(words))
		return words, nil
	})
}

// GLSL translates one entry point of m to GLSL 3.30 core.
func (c *Compiler) GLSL(m *Module, entry string) (string, error) {
	return c.glsl.GetOrCreate(cache.Key("glsl:"+entry, m.Source), func() (string, error) {
		ast, err := naga.Parse(m.Source)
		if err != nil {
			return "", fmt.Errorf("shader: %w", err)
		}
		mod, err := naga.LowerWithSource(ast, m.Source)
		if err != nil {
			return "", fmt.Errorf("shader: lower: %w", err)
		}
		opts := glsl.DefaultOptions()
		opts.EntryPoint = entry
		src, _, err := glsl.Compile(mod, opts)
		if err != nil {
			return "", fmt.Errorf("shader: glsl %s: %w", entry, err)
		}
		return src, nil
	})
}

// Descriptor compiles m and returns a SPIR-V module descriptor.
func (c *Compiler) Descriptor(m *Module, label string) (*hal.ShaderModuleDescriptor, error) {
	words, err := c.SPIRV(m)
	if err != nil {
		return nil, err
	}
	return &hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	}, nil
}

// CacheStats reports compiled entries and lookups across both targets.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// Stats returns the combined cache counters.
func (c *Compiler) Stats() CacheStats {
	a, b := c.spirv.Stats(), c.glsl.Stats()
	return CacheStats{
		Entries: a.Len + b.Len,
		Hits:    a.Hits + b.Hits,
		Misses:  a.Misses + b.Misses,
	}
}
