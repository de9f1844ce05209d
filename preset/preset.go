// Package preset loads gallery scenes from TOML or YAML files.
//
// A preset names a canvas and a stack of effects. Each effect's params
// table is decoded over that effect's defaults, so a file only spells out
// what it changes:
//
//	width = 512
//	height = 512
//	time = 0.4
//
//	[[effect]]
//	kind = "water"
//	[effect.params]
//	octaves = 3
//
//	[[effect]]
//	kind = "impact"
//	blend = "over"
//	duration = 1.5
//	[effect.params]
//	vesica_count = 5
//	vesica_color = "#ffcc00"
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/ease"
)

var (
	// ErrFormat is returned for a file extension that is neither TOML nor
	// YAML.
	ErrFormat = errors.New("preset: unknown file format")

	// ErrUnknownEffect is returned for an effect kind with no builder.
	ErrUnknownEffect = errors.New("preset: unknown effect")
)

// Format is a preset file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// File is a decoded preset.
type File struct {
	Width      int      `toml:"width" yaml:"width"`
	Height     int      `toml:"height" yaml:"height"`
	Time       float64  `toml:"time" yaml:"time"`
	Background vfx.RGBA `toml:"background" yaml:"background"`
	Effects    []Spec   `toml:"-" yaml:"-"`
}

// Spec is one effect in a preset.
type Spec struct {
	Kind string `toml:"kind" yaml:"kind"`
	// Name defaults to Kind.
	Name string `toml:"name" yaml:"name"`
	// Blend is a blend operator name; empty means "over".
	Blend string `toml:"blend" yaml:"blend"`
	// BlendAlpha includes alpha in arithmetic blend operators.
	BlendAlpha bool `toml:"blend_alpha" yaml:"blend_alpha"`
	// Duration loops the effect's time over this many seconds when set.
	Duration float64 `toml:"duration" yaml:"duration"`
	// Easing shapes the looped time.
	Easing ease.Mode `toml:"easing" yaml:"easing"`

	params rawParams
}

// rawParams defers decoding of a params table until the kind is known.
type rawParams struct {
	toml map[string]any
	yaml *yaml.Node
}

func (r rawParams) decode(dst any) error {
	switch {
	case r.yaml != nil:
		return r.yaml.Decode(dst)
	case len(r.toml) > 0:
		data, err := toml.Marshal(r.toml)
		if err != nil {
			return err
		}
		return toml.Unmarshal(data, dst)
	}
	return nil
}

// DefaultFile returns an empty 512x512 canvas on black.
func DefaultFile() File {
	return File{Width: 512, Height: 512, Background: vfx.Black}
}

// tomlSpec and yamlSpec are Spec with the raw params table attached.
type tomlSpec struct {
	Spec
	Params map[string]any `toml:"params"`
}

type yamlSpec struct {
	Spec   `yaml:",inline"`
	Params yaml.Node `yaml:"params"`
}

// Decode parses data in format f over DefaultFile.
func Decode(data []byte, f Format) (*File, error) {
	out := DefaultFile()
	switch f {
	case FormatTOML:
		var doc struct {
			File
			Effects []tomlSpec `toml:"effect"`
		}
		doc.File = out
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("preset: toml: %w", err)
		}
		out = doc.File
		out.Effects = make([]Spec, len(doc.Effects))
		for i, s := range doc.Effects {
			out.Effects[i] = s.Spec
			out.Effects[i].params.toml = s.Params
		}
	case FormatYAML:
		var doc struct {
			File    `yaml:",inline"`
			Effects []yamlSpec `yaml:"effects"`
		}
		doc.File = out
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("preset: yaml: %w", err)
		}
		out = doc.File
		out.Effects = make([]Spec, len(doc.Effects))
		for i, s := range doc.Effects {
			out.Effects[i] = s.Spec
			if s.Params.Kind != 0 {
				n := s.Params
				out.Effects[i].params.yaml = &n
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrFormat, int(f))
	}
	for i := range out.Effects {
		if out.Effects[i].Name == "" {
			out.Effects[i].Name = out.Effects[i].Kind
		}
	}
	return &out, nil
}

// Load reads and decodes the preset at path.
func Load(path string) (*File, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	file, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	vfx.Logger().Debug("preset: loaded", "path", path, "format", f.String(), "effects", len(file.Effects))
	return file, nil
}
