package preset

import (
	"fmt"
	"sort"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/blend"
	"github.com/gogpu/vfx/effect"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/scene"
	"github.com/gogpu/vfx/shape"
)

// Built is an effect constructed from a Spec.
type Built struct {
	Effect effect.Effect
	// SetTime writes normalized [0, 1] time, or is nil for effects driven
	// by the builtin time input.
	SetTime func(float64)
	// Seed is reseeded on every loop, when the effect has one.
	Seed *node.Uniform
}

type builder func(decode func(any) error) (Built, error)

var builders = map[string]builder{
	"shape": func(decode func(any) error) (Built, error) {
		p := shape.DefaultParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		fx := shape.New(p)
		return Built{Effect: fx, SetTime: fx.Uniforms.Time.SetFloat}, nil
	},
	"impact": func(decode func(any) error) (Built, error) {
		p := effect.DefaultImpactParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		fx := effect.NewImpact(p)
		return Built{Effect: fx, SetTime: fx.Uniforms.Time.SetFloat, Seed: fx.Uniforms.Seed}, nil
	},
	"scatter": func(decode func(any) error) (Built, error) {
		p := effect.DefaultScatterParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		fx := effect.NewScatter(p)
		return Built{Effect: fx, SetTime: fx.Uniforms.Time.SetFloat, Seed: fx.Uniforms.Seed}, nil
	},
	"pulsing_ring": func(decode func(any) error) (Built, error) {
		p := effect.DefaultPulsingRingParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewPulsingRing(p)}, nil
	},
	"water": func(decode func(any) error) (Built, error) {
		p := effect.DefaultWaterParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		fx := effect.NewWater(p)
		return Built{Effect: fx, SetTime: fx.Uniforms.Time.SetFloat}, nil
	},
	"waterfall": func(decode func(any) error) (Built, error) {
		p := effect.DefaultWaterfallParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewWaterfall(p)}, nil
	},
	"foam": func(decode func(any) error) (Built, error) {
		p := effect.DefaultFoamParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewFoam(p)}, nil
	},
	"waves": func(decode func(any) error) (Built, error) {
		p := effect.DefaultWavesParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewWaves(p)}, nil
	},
	"gradient": func(decode func(any) error) (Built, error) {
		p := effect.DefaultGradientParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewGradient(p)}, nil
	},
	"dot_noise": func(decode func(any) error) (Built, error) {
		p := effect.DefaultDotNoiseParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		return Built{Effect: effect.NewDotNoise(p)}, nil
	},
	"template": func(decode func(any) error) (Built, error) {
		p := effect.DefaultTemplateParams()
		if err := decode(&p); err != nil {
			return Built{}, err
		}
		fx := effect.NewTemplate(p, nil)
		return Built{Effect: fx, SetTime: fx.Uniforms.Time.SetFloat}, nil
	},
	"triple_explosion": func(func(any) error) (Built, error) {
		tl := effect.NewTripleExplosion()
		seek := func(t float64) { tl.Seek(t * tl.Length()) }
		return Built{Effect: tl, SetTime: seek}, nil
	},
}

// Kinds returns the effect kinds a preset may name, sorted.
func Kinds() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build constructs the effect s describes.
func (s Spec) Build() (Built, error) {
	b, ok := builders[s.Kind]
	if !ok {
		return Built{}, fmt.Errorf("%w: %q", ErrUnknownEffect, s.Kind)
	}
	built, err := b(s.params.decode)
	if err != nil {
		return Built{}, fmt.Errorf("preset: %s params: %w", s.Name, err)
	}
	return built, nil
}

// Scene builds every effect of f bottom to top. Effects with a Duration
// and a time uniform get a looping Driver.
func (f *File) Scene() (*scene.Scene, error) {
	sc := scene.New()
	for _, s := range f.Effects {
		built, err := s.Build()
		if err != nil {
			return nil, err
		}
		op := blend.OpOver
		if s.Blend != "" {
			if op, err = blend.ParseOperator(s.Blend); err != nil {
				return nil, fmt.Errorf("preset: %s: %w", s.Name, err)
			}
		}
		opts := []scene.AddOption{scene.WithBlend(op, blend.Options{Alpha: s.BlendAlpha})}
		if s.Duration > 0 && built.SetTime != nil {
			dopts := []effect.DriverOption{effect.WithEasing(s.Easing)}
			if built.Seed != nil {
				dopts = append(dopts, effect.WithReseed(built.Seed))
			}
			opts = append(opts, scene.WithDriver(effect.NewDriver(s.Duration, built.SetTime, dopts...)))
		} else if built.SetTime != nil {
			built.SetTime(f.Time)
		}
		sc.Add(s.Name, built.Effect, opts...)
	}
	vfx.Logger().Info("preset: scene built", "effects", sc.Len())
	return sc, nil
}
