// Command fxgallery renders the effect library on the CPU.
//
// Without -preset it writes a contact sheet with one captioned cell per
// effect kind. With -preset it renders the scene a TOML or YAML preset
// describes, and with -watch it re-renders whenever the preset changes.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/effect"
	"github.com/gogpu/vfx/grass"
	"github.com/gogpu/vfx/preset"
	"github.com/gogpu/vfx/shader"
)

type config struct {
	output      string
	cell        int
	cols        int
	supersample int
	time        float64
	workers     int
	preset      string
	watch       bool
	wgsl        string
	spirv       bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.output, "output", "gallery.png", "output file")
	flag.IntVar(&cfg.cell, "cell", 160, "contact sheet cell size")
	flag.IntVar(&cfg.cols, "cols", 4, "contact sheet columns")
	flag.IntVar(&cfg.supersample, "supersample", 2, "render each cell at this multiple and scale down")
	flag.Float64Var(&cfg.time, "time", 0.5, "normalized effect time for the contact sheet")
	flag.IntVar(&cfg.workers, "workers", 0, "render goroutines (0 = GOMAXPROCS)")
	flag.StringVar(&cfg.preset, "preset", "", "render a TOML or YAML preset instead of the contact sheet")
	flag.BoolVar(&cfg.watch, "watch", false, "re-render the preset when it changes")
	flag.StringVar(&cfg.wgsl, "wgsl", "", "also write generated WGSL into this directory")
	flag.BoolVar(&cfg.spirv, "spirv", false, "with -wgsl, also write SPIR-V next to each shader")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	if *verbose {
		vfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var err error
	switch {
	case cfg.preset == "":
		err = gallery(cfg)
	case cfg.watch:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err = renderPreset(cfg); err != nil {
			log.Print(err)
		}
		err = preset.Watch(ctx, cfg.preset, func(f *preset.File, err error) {
			if err == nil {
				err = renderFile(cfg, f)
			}
			if err != nil {
				log.Print(err)
			}
		})
		if ctx.Err() != nil {
			err = nil
		}
	default:
		err = renderPreset(cfg)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// gallery renders every preset kind into one sheet.
func gallery(cfg config) error {
	kinds := preset.Kinds()
	cols := max(cfg.cols, 1)
	rows := (len(kinds) + cols - 1) / cols
	labels, err := newLabeler(12)
	if err != nil {
		return err
	}
	label := labels.lineHeight() + 4
	ink := image.NewUniform(color.RGBA{R: 230, G: 230, B: 230, A: 255})

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cfg.cell, rows*(cfg.cell+label)))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)

	ss := max(cfg.supersample, 1)
	shaders := make(map[string]*shader.Module)
	for i, kind := range kinds {
		built, err := preset.Spec{Kind: kind, Name: kind}.Build()
		if err != nil {
			return err
		}
		if built.SetTime != nil {
			built.SetTime(cfg.time)
		}
		pm := vfx.NewPixmap(cfg.cell*ss, cfg.cell*ss)
		if err := vfx.Render(pm, built.Effect.ColorNode(), vfx.WithTime(cfg.time), vfx.WithWorkers(cfg.workers), vfx.WithBackground(vfx.Black)); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}

		x, y := (i%cols)*cfg.cell, (i/cols)*(cfg.cell+label)
		dst := image.Rect(x, y, x+cfg.cell, y+cfg.cell)
		draw.CatmullRom.Scale(sheet, dst, pm.ToImage(), pm.Bounds(), draw.Src, nil)
		if _, err := labels.draw(sheet, ink, kind, x+4, y+cfg.cell+label-6); err != nil {
			return err
		}

		if cfg.wgsl != "" {
			m, err := generate(built.Effect)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			shaders[kind] = m
		}
	}

	if cfg.wgsl != "" {
		f, err := grass.NewField(grass.Terrain(10, 16, 0.5, 1), grass.DefaultParams(), grass.DefaultWindParams())
		if err != nil {
			return err
		}
		m, err := shader.Generate(shader.Graph{Color: f.ColorNode(), Position: f.PositionNode()})
		if err != nil {
			return fmt.Errorf("grass: %w", err)
		}
		shaders["grass"] = m
		if err := writeShaders(cfg, shaders); err != nil {
			return err
		}
	}

	if err := savePNG(cfg.output, sheet); err != nil {
		return err
	}
	log.Printf("gallery saved to %s (%d effects)", cfg.output, len(kinds))
	return nil
}

func generate(fx effect.Effect) (*shader.Module, error) {
	g := shader.Graph{Color: fx.ColorNode()}
	if geo, ok := fx.(effect.Geometric); ok {
		g.Position = geo.PositionNode()
	}
	return shader.Generate(g)
}

func renderPreset(cfg config) error {
	f, err := preset.Load(cfg.preset)
	if err != nil {
		return err
	}
	return renderFile(cfg, f)
}

func renderFile(cfg config, f *preset.File) error {
	sc, err := f.Scene()
	if err != nil {
		return err
	}
	sc.Update(f.Time)

	pm := vfx.NewPixmap(f.Width, f.Height)
	if err := sc.Render(pm, vfx.WithWorkers(cfg.workers), vfx.WithBackground(f.Background)); err != nil {
		return err
	}

	if cfg.wgsl != "" {
		modules, err := sc.Shaders()
		if err != nil {
			return err
		}
		named := make(map[string]*shader.Module, len(modules))
		for _, e := range sc.Entries() {
			named[e.Name] = modules[e.ID]
		}
		if err := writeShaders(cfg, named); err != nil {
			return err
		}
	}

	if err := pm.SavePNG(cfg.output); err != nil {
		return err
	}
	log.Printf("preset %s saved to %s (%dx%d)", cfg.preset, cfg.output, f.Width, f.Height)
	return nil
}

// writeShaders validates each module with naga and writes it as name.wgsl,
// plus name.spv when SPIR-V output is on.
func writeShaders(cfg config, modules map[string]*shader.Module) error {
	if err := os.MkdirAll(cfg.wgsl, 0o755); err != nil {
		return err
	}
	compiler := shader.NewCompiler(len(modules))
	for name, m := range modules {
		if err := shader.Validate(m.Source); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		base := filepath.Join(cfg.wgsl, name)
		if err := os.WriteFile(base+".wgsl", []byte(m.Source), 0o644); err != nil {
			return err
		}
		if !cfg.spirv {
			continue
		}
		words, err := compiler.SPIRV(m)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		data := make([]byte, 0, len(words)*4)
		for _, w := range words {
			data = binary.LittleEndian.AppendUint32(data, w)
		}
		if err := os.WriteFile(base+".spv", data, 0o644); err != nil {
			return err
		}
	}
	st := compiler.Stats()
	vfx.Logger().Info("fxgallery: shaders written", "dir", cfg.wgsl, "count", len(modules), "spirv_entries", st.Entries)
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
