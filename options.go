package vfx

// RenderOption configures Render.
//
// Example:
//
//	pm := vfx.NewPixmap(256, 256)
//	err := vfx.Render(pm, fx.Color, vfx.WithTime(0.5), vfx.WithBackground(vfx.White))
type RenderOption func(*renderOptions)

type renderOptions struct {
	time       float64
	workers    int
	background RGBA
	camera     [3]float64
	instance   int
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		background: Transparent,
		camera:     [3]float64{0, 0, 1},
	}
}

// WithTime sets the value of the builtin Time input in seconds.
func WithTime(t float64) RenderOption {
	return func(o *renderOptions) {
		o.time = t
	}
}

// WithWorkers sets the number of goroutines used for rendering.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithBackground composites the output over a straight background color.
// The default is transparent.
func WithBackground(c RGBA) RenderOption {
	return func(o *renderOptions) {
		o.background = c
	}
}

// WithCamera sets the builtin CameraPosition input.
func WithCamera(x, y, z float64) RenderOption {
	return func(o *renderOptions) {
		o.camera = [3]float64{x, y, z}
	}
}

// WithInstance sets the builtin InstanceIndex input.
func WithInstance(i int) RenderOption {
	return func(o *renderOptions) {
		o.instance = i
	}
}
