package effect

import (
	"github.com/tanema/gween"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/ease"
	"github.com/gogpu/vfx/node"
)

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithReseed adds 1 to seed every time the driver loops, so looping
// effects such as Impact replay with fresh petals.
func WithReseed(seed *node.Uniform) DriverOption {
	return func(d *Driver) {
		d.reseed = seed
	}
}

// WithOnLoop calls fn after each loop with the number of loops so far.
func WithOnLoop(fn func(loops int)) DriverOption {
	return func(d *Driver) {
		d.onLoop = fn
	}
}

// WithEasing shapes the driven value with an easing curve. The default is
// linear.
func WithEasing(m ease.Mode) DriverOption {
	return func(d *Driver) {
		d.easing = m
	}
}

// Driver advances a normalized time value from 0 to 1 over a duration in
// seconds and loops. The caller drives it with Update once per frame; it is
// not safe for concurrent use.
type Driver struct {
	tween    *gween.Tween
	duration float64
	easing   ease.Mode
	elapsed  float64
	set      func(float64)
	reseed   *node.Uniform
	onLoop   func(int)
	loops    int
}

// NewDriver returns a driver that writes its value through set, usually a
// time uniform's SetFloat. set is called with 0 immediately.
func NewDriver(duration float64, set func(float64), opts ...DriverOption) *Driver {
	d := &Driver{duration: duration, set: set}
	for _, opt := range opts {
		opt(d)
	}
	d.tween = d.newTween()
	d.set(0)
	return d
}

func (d *Driver) newTween() *gween.Tween {
	return gween.New(0, 1, float32(d.duration), d.easing.Tween())
}

// Update advances the driver by dt seconds and reports whether it looped.
// Time past the end of a loop is dropped: the next loop starts at 0.
func (d *Driver) Update(dt float64) bool {
	d.elapsed += dt
	v, finished := d.tween.Update(float32(dt))
	if !finished {
		d.set(float64(v))
		return false
	}

	d.tween.Reset()
	d.elapsed = 0
	d.set(0)
	d.loops++
	if d.reseed != nil {
		d.reseed.SetFloat(d.reseed.Float() + 1)
	}
	if d.onLoop != nil {
		d.onLoop(d.loops)
	}
	vfx.Logger().Debug("effect: driver looped", "loops", d.loops)
	return true
}

// Seek jumps to progress p in [0, 1] without looping.
func (d *Driver) Seek(p float64) {
	d.elapsed = min(max(p, 0), 1) * d.duration
	v, _ := d.tween.Set(float32(d.elapsed))
	d.set(float64(v))
}

// SetDuration changes the loop length, keeping the current progress.
func (d *Driver) SetDuration(duration float64) {
	p := d.Progress()
	d.duration = duration
	d.tween = d.newTween()
	d.Seek(p)
}

// Progress returns the linear progress through the current loop.
func (d *Driver) Progress() float64 {
	if d.duration <= 0 {
		return 0
	}
	return min(d.elapsed/d.duration, 1)
}

// Loops returns how many times the driver has looped.
func (d *Driver) Loops() int {
	return d.loops
}
