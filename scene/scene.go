// Package scene keeps the effect instances of one view and steps them per
// frame.
//
// A Scene is an ordered list of entries. Each entry holds an effect, the
// operator it is blended onto the entries before it with, and an optional
// Driver that animates its time uniform. Color folds the entries bottom to
// top; Update advances every driver by the frame delta.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/vfx"
	"github.com/gogpu/vfx/blend"
	"github.com/gogpu/vfx/effect"
	"github.com/gogpu/vfx/node"
	"github.com/gogpu/vfx/shader"
)

var (
	// ErrNotFound is returned for an ID or name the scene does not hold.
	ErrNotFound = errors.New("scene: no such entry")

	// ErrEmpty is returned when a scene with no entries is composed.
	ErrEmpty = errors.New("scene: no entries")
)

// Entry is one effect instance in a scene.
type Entry struct {
	ID     uuid.UUID
	Name   string
	Effect effect.Effect
	// Blend combines this entry onto the entries below it. The first
	// entry ignores it.
	Blend   blend.Operator
	Options blend.Options
	Driver  *effect.Driver
	Hidden  bool
}

// AddOption configures an entry.
type AddOption func(*Entry)

// WithBlend composites the entry with op instead of source-over.
func WithBlend(op blend.Operator, opts blend.Options) AddOption {
	return func(e *Entry) {
		e.Blend = op
		e.Options = opts
	}
}

// WithDriver steps d on every Update.
func WithDriver(d *effect.Driver) AddOption {
	return func(e *Entry) {
		e.Driver = d
	}
}

// Scene is safe for concurrent use. Entries returned from it share state
// with the scene and must not be modified concurrently with Update.
type Scene struct {
	// drive serialises Update so drivers run outside mu.
	drive   sync.Mutex
	mu      sync.RWMutex
	entries []*Entry
	byID    map[uuid.UUID]*Entry
	clock   float64
	frames  uint64
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{byID: make(map[uuid.UUID]*Entry)}
}

// Add appends fx on top of the scene and returns its ID.
func (s *Scene) Add(name string, fx effect.Effect, opts ...AddOption) uuid.UUID {
	e := &Entry{ID: uuid.New(), Name: name, Effect: fx, Blend: blend.OpOver}
	for _, opt := range opts {
		opt(e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.byID[e.ID] = e
	vfx.Logger().Debug("scene: add", "name", name, "id", e.ID.String(), "blend", e.Blend.String())
	return e.ID
}

// Remove deletes the entry with id.
func (s *Scene) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the entry with id.
func (s *Scene) Get(id uuid.UUID) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	return e, ok
}

// Find returns the lowest entry called name.
func (s *Scene) Find(name string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// SetHidden shows or hides the entry with id.
func (s *Scene) SetHidden(id uuid.UUID, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.Hidden = hidden
	return nil
}

// Entries returns the entries bottom to top.
func (s *Scene) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Update advances the scene clock and every driver by dt seconds and
// returns how many drivers looped. Drivers run without the scene lock, so
// their loop callbacks may call any Scene method except Update.
func (s *Scene) Update(dt float64) int {
	s.drive.Lock()
	defer s.drive.Unlock()

	s.mu.Lock()
	s.clock += dt
	s.frames++
	drivers := make([]*effect.Driver, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Driver != nil {
			drivers = append(drivers, e.Driver)
		}
	}
	s.mu.Unlock()

	looped := 0
	for _, d := range drivers {
		if d.Update(dt) {
			looped++
		}
	}
	return looped
}

// Time returns the accumulated Update time in seconds.
func (s *Scene) Time() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

// Frames returns the number of Update calls.
func (s *Scene) Frames() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}

// Color folds the visible entries bottom to top, each with its own blend
// operator. It returns ErrEmpty when nothing is visible.
func (s *Scene) Color() (node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var acc node.Node
	for _, e := range s.entries {
		if e.Hidden {
			continue
		}
		layer := e.Effect.ColorNode()
		if layer.IsNil() {
			continue
		}
		if acc.IsNil() {
			acc = layer
			continue
		}
		acc = blend.By(e.Blend, e.Options)(acc, layer)
	}
	if acc.IsNil() {
		return acc, ErrEmpty
	}
	return acc, nil
}

// Uniforms returns the distinct uniform handles of every entry.
func (s *Scene) Uniforms() []*node.Uniform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*node.Uniform
	seen := make(map[*node.Uniform]bool)
	for _, e := range s.entries {
		for _, u := range e.Effect.UniformList() {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out
}

// Render draws the composed scene on the CPU at the scene clock. Later
// options override the time.
func (s *Scene) Render(dst *vfx.Pixmap, opts ...vfx.RenderOption) error {
	color, err := s.Color()
	if err != nil {
		return err
	}
	opts = append([]vfx.RenderOption{vfx.WithTime(s.Time())}, opts...)
	return vfx.Render(dst, color, opts...)
}

// Shaders generates one module per entry, keyed by entry ID. Entries that
// implement effect.Geometric get their position graph in the vertex stage.
func (s *Scene) Shaders() (map[uuid.UUID]*shader.Module, error) {
	entries := s.Entries()
	out := make(map[uuid.UUID]*shader.Module, len(entries))
	for _, e := range entries {
		g := shader.Graph{Color: e.Effect.ColorNode()}
		if geo, ok := e.Effect.(effect.Geometric); ok {
			g.Position = geo.PositionNode()
		}
		m, err := shader.Generate(g)
		if err != nil {
			return nil, fmt.Errorf("scene: %s: %w", e.Name, err)
		}
		out[e.ID] = m
	}
	return out, nil
}
