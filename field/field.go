// Package field implements the morphing particle lattice.
//
// A Field owns a row-major lattice of particles sized to the viewport. Each
// particle is pulled toward a target by a damped spring and pushed away from
// the pointer. MorphIn retargets a subset of particles onto coordinates from a
// shape.Sampler; MorphOut sends every particle home. The host calls Tick once
// per display frame; the field performs no scheduling of its own.
//
// A Field is not safe for concurrent use. All calls are expected from the
// single goroutine that drives the frame loop.
package field

import (
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/shape"
	"github.com/lixenwraith/particle-hero/vmath"
)

// State is the morph state of a field
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateMorphed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIdle:
		return "idle"
	case StateMorphed:
		return "morphed"
	default:
		return "unknown"
	}
}

// Field is the particle collection and its morph state
type Field struct {
	cfg     Config
	sampler shape.Sampler
	log     *zap.Logger

	particles []Particle
	coords    []shape.Point
	lat       lattice

	width, height int
	state         State
	pointer       vmath.Vec2
}

// Option configures a Field
type Option func(*Field)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(f *Field) { f.log = l }
}

// New creates an uninitialized field; call Build with the viewport size
// A nil sampler disables morphing
func New(cfg Config, sampler shape.Sampler, opts ...Option) *Field {
	if sampler == nil {
		sampler = shape.SamplerFunc(func(int, int) []shape.Point { return nil })
	}
	f := &Field{
		cfg:     cfg,
		sampler: sampler,
		log:     zap.NewNop(),
		pointer: vmath.Vec2{X: PointerSentinel, Y: PointerSentinel},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build discards the lattice and constructs a fresh one for the viewport,
// then samples and caches morph coordinates for the same size
// Leaves the field Idle
func (f *Field) Build(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	s := f.cfg.Spacing
	var cols, rows int
	if s > 0 {
		cols = int(math.Floor(float64(width) / s))
		rows = int(math.Floor(float64(height) / s))
	}
	offsetX := (float64(width) - float64(cols-1)*s) / 2
	offsetY := (float64(height) - float64(rows-1)*s) / 2

	particles := make([]Particle, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			particles = append(particles, newParticle(offsetX+float64(col)*s, offsetY+float64(row)*s, &f.cfg))
		}
	}

	f.particles = particles
	f.lat = lattice{cols: cols, rows: rows, offsetX: offsetX, offsetY: offsetY, spacing: s}
	f.width, f.height = width, height
	f.coords = f.sampler.Sample(width, height)
	f.state = StateIdle

	f.log.Debug("field built",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("coords", len(f.coords)))
}

// Resize rebuilds for a new viewport and reapplies the morph if one was showing
func (f *Field) Resize(width, height int) {
	wasMorphed := f.state == StateMorphed
	f.Build(width, height)
	if wasMorphed {
		f.MorphIn()
	}
}

// MorphIn retargets particles onto the cached shape coordinates
// Returns false without changes when already morphed, not built, or no shape is available
func (f *Field) MorphIn() bool {
	if f.state != StateIdle {
		return false
	}
	if len(f.coords) == 0 {
		f.log.Debug("morph skipped, no shape available")
		return false
	}

	n := min(len(f.coords), len(f.particles))

	for i := range f.particles {
		f.particles[i].release(&f.cfg)
	}

	match := selectMatcher(f.cfg.Matcher, n, len(f.particles))
	assigned := match(f.particles, f.lat, f.coords, n)
	for i, pi := range assigned {
		if pi < 0 {
			continue
		}
		f.particles[pi].claim(f.coords[i], &f.cfg)
	}

	f.state = StateMorphed
	f.log.Debug("morph in", zap.Int("active", n), zap.Int("particles", len(f.particles)))
	return true
}

// MorphOut sends every particle back to its lattice anchor
// Returns false when the field is not morphed
func (f *Field) MorphOut() bool {
	if f.state != StateMorphed {
		return false
	}
	for i := range f.particles {
		f.particles[i].release(&f.cfg)
	}
	f.state = StateIdle
	f.log.Debug("morph out")
	return true
}

// SetPointer records the pointer position in logical units
func (f *Field) SetPointer(x, y float64) {
	f.pointer = vmath.Vec2{X: x, Y: y}
}

// ClearPointer parks the pointer at the sentinel so nothing is repelled
func (f *Field) ClearPointer() {
	f.pointer = vmath.Vec2{X: PointerSentinel, Y: PointerSentinel}
}

// Pointer returns the tracked pointer, the sentinel when absent
func (f *Field) Pointer() vmath.Vec2 {
	return f.pointer
}

// Step advances physics for every particle without painting
func (f *Field) Step() {
	for i := range f.particles {
		f.particles[i].step(&f.cfg, f.pointer)
	}
}

// Tick advances and paints one frame: the canvas is cleared, then each
// particle is updated and drawn in collection order
// A nil canvas only advances physics
func (f *Field) Tick(c render.Canvas) {
	if c == nil {
		f.Step()
		return
	}

	c.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		p.step(&f.cfg, f.pointer)
		c.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}
}

// State returns the morph state
func (f *Field) State() State {
	return f.state
}

// Len returns the particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// Size returns the viewport the lattice was built for
func (f *Field) Size() (width, height int) {
	return f.width, f.height
}

// Lattice returns the column and row counts
func (f *Field) Lattice() (cols, rows int) {
	return f.lat.cols, f.lat.rows
}

// Particles returns a snapshot copy of the collection
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Coords returns a copy of the cached shape coordinates
func (f *Field) Coords() []shape.Point {
	out := make([]shape.Point, len(f.coords))
	copy(out, f.coords)
	return out
}

// ActiveCount returns how many particles hold a shape coordinate
func (f *Field) ActiveCount() int {
	n := 0
	for i := range f.particles {
		if f.particles[i].Active {
			n++
		}
	}
	return n
}
