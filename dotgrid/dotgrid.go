// Package dotgrid is a dense, non-morphing lattice of dots that shy away from the pointer.
package dotgrid

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/vmath"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid dotgrid config")

const (
	pushApproach = 0.3
	returnLerp   = 0.12
)

// PointerSentinel parks the pointer outside any viewport
const PointerSentinel = -9999.0

// Config tunes the grid
type Config struct {
	Gap             float64     `mapstructure:"gap" toml:"gap"`
	DotRadius       float64     `mapstructure:"dot_radius" toml:"dot_radius"`
	Color           render.RGBA `mapstructure:"color" toml:"color"`
	InfluenceRadius float64     `mapstructure:"influence_radius" toml:"influence_radius"`
	PushStrength    float64     `mapstructure:"push_strength" toml:"push_strength"`
}

// DefaultConfig returns a faint white grid
func DefaultConfig() Config {
	return Config{
		Gap:             24,
		DotRadius:       1,
		Color:           render.RGBA{R: 255, G: 255, B: 255, A: 0.15},
		InfluenceRadius: 120,
		PushStrength:    40,
	}
}

// Validate reports the first out-of-range parameter
func (c Config) Validate() error {
	switch {
	case c.Gap <= 0:
		return fmt.Errorf("%w: gap must be positive, got %g", ErrInvalidConfig, c.Gap)
	case c.DotRadius < 0:
		return fmt.Errorf("%w: dot_radius must not be negative", ErrInvalidConfig)
	case c.InfluenceRadius < 0 || c.PushStrength < 0:
		return fmt.Errorf("%w: influence radius and push strength must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Dot is one grid point; Origin never moves
type Dot struct {
	Origin vmath.Vec2
	Pos    vmath.Vec2
}

// Grid is the dot collection, not safe for concurrent use
type Grid struct {
	cfg     Config
	log     *zap.Logger
	dots    []Dot
	cols    int
	rows    int
	pointer vmath.Vec2
}

// Option configures a Grid
type Option func(*Grid)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(g *Grid) { g.log = l }
}

// New creates an empty grid; call Build with the viewport size
func New(cfg Config, opts ...Option) *Grid {
	g := &Grid{
		cfg:     cfg,
		log:     zap.NewNop(),
		pointer: vmath.Vec2{X: PointerSentinel, Y: PointerSentinel},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build lays out ceil(W/gap)+1 by ceil(H/gap)+1 dots centred on the viewport
// so the grid overhangs every edge
func (g *Grid) Build(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	gap := g.cfg.Gap
	var cols, rows int
	if gap > 0 && width > 0 && height > 0 {
		cols = int(math.Ceil(float64(width)/gap)) + 1
		rows = int(math.Ceil(float64(height)/gap)) + 1
	}
	offsetX := (float64(width) - float64(cols-1)*gap) / 2
	offsetY := (float64(height) - float64(rows-1)*gap) / 2

	dots := make([]Dot, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			o := vmath.Vec2{X: offsetX + float64(c)*gap, Y: offsetY + float64(r)*gap}
			dots = append(dots, Dot{Origin: o, Pos: o})
		}
	}
	g.dots = dots
	g.cols, g.rows = cols, rows

	g.log.Debug("dot grid built", zap.Int("cols", cols), zap.Int("rows", rows))
}

// SetPointer records the pointer in logical units
func (g *Grid) SetPointer(x, y float64) {
	g.pointer = vmath.Vec2{X: x, Y: y}
}

// ClearPointer parks the pointer at the sentinel
func (g *Grid) ClearPointer() {
	g.pointer = vmath.Vec2{X: PointerSentinel, Y: PointerSentinel}
}

// Step moves every dot one frame toward its pushed or resting position
func (g *Grid) Step() {
	for i := range g.dots {
		g.step(&g.dots[i])
	}
}

func (g *Grid) step(d *Dot) {
	away := d.Origin.Sub(g.pointer)
	dist2 := away.MagnitudeSq()
	ir := g.cfg.InfluenceRadius

	if dist2 > 0 && dist2 < ir*ir {
		dist := math.Sqrt(dist2)
		factor := 1 - dist/ir
		push := factor * factor * g.cfg.PushStrength
		target := d.Origin.Add(away.Scale(push / dist))
		d.Pos.X = vmath.Approach(d.Pos.X, target.X, pushApproach)
		d.Pos.Y = vmath.Approach(d.Pos.Y, target.Y, pushApproach)
		return
	}
	d.Pos.X = vmath.Approach(d.Pos.X, d.Origin.X, returnLerp)
	d.Pos.Y = vmath.Approach(d.Pos.Y, d.Origin.Y, returnLerp)
}

// Tick clears the canvas, steps and paints every dot; nil canvas only steps
func (g *Grid) Tick(c render.Canvas) {
	if c == nil {
		g.Step()
		return
	}
	c.Clear()
	for i := range g.dots {
		d := &g.dots[i]
		g.step(d)
		c.FillCircle(d.Pos.X, d.Pos.Y, g.cfg.DotRadius, g.cfg.Color)
	}
}

// Len returns the dot count
func (g *Grid) Len() int {
	return len(g.dots)
}

// Dims returns column and row counts
func (g *Grid) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// Dots returns a snapshot copy
func (g *Grid) Dots() []Dot {
	out := make([]Dot, len(g.dots))
	copy(out, g.dots)
	return out
}
