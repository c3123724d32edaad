package hero

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/particle-hero/dotgrid"
	"github.com/lixenwraith/particle-hero/field"
	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/shape"
)

// Effect names accepted by NewEffect
const (
	EffectField   = "field"
	EffectDotGrid = "dotgrid"
)

// Effect is the animated background the view drives once per frame
type Effect interface {
	// Build sizes the effect for a logical viewport, keeping any active morph
	Build(width, height int)
	Tick(c render.Canvas)
	SetPointer(x, y float64)
	ClearPointer()
	// Activate and Deactivate report whether the effect changed state
	Activate() bool
	Deactivate() bool
}

// FieldEffect drives a morphing particle field
type FieldEffect struct {
	*field.Field
}

// Build rebuilds the lattice, reapplying the morph if it was showing
func (e FieldEffect) Build(width, height int) { e.Resize(width, height) }

// Activate morphs the field into the shape
func (e FieldEffect) Activate() bool { return e.MorphIn() }

// Deactivate returns the field to its lattice
func (e FieldEffect) Deactivate() bool { return e.MorphOut() }

// GridEffect drives the ambient dot grid, which has no morph state
type GridEffect struct {
	*dotgrid.Grid
}

func (GridEffect) Activate() bool   { return false }
func (GridEffect) Deactivate() bool { return false }

// EffectConfig gathers the tunables of every effect
type EffectConfig struct {
	Name    string
	Field   field.Config
	Shape   shape.Config
	DotGrid dotgrid.Config
}

// NewEffect constructs the named effect
func NewEffect(cfg EffectConfig, log *zap.Logger) (Effect, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Name {
	case EffectField, "":
		sampler := shape.NewGlyphSampler(cfg.Shape, shape.WithLogger(log.Named("shape")))
		return FieldEffect{field.New(cfg.Field, sampler, field.WithLogger(log.Named("field")))}, nil
	case EffectDotGrid:
		return GridEffect{dotgrid.New(cfg.DotGrid, dotgrid.WithLogger(log.Named("dotgrid")))}, nil
	default:
		return nil, fmt.Errorf("unknown effect %q", cfg.Name)
	}
}
