package field

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/particle-hero/render"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid field config")

// Matcher names accepted by Config.Matcher
const (
	MatcherAuto   = "auto"
	MatcherLinear = "linear"
	MatcherGrid   = "grid"
)

// autoGridThreshold is the coords x particles product above which auto uses the grid index
const autoGridThreshold = 250_000

// Config holds the tunables of a particle field
// Physics constants are tuned against ~60 ticks per second
type Config struct {
	Spacing      float64     `mapstructure:"spacing" toml:"spacing"`             // lattice pitch in logical px
	IdleRadius   float64     `mapstructure:"idle_radius" toml:"idle_radius"`     // dot radius on the lattice
	ActiveRadius float64     `mapstructure:"active_radius" toml:"active_radius"` // dot radius inside the shape
	IdleColor    render.RGBA `mapstructure:"idle_color" toml:"idle_color"`
	ActiveColor  render.RGBA `mapstructure:"active_color" toml:"active_color"`

	Tension  float64 `mapstructure:"tension" toml:"tension"`   // spring stiffness, (0,1)
	Friction float64 `mapstructure:"friction" toml:"friction"` // velocity retained per tick, (0,1)

	RepelRadius float64 `mapstructure:"repel_radius" toml:"repel_radius"` // pointer influence in logical px
	RepelForce  float64 `mapstructure:"repel_force" toml:"repel_force"`   // max displacement per tick

	ColorLerp float64 `mapstructure:"color_lerp" toml:"color_lerp"`
	AlphaLerp float64 `mapstructure:"alpha_lerp" toml:"alpha_lerp"`
	SizeLerp  float64 `mapstructure:"size_lerp" toml:"size_lerp"`

	Matcher string `mapstructure:"matcher" toml:"matcher"` // auto, linear or grid
}

// DefaultConfig returns the warm white hero tuning
func DefaultConfig() Config {
	return Config{
		Spacing:      40,
		IdleRadius:   1.5,
		ActiveRadius: 4.0,
		IdleColor:    render.RGBA{R: 255, G: 245, B: 230, A: 0.6},
		ActiveColor:  render.RGBA{R: 255, G: 248, B: 235, A: 1.0},
		Tension:      0.08,
		Friction:     0.75,
		RepelRadius:  80,
		RepelForce:   12,
		ColorLerp:    0.06,
		AlphaLerp:    0.06,
		SizeLerp:     0.08,
		Matcher:      MatcherAuto,
	}
}

// Validate reports the first out-of-range parameter
func (c Config) Validate() error {
	switch {
	case c.Spacing <= 0:
		return fmt.Errorf("%w: spacing must be positive, got %g", ErrInvalidConfig, c.Spacing)
	case c.Tension <= 0 || c.Tension >= 1:
		return fmt.Errorf("%w: tension must be in (0,1), got %g", ErrInvalidConfig, c.Tension)
	case c.Friction <= 0 || c.Friction >= 1:
		return fmt.Errorf("%w: friction must be in (0,1), got %g", ErrInvalidConfig, c.Friction)
	case c.IdleRadius < 0 || c.ActiveRadius < 0:
		return fmt.Errorf("%w: radii must not be negative", ErrInvalidConfig)
	case c.RepelRadius < 0 || c.RepelForce < 0:
		return fmt.Errorf("%w: repel radius and force must not be negative", ErrInvalidConfig)
	}

	rates := []struct {
		name string
		v    float64
	}{
		{"color_lerp", c.ColorLerp},
		{"alpha_lerp", c.AlphaLerp},
		{"size_lerp", c.SizeLerp},
	}
	for _, r := range rates {
		if r.v <= 0 || r.v > 1 {
			return fmt.Errorf("%w: %s must be in (0,1], got %g", ErrInvalidConfig, r.name, r.v)
		}
	}

	switch c.Matcher {
	case MatcherAuto, MatcherLinear, MatcherGrid, "":
	default:
		return fmt.Errorf("%w: unknown matcher %q", ErrInvalidConfig, c.Matcher)
	}
	return nil
}
