package hero

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/particle-hero/render"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid render config")

// Config controls how the effect reaches the terminal
type Config struct {
	Metrics     render.Metrics `mapstructure:"metrics" toml:"metrics"`
	FPS         int            `mapstructure:"fps" toml:"fps"`
	Background  render.RGB     `mapstructure:"background" toml:"background"`
	MinCoverage float64        `mapstructure:"min_coverage" toml:"min_coverage"` // floor for sub-subpixel dots
	Overlay     bool           `mapstructure:"overlay" toml:"overlay"`
	Stats       bool           `mapstructure:"stats" toml:"stats"` // stats line on the bottom row
}

// DefaultConfig returns 60 fps over a near-black page
func DefaultConfig() Config {
	return Config{
		Metrics:     render.DefaultMetrics,
		FPS:         60,
		Background:  render.RGB{R: 5, G: 5, B: 5},
		MinCoverage: 0.35,
		Overlay:     true,
	}
}

// Validate reports the first out-of-range parameter
func (c Config) Validate() error {
	switch {
	case c.Metrics.CellWidth <= 0 || c.Metrics.CellHeight <= 0:
		return fmt.Errorf("%w: cell metrics must be positive", ErrInvalidConfig)
	case c.FPS <= 0 || c.FPS > 240:
		return fmt.Errorf("%w: fps must be in [1,240], got %d", ErrInvalidConfig, c.FPS)
	case c.MinCoverage < 0 || c.MinCoverage > 1:
		return fmt.Errorf("%w: min_coverage must be in [0,1], got %g", ErrInvalidConfig, c.MinCoverage)
	}
	return nil
}
