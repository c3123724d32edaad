// Package config assembles every tunable into one document loaded with viper.
//
// Precedence, lowest first: struct defaults, the TOML file, PARTICLE_HERO_*
// environment variables, then explicitly set command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/lixenwraith/particle-hero/audio"
	"github.com/lixenwraith/particle-hero/dotgrid"
	"github.com/lixenwraith/particle-hero/field"
	"github.com/lixenwraith/particle-hero/hero"
	"github.com/lixenwraith/particle-hero/logging"
	"github.com/lixenwraith/particle-hero/shape"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. PARTICLE_HERO_FIELD_SPACING
	EnvPrefix = "PARTICLE_HERO"
	// DefaultFile is read when present and no file is named
	DefaultFile = "particle-hero.toml"
)

// Config is the whole application configuration
type Config struct {
	Effect  string         `mapstructure:"effect" toml:"effect"`
	Field   field.Config   `mapstructure:"field" toml:"field"`
	Shape   shape.Config   `mapstructure:"shape" toml:"shape"`
	DotGrid dotgrid.Config `mapstructure:"dotgrid" toml:"dotgrid"`
	Render  hero.Config    `mapstructure:"render" toml:"render"`
	Audio   audio.Config   `mapstructure:"audio" toml:"audio"`
	Log     logging.Config `mapstructure:"log" toml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Effect:  hero.EffectField,
		Field:   field.DefaultConfig(),
		Shape:   shape.DefaultConfig(),
		DotGrid: dotgrid.DefaultConfig(),
		Render:  hero.DefaultConfig(),
		Audio:   audio.DefaultConfig(),
		Log:     logging.DefaultConfig(),
	}
}

// Validate checks every section, reporting all failures
func (c Config) Validate() error {
	var errs []error
	switch c.Effect {
	case hero.EffectField, hero.EffectDotGrid:
	default:
		errs = append(errs, fmt.Errorf("unknown effect %q", c.Effect))
	}
	errs = append(errs,
		c.Field.Validate(),
		c.Shape.Validate(),
		c.DotGrid.Validate(),
		c.Render.Validate(),
		c.Audio.Validate(),
		c.Log.Validate(),
	)
	return errors.Join(errs...)
}

// Effects extracts what hero.NewEffect needs
func (c Config) Effects() hero.EffectConfig {
	return hero.EffectConfig{
		Name:    c.Effect,
		Field:   c.Field,
		Shape:   c.Shape,
		DotGrid: c.DotGrid,
	}
}

// WriteDefault encodes the built-in configuration as TOML
func WriteDefault(w io.Writer) error {
	return Encode(w, Default())
}

// Encode writes cfg as TOML
func Encode(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Load layers defaults, file and environment into v and decodes the result
// An empty path reads DefaultFile if it exists; a named path must exist
func Load(v *viper.Viper, path string) (Config, error) {
	var buf bytes.Buffer
	if err := WriteDefault(&buf); err != nil {
		return Config{}, err
	}
	v.SetConfigType("toml")
	if err := v.ReadConfig(&buf); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		// The user file is parsed by its extension, not as the TOML defaults
		v.SetConfigType("")
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
