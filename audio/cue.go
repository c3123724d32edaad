// Package audio plays short chimes when the particle shape forms or dissolves.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid audio config")

// Config controls the morph cue
type Config struct {
	Enabled    bool    `mapstructure:"enabled" toml:"enabled"`
	Volume     float64 `mapstructure:"volume" toml:"volume"` // linear gain, 0 mutes
	SampleRate int     `mapstructure:"sample_rate" toml:"sample_rate"`
}

// DefaultConfig returns a quiet, disabled cue
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     0.25,
		SampleRate: 44100,
	}
}

// Validate reports the first out-of-range parameter
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume must be in [0,1], got %g", ErrInvalidConfig, c.Volume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}

// Player reacts to morph transitions
type Player interface {
	MorphIn()
	MorphOut()
	Close()
}

// Nop is a silent Player
type Nop struct{}

func (Nop) MorphIn()  {}
func (Nop) MorphOut() {}
func (Nop) Close()    {}

// Cue mixes chimes into a single streamer
type Cue struct {
	mu     sync.Locker
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	log    *zap.Logger
	closer func()
}

// NewCue creates a cue whose output is read through Streamer
// Nothing is connected to an audio device
func NewCue(cfg Config, log *zap.Logger) *Cue {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cue{
		mu:     &sync.Mutex{},
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		log:    log,
		closer: func() {},
	}
}

// speakerLock guards the mixer while the speaker goroutine streams it
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Open returns a speaker-backed cue, or Nop when disabled or the device fails
func Open(cfg Config, log *zap.Logger) Player {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled {
		return Nop{}
	}

	c := NewCue(cfg, log)
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		log.Warn("audio device unavailable, running silent", zap.Error(err))
		return Nop{}
	}
	speaker.Play(c.mixer)
	c.mu = speakerLock{}
	c.closer = speaker.Close

	log.Info("audio cue enabled", zap.Int("sample_rate", cfg.SampleRate), zap.Float64("volume", cfg.Volume))
	return c
}

// Streamer exposes the mix
func (c *Cue) Streamer() beep.Streamer {
	return c.mixer
}

// Pending returns the number of chimes still playing
func (c *Cue) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixer.Len()
}

// MorphIn plays the rising chime
func (c *Cue) MorphIn() {
	c.play(true)
}

// MorphOut plays the falling chime
func (c *Cue) MorphOut() {
	c.play(false)
}

func (c *Cue) play(rising bool) {
	s := synth(chime(rising), c.volume, c.rate)
	c.mu.Lock()
	c.mixer.Add(s)
	c.mu.Unlock()
	c.log.Debug("cue", zap.Bool("rising", rising))
}

// Close drops pending chimes and releases the device
func (c *Cue) Close() {
	c.mu.Lock()
	c.mixer.Clear()
	c.mu.Unlock()
	c.closer()
}
