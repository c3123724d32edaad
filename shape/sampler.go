// Package shape turns rendered glyphs into shuffled point clouds used as morph targets.
package shape

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Point is a sampled pixel position inside the viewport
type Point struct {
	X, Y int
}

// Sampler produces morph destinations for a viewport
// An empty result means no shape is available
type Sampler interface {
	Sample(width, height int) []Point
}

// SamplerFunc adapts a function to Sampler
type SamplerFunc func(width, height int) []Point

// Sample calls f
func (f SamplerFunc) Sample(width, height int) []Point {
	return f(width, height)
}

// Glyph is a text run centred at fractions of the viewport
type Glyph struct {
	Text string  `mapstructure:"text" toml:"text"`
	X    float64 `mapstructure:"x" toml:"x"`
	Y    float64 `mapstructure:"y" toml:"y"`
}

// Config tunes glyph rasterization and sampling density
type Config struct {
	Glyphs        []Glyph `mapstructure:"glyphs" toml:"glyphs"`
	FontScale     float64 `mapstructure:"font_scale" toml:"font_scale"`         // font size as fraction of height
	Threshold     uint8   `mapstructure:"threshold" toml:"threshold"`           // alpha must exceed this
	MinStride     int     `mapstructure:"min_stride" toml:"min_stride"`         // smallest sampling step in pixels
	StrideDivisor int     `mapstructure:"stride_divisor" toml:"stride_divisor"` // stride = min(W,H)/divisor
}

// DefaultConfig returns curly braces at 30% and 70% width
func DefaultConfig() Config {
	return Config{
		Glyphs: []Glyph{
			{Text: "{", X: 0.30, Y: 0.50},
			{Text: "}", X: 0.70, Y: 0.50},
		},
		FontScale:     0.75,
		Threshold:     128,
		MinStride:     4,
		StrideDivisor: 200,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid shape config")

// Validate reports the first out-of-range parameter
func (c Config) Validate() error {
	switch {
	case c.FontScale <= 0 || c.FontScale > 2:
		return fmt.Errorf("%w: font_scale must be in (0,2], got %g", ErrInvalidConfig, c.FontScale)
	case c.MinStride <= 0:
		return fmt.Errorf("%w: min_stride must be positive, got %d", ErrInvalidConfig, c.MinStride)
	case c.StrideDivisor <= 0:
		return fmt.Errorf("%w: stride_divisor must be positive, got %d", ErrInvalidConfig, c.StrideDivisor)
	}
	for i, g := range c.Glyphs {
		if g.X < 0 || g.X > 1 || g.Y < 0 || g.Y > 1 {
			return fmt.Errorf("%w: glyph %d position must be within [0,1]", ErrInvalidConfig, i)
		}
	}
	return nil
}

// FaceFunc returns a font face of the given pixel size
// Caller closes the face
type FaceFunc func(size float64) (font.Face, error)

// GlyphSampler rasterizes glyphs onto a transient alpha mask and samples it
type GlyphSampler struct {
	cfg  Config
	face FaceFunc
	rng  *rand.Rand
	log  *zap.Logger
}

// Option configures a GlyphSampler
type Option func(*GlyphSampler)

// WithRand sets the shuffle source
func WithRand(r *rand.Rand) Option {
	return func(s *GlyphSampler) { s.rng = r }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *GlyphSampler) { s.log = l }
}

// WithFace replaces the default Go Bold face
func WithFace(f FaceFunc) Option {
	return func(s *GlyphSampler) { s.face = f }
}

// NewGlyphSampler creates a sampler, zero-valued fields other than Threshold take defaults
func NewGlyphSampler(cfg Config, opts ...Option) *GlyphSampler {
	def := DefaultConfig()
	if cfg.Glyphs == nil {
		cfg.Glyphs = def.Glyphs
	}
	if cfg.FontScale <= 0 {
		cfg.FontScale = def.FontScale
	}
	if cfg.MinStride <= 0 {
		cfg.MinStride = def.MinStride
	}
	if cfg.StrideDivisor <= 0 {
		cfg.StrideDivisor = def.StrideDivisor
	}

	s := &GlyphSampler{
		cfg:  cfg,
		face: GoBoldFace,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stride returns the sampling step for a viewport
// Larger viewports use a larger step so the point count stays bounded
func (s *GlyphSampler) Stride(width, height int) int {
	return max(s.cfg.MinStride, min(width, height)/s.cfg.StrideDivisor)
}

// Sample rasterizes the glyphs for the viewport and returns shuffled opaque pixels
func (s *GlyphSampler) Sample(width, height int) []Point {
	if width <= 0 || height <= 0 {
		return nil
	}

	mask, ok := s.rasterize(width, height)
	if !ok {
		return nil
	}

	stride := s.Stride(width, height)
	points := scan(mask, stride, s.cfg.Threshold)
	s.rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	s.log.Debug("shape sampled",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("stride", stride),
		zap.Int("points", len(points)))
	return points
}

// rasterize draws every glyph onto a fresh alpha mask
func (s *GlyphSampler) rasterize(width, height int) (*image.Alpha, bool) {
	size := math.Floor(float64(height) * s.cfg.FontScale)
	if size < 1 {
		return nil, false
	}

	face, err := s.face(size)
	if err != nil {
		s.log.Warn("glyph face unavailable, shape disabled", zap.Float64("size", size), zap.Error(err))
		return nil, false
	}
	defer face.Close()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}

	for _, g := range s.cfg.Glyphs {
		if g.Text == "" {
			continue
		}
		// Centre the ink box, not the advance box
		bounds, _ := font.BoundString(face, g.Text)
		inkW := bounds.Max.X - bounds.Min.X
		inkH := bounds.Max.Y - bounds.Min.Y
		cx := fixed.Int26_6(g.X * float64(width) * 64)
		cy := fixed.Int26_6(g.Y * float64(height) * 64)
		d.Dot = fixed.Point26_6{
			X: cx - inkW/2 - bounds.Min.X,
			Y: cy - inkH/2 - bounds.Min.Y,
		}
		d.DrawString(g.Text)
	}
	return mask, true
}

// scan walks the mask on a stride lattice and keeps pixels above threshold
func scan(mask *image.Alpha, stride int, threshold uint8) []Point {
	b := mask.Bounds()
	points := make([]Point, 0, (b.Dx()/stride+1)*(b.Dy()/stride+1)/8)
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		row := mask.Pix[(y-b.Min.Y)*mask.Stride:]
		for x := b.Min.X; x < b.Max.X; x += stride {
			if row[x-b.Min.X] > threshold {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}
