package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-hero/vmath"
)

// RGBA is a colour with 0-255 float channels and 0-1 alpha
// Channels stay float so per-frame interpolation never quantizes
type RGBA struct {
	R float64 `mapstructure:"r" toml:"r"`
	G float64 `mapstructure:"g" toml:"g"`
	B float64 `mapstructure:"b" toml:"b"`
	A float64 `mapstructure:"a" toml:"a"`
}

// RGB is an opaque colour used by raster surfaces
type RGB struct {
	R uint8 `mapstructure:"r" toml:"r"`
	G uint8 `mapstructure:"g" toml:"g"`
	B uint8 `mapstructure:"b" toml:"b"`
}

// Predefined default colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// ApproachColor moves each RGB channel toward target by colorRate and alpha by alphaRate
func (c RGBA) ApproachColor(target RGBA, colorRate, alphaRate float64) RGBA {
	return RGBA{
		R: vmath.Approach(c.R, target.R, colorRate),
		G: vmath.Approach(c.G, target.G, colorRate),
		B: vmath.Approach(c.B, target.B, colorRate),
		A: vmath.Approach(c.A, target.A, alphaRate),
	}
}

// Opaque drops alpha, truncating channels the way canvas rgba() strings do
func (c RGBA) Opaque() RGB {
	return RGB{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Blend composites src over c with the given alpha (source-over)
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	return fromColorful(c.colorful().BlendRgb(src.colorful(), alpha))
}

// Scale multiplies all channels by factor, clamped
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Mix averages two colors
func Mix(a, b RGB) RGB {
	return RGB{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
	}
}

// Luminance returns relative brightness in [0,1]
func Luminance(c RGB) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// TCell converts to a truecolor tcell color
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
