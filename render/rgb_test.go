package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name  string
		dst   RGB
		src   RGB
		alpha float64
		want  RGB
	}{
		{"Opaque source wins", RGBBlack, RGBWhite, 1.0, RGBWhite},
		{"Transparent keeps destination", RGBBlack, RGBWhite, 0.0, RGBBlack},
		{"Negative alpha keeps destination", RGBWhite, RGBBlack, -1, RGBWhite},
		{"Half mix", RGBBlack, RGB{R: 200, G: 100, B: 50}, 0.5, RGB{R: 100, G: 50, B: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.dst, tt.src, tt.alpha)
			assert.InDelta(t, float64(tt.want.R), float64(got.R), 1)
			assert.InDelta(t, float64(tt.want.G), float64(got.G), 1)
			assert.InDelta(t, float64(tt.want.B), float64(got.B), 1)
		})
	}
}

func TestApproachColor_IndependentRates(t *testing.T) {
	c := RGBA{R: 0, G: 0, B: 0, A: 0}
	target := RGBA{R: 100, G: 200, B: 50, A: 1}

	got := c.ApproachColor(target, 0.5, 0.1)
	assert.InDelta(t, 50, got.R, 1e-9)
	assert.InDelta(t, 100, got.G, 1e-9)
	assert.InDelta(t, 25, got.B, 1e-9)
	assert.InDelta(t, 0.1, got.A, 1e-9)
}

func TestOpaque_TruncatesAndClamps(t *testing.T) {
	got := RGBA{R: 254.9, G: -3, B: 300, A: 0.5}.Opaque()
	assert.Equal(t, RGB{R: 254, G: 0, B: 255}, got)
}

func TestScaleMixLuminance(t *testing.T) {
	assert.Equal(t, RGB{R: 100, G: 50, B: 100}, Scale(RGB{R: 200, G: 100, B: 200}, 0.5))
	assert.Equal(t, RGBWhite, Scale(RGB{R: 200, G: 200, B: 200}, 2))
	assert.Equal(t, RGB{R: 127, G: 127, B: 127}, Mix(RGBBlack, RGBWhite))
	assert.InDelta(t, 1.0, Luminance(RGBWhite), 1e-9)
	assert.Zero(t, Luminance(RGBBlack))
}
