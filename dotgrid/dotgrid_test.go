package dotgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-hero/render"
)

func TestBuild_OverhangsViewport(t *testing.T) {
	g := New(DefaultConfig())
	g.Build(480, 240)

	cols, rows := g.Dims()
	assert.Equal(t, 21, cols)
	assert.Equal(t, 11, rows)
	require.Equal(t, 21*11, g.Len())

	dots := g.Dots()
	assert.Equal(t, 0.0, dots[0].Origin.X)
	assert.Equal(t, 0.0, dots[0].Origin.Y)
	last := dots[len(dots)-1]
	assert.Equal(t, 480.0, last.Origin.X)
	assert.Equal(t, 240.0, last.Origin.Y)
}

func TestBuild_CentresUnevenGrid(t *testing.T) {
	g := New(DefaultConfig())
	g.Build(100, 50)

	cols, rows := g.Dims()
	assert.Equal(t, 6, cols)
	assert.Equal(t, 4, rows)
	dots := g.Dots()
	assert.Equal(t, -10.0, dots[0].Origin.X)
	assert.Equal(t, -11.0, dots[0].Origin.Y)
}

func TestBuild_Degenerate(t *testing.T) {
	g := New(DefaultConfig())
	g.Build(0, 100)
	assert.Equal(t, 0, g.Len())

	rec := &render.Recorder{}
	g.Tick(rec)
	assert.Empty(t, rec.Circles)
}

func TestStep_PushesAwayWithEasedFalloff(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg)
	g.Build(480, 240)

	// Dot 0 sits on (0,0); pointer 60 to the right is at half the influence radius
	g.SetPointer(60, 0)
	g.Step()

	d := g.Dots()[0]
	push := 0.5 * 0.5 * cfg.PushStrength
	assert.InDelta(t, -push*pushApproach, d.Pos.X, 1e-9)
	assert.InDelta(t, 0, d.Pos.Y, 1e-9)

	for i := 0; i < 200; i++ {
		g.Step()
	}
	assert.InDelta(t, -push, g.Dots()[0].Pos.X, 1e-6)
}

func TestStep_IgnoresDotsOutsideInfluenceOrUnderPointer(t *testing.T) {
	g := New(DefaultConfig())
	g.Build(480, 240)

	g.SetPointer(0, 0)
	g.Step()
	dots := g.Dots()
	assert.Equal(t, dots[0].Origin, dots[0].Pos)
	// (480,240) is well outside 120
	last := dots[len(dots)-1]
	assert.Equal(t, last.Origin, last.Pos)
}

func TestStep_ReturnsHomeWhenPointerLeaves(t *testing.T) {
	g := New(DefaultConfig())
	g.Build(480, 240)
	g.SetPointer(10, 10)
	for i := 0; i < 30; i++ {
		g.Step()
	}
	require.NotEqual(t, g.Dots()[0].Origin, g.Dots()[0].Pos)

	g.ClearPointer()
	g.Step()
	before := g.Dots()[0]
	for i := 0; i < 200; i++ {
		g.Step()
	}
	after := g.Dots()[0]
	assert.InDelta(t, after.Origin.X, after.Pos.X, 1e-6)
	assert.InDelta(t, after.Origin.Y, after.Pos.Y, 1e-6)
	assert.NotEqual(t, before.Pos, after.Pos)
}

func TestTick_PaintsFixedLook(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg)
	g.Build(48, 24)

	rec := &render.Recorder{}
	g.Tick(rec)
	assert.Equal(t, 1, rec.Clears)
	require.Len(t, rec.Circles, g.Len())
	for _, c := range rec.Circles {
		assert.Equal(t, cfg.DotRadius, c.Radius)
		assert.Equal(t, cfg.Color, c.Color)
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Gap = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.PushStrength = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
