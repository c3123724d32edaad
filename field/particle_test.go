package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/vmath"
)

var noPointer = vmath.Vec2{X: PointerSentinel, Y: PointerSentinel}

func restingAt(x, y, tx, ty float64, cfg *Config) Particle {
	p := newParticle(x, y, cfg)
	p.TargetX, p.TargetY = tx, ty
	return p
}

func TestIntegrate_ConvergesDefaultTuning(t *testing.T) {
	cfg := DefaultConfig()
	p := restingAt(0, 0, 100, 0, &cfg)

	errs := make([]float64, 0, 300)
	for i := 0; i < 300; i++ {
		p.step(&cfg, noPointer)
		errs = append(errs, math.Abs(p.TargetX-p.X))
	}

	// Slightly under-damped: the envelope over each 10-step window shrinks
	prev := math.Inf(1)
	for w := 0; w < 200; w += 10 {
		peak := 0.0
		for _, e := range errs[w : w+10] {
			peak = math.Max(peak, e)
		}
		assert.Less(t, peak, prev, "window %d", w/10)
		prev = peak
	}

	for i := 100; i < len(errs); i++ {
		require.Less(t, errs[i], 1e-3, "step %d", i)
	}
	assert.Equal(t, 0.0, p.Y)
}

func TestIntegrate_MonotoneWhenOverdamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tension = 0.05
	cfg.Friction = 0.5

	p := restingAt(0, 0, 100, -50, &cfg)
	prev := vmath.Distance(p.X, p.Y, p.TargetX, p.TargetY)
	for i := 0; i < 300; i++ {
		p.integrate(&cfg)
		d := vmath.Distance(p.X, p.Y, p.TargetX, p.TargetY)
		require.LessOrEqual(t, d, prev, "step %d", i)
		prev = d
	}
	assert.Less(t, prev, 1e-3)
}

func TestIntegrate_AtRestOnTargetStaysPut(t *testing.T) {
	cfg := DefaultConfig()
	p := newParticle(40, 80, &cfg)
	for i := 0; i < 50; i++ {
		p.step(&cfg, noPointer)
	}
	assert.Equal(t, 40.0, p.X)
	assert.Equal(t, 80.0, p.Y)
	assert.Zero(t, p.VX)
	assert.Zero(t, p.VY)
}

func TestRepel_Bounds(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		px, py   float64
		wantMove float64
	}{
		{"beyond radius", 100 + cfg.RepelRadius + 1, 100, 0},
		{"exactly at radius", 100 + cfg.RepelRadius, 100, 0},
		{"half radius", 100 + cfg.RepelRadius/2, 100, cfg.RepelForce / 2},
		{"under pointer", 100, 100, cfg.RepelForce},
		{"sentinel", PointerSentinel, PointerSentinel, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParticle(100, 100, &cfg)
			p.repel(&cfg, tt.px, tt.py)
			moved := vmath.Distance(p.X, p.Y, 100, 100)
			assert.InDelta(t, tt.wantMove, moved, 1e-9)
		})
	}
}

func TestRepel_PushesAwayFromPointer(t *testing.T) {
	cfg := DefaultConfig()
	p := newParticle(100, 100, &cfg)
	p.repel(&cfg, 90, 100)

	assert.Greater(t, p.X, 100.0)
	assert.InDelta(t, 100, p.Y, 1e-12)

	// Displacement grows as the pointer gets closer
	near := newParticle(100, 100, &cfg)
	near.repel(&cfg, 99, 100)
	assert.Greater(t, near.X, p.X)
	assert.Less(t, near.X-100, cfg.RepelForce)
}

func TestRepel_UnderPointerDisplacedFromAnchor(t *testing.T) {
	cfg := DefaultConfig()
	p := newParticle(100, 100, &cfg)
	// Drifted off anchor, pointer exactly on it
	p.X, p.Y = 100, 110
	p.repel(&cfg, 100, 110)

	// Pushed toward its anchor side, away from the pointer
	assert.InDelta(t, 100, p.X, 1e-12)
	assert.InDelta(t, 110-cfg.RepelForce, p.Y, 1e-12)
}

func TestInterpolate_SeparateRates(t *testing.T) {
	cfg := DefaultConfig()
	p := newParticle(0, 0, &cfg)
	p.TargetRadius = cfg.ActiveRadius
	p.TargetColor = render.RGBA{R: 0, G: 0, B: 0, A: 1}

	p.interpolate(&cfg)

	assert.InDelta(t, cfg.IdleRadius+(cfg.ActiveRadius-cfg.IdleRadius)*cfg.SizeLerp, p.Radius, 1e-12)
	assert.InDelta(t, 255*(1-cfg.ColorLerp), p.Color.R, 1e-9)
	assert.InDelta(t, 0.6+0.4*cfg.AlphaLerp, p.Color.A, 1e-12)
}

func TestInterpolate_NeverSnaps(t *testing.T) {
	cfg := DefaultConfig()
	p := newParticle(0, 0, &cfg)
	p.TargetRadius = cfg.ActiveRadius
	p.TargetColor = cfg.ActiveColor

	for i := 0; i < 20; i++ {
		p.interpolate(&cfg)
		assert.Less(t, p.Radius, cfg.ActiveRadius)
		assert.Less(t, p.Color.A, cfg.ActiveColor.A)
	}
}
