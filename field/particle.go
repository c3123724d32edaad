package field

import (
	"math"

	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/shape"
	"github.com/lixenwraith/particle-hero/vmath"
)

// PointerSentinel is the pointer position used when no pointer is tracked
// Far enough outside any viewport that no particle is ever within repel radius
const PointerSentinel = -9999.0

// Particle is one dot of the field
// GridX/GridY never change after construction
type Particle struct {
	X, Y             float64
	GridX, GridY     float64
	TargetX, TargetY float64
	VX, VY           float64

	Radius       float64
	TargetRadius float64
	Color        render.RGBA
	TargetColor  render.RGBA

	Active bool
}

func newParticle(gx, gy float64, cfg *Config) Particle {
	return Particle{
		X:            gx,
		Y:            gy,
		GridX:        gx,
		GridY:        gy,
		TargetX:      gx,
		TargetY:      gy,
		Radius:       cfg.IdleRadius,
		TargetRadius: cfg.IdleRadius,
		Color:        cfg.IdleColor,
		TargetColor:  cfg.IdleColor,
	}
}

// release points the particle back at its lattice anchor with idle looks
func (p *Particle) release(cfg *Config) {
	p.TargetX = p.GridX
	p.TargetY = p.GridY
	p.TargetRadius = cfg.IdleRadius
	p.TargetColor = cfg.IdleColor
	p.Active = false
}

// claim points the particle at a shape coordinate with active looks
func (p *Particle) claim(pt shape.Point, cfg *Config) {
	p.TargetX = float64(pt.X)
	p.TargetY = float64(pt.Y)
	p.TargetRadius = cfg.ActiveRadius
	p.TargetColor = cfg.ActiveColor
	p.Active = true
}

// integrate applies one spring + friction step toward the target
func (p *Particle) integrate(cfg *Config) {
	forceX := (p.TargetX - p.X) * cfg.Tension
	forceY := (p.TargetY - p.Y) * cfg.Tension
	p.VX = (p.VX + forceX) * cfg.Friction
	p.VY = (p.VY + forceY) * cfg.Friction
	p.X += p.VX
	p.Y += p.VY
}

// repel pushes the particle directly away from the pointer
// Displacement is (radius-dist)/radius * force; zero at or beyond radius
// Under the pointer the push is maximal, directed from the pointer toward the anchor
func (p *Particle) repel(cfg *Config, px, py float64) {
	dx := px - p.X
	dy := py - p.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= cfg.RepelRadius {
		return
	}

	if dist == 0 {
		away := vmath.Vec2{X: p.GridX - px, Y: p.GridY - py}.Normalize()
		if away == (vmath.Vec2{}) {
			away = vmath.Vec2{X: 1}
		}
		p.X += away.X * cfg.RepelForce
		p.Y += away.Y * cfg.RepelForce
		return
	}

	force := (cfg.RepelRadius - dist) / cfg.RepelRadius * cfg.RepelForce
	p.X -= dx / dist * force
	p.Y -= dy / dist * force
}

// interpolate eases colour, alpha and radius toward their targets
func (p *Particle) interpolate(cfg *Config) {
	p.Color = p.Color.ApproachColor(p.TargetColor, cfg.ColorLerp, cfg.AlphaLerp)
	p.Radius = vmath.Approach(p.Radius, p.TargetRadius, cfg.SizeLerp)
}

// step runs the full per-frame update in order: spring, repulsion, looks
func (p *Particle) step(cfg *Config, pointer vmath.Vec2) {
	p.integrate(cfg)
	p.repel(cfg, pointer.X, pointer.Y)
	p.interpolate(cfg)
}
