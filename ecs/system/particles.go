package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// ParticleSystem integrates explosion sparks and draws them fading out.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (p *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	const dt = common.FixedDelta
	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, emitter *component.ParticleEmitter) {
		alive := emitter.Particles[:0]
		for _, pt := range emitter.Particles {
			pt.Life -= dt
			if pt.Life <= 0 {
				continue
			}
			if emitter.Damping > 0 {
				pt.VX *= emitter.Damping
				pt.VY *= emitter.Damping
			}
			pt.VY += emitter.Gravity * dt
			pt.X += pt.VX * dt
			pt.Y += pt.VY * dt
			alive = append(alive, pt)
		}
		emitter.Particles = alive
	})
}

func (p *ParticleSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	camX, camY, zoom := cameraView(w)
	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, emitter *component.ParticleEmitter) {
		for _, pt := range emitter.Particles {
			fade := 1.0
			if pt.Max > 0 {
				fade = pt.Life / pt.Max
			}
			c := color.NRGBA{
				R: emitter.Color.R,
				G: emitter.Color.G,
				B: emitter.Color.B,
				A: uint8(float64(emitter.Color.A) * fade),
			}
			sx := float32((pt.X - camX) * zoom)
			sy := float32((pt.Y - camY) * zoom)
			vector.FillCircle(screen, sx, sy, float32(pt.Size*zoom), c, true)
		}
	})
}
