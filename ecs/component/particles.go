package component

import "image/color"

type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // remaining seconds
	Max    float64 // initial seconds
	Size   float64
}

// ParticleEmitter is a one-shot burst that fades out; the entity is
// expected to carry a TTL as well.
type ParticleEmitter struct {
	Particles []Particle
	Color     color.RGBA
	// Damping multiplies velocity each tick.
	Damping float64
	Gravity float64
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()
