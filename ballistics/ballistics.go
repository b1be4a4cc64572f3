// Package ballistics predicts projectile paths under constant gravity with
// no drag, clipped at the first obstruction a raycaster reports.
package ballistics

import "github.com/jakecoffman/cp"

// Launch describes a throw: an impulse of Strength along Direction applied
// to a body of Mass resting at Origin.
type Launch struct {
	Origin    cp.Vector
	Direction cp.Vector
	Strength  float64
	Mass      float64
}

// InitialVelocity is the velocity the impulse gives the body.
func (l Launch) InitialVelocity() cp.Vector {
	mass := l.Mass
	if mass <= 0 {
		mass = 1
	}
	dir := l.Direction
	if dir.LengthSq() == 0 {
		return cp.Vector{}
	}
	return dir.Normalize().Mult(l.Strength / mass)
}

// PositionAt evaluates p0 + v0·t + ½·g·t².
func PositionAt(p0, v0, g cp.Vector, t float64) cp.Vector {
	return p0.Add(v0.Mult(t)).Add(g.Mult(0.5 * t * t))
}

// VelocityAt evaluates v0 + g·t.
func VelocityAt(v0, g cp.Vector, t float64) cp.Vector {
	return v0.Add(g.Mult(t))
}

// RayHit is the nearest intersection along a cast segment.
type RayHit struct {
	Point  cp.Vector
	Normal cp.Vector
	// Alpha is the hit's fraction along the segment, 0 at from and 1 at to.
	Alpha float64
}

// Raycaster finds the nearest obstruction on the segment from→to.
type Raycaster interface {
	Raycast(from, to cp.Vector) (RayHit, bool)
}

// RaycasterFunc adapts a function to Raycaster.
type RaycasterFunc func(from, to cp.Vector) (RayHit, bool)

func (f RaycasterFunc) Raycast(from, to cp.Vector) (RayHit, bool) {
	return f(from, to)
}
