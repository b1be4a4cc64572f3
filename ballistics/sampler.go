package ballistics

import "github.com/jakecoffman/cp"

// Sampler samples a trajectory at a fixed time step.
type Sampler struct {
	// Points is the number of samples in an unobstructed path, including
	// the origin.
	Points int
	// Step is the time between samples in seconds.
	Step float64
}

// Path is a sampled trajectory. When Hit is set the last point is the
// obstruction and HitIndex is its index in Points.
type Path struct {
	Points   []cp.Vector
	Hit      bool
	HitIndex int
	HitInfo  RayHit
}

// Predict samples the trajectory for l. Sample i sits at t = i·Step. Each
// segment between consecutive samples is cast, and the first hit replaces
// the segment's end sample and ends the path. A nil caster never hits.
func (s Sampler) Predict(l Launch, gravity cp.Vector, caster Raycaster) Path {
	return s.PredictInto(nil, l, gravity, caster)
}

// PredictInto is Predict reusing buf's backing array.
func (s Sampler) PredictInto(buf []cp.Vector, l Launch, gravity cp.Vector, caster Raycaster) Path {
	n := s.Points
	if n < 1 {
		n = 1
	}
	pts := buf[:0]
	if cap(pts) < n {
		pts = make([]cp.Vector, 0, n)
	}

	v0 := l.InitialVelocity()
	pts = append(pts, l.Origin)
	for i := 1; i < n; i++ {
		t := float64(i) * s.Step
		point := PositionAt(l.Origin, v0, gravity, t)
		last := pts[i-1]

		if caster != nil && point != last {
			if hit, ok := caster.Raycast(last, point); ok {
				pts = append(pts, hit.Point)
				return Path{Points: pts, Hit: true, HitIndex: i, HitInfo: hit}
			}
		}
		pts = append(pts, point)
	}
	return Path{Points: pts}
}

// Duration is the flight time covered by an unobstructed path.
func (s Sampler) Duration() float64 {
	if s.Points < 2 {
		return 0
	}
	return float64(s.Points-1) * s.Step
}

// ImpactVelocity is the velocity at the end of p: at the obstruction when
// the path was truncated, otherwise at its last sample.
func (s Sampler) ImpactVelocity(l Launch, gravity cp.Vector, p Path) cp.Vector {
	v0 := l.InitialVelocity()
	if len(p.Points) < 2 {
		return v0
	}
	t := float64(len(p.Points)-1) * s.Step
	if p.Hit {
		t = (float64(p.HitIndex-1) + p.HitInfo.Alpha) * s.Step
	}
	return VelocityAt(v0, gravity, t)
}
