package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/ballistics"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// TrajectorySystem writes the predicted grenade path into each aiming
// thrower's line renderer and hides the line otherwise.
type TrajectorySystem struct {
	physics  *PhysicsSystem
	settings Settings
	buf      []cp.Vector
}

func NewTrajectorySystem(physics *PhysicsSystem, settings Settings) *TrajectorySystem {
	return &TrajectorySystem{physics: physics, settings: settings}
}

func (ts *TrajectorySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ts.physics.Sync(w)

	ecs.ForEach2(w, component.GrenadeThrowerComponent.Kind(), component.LineRenderComponent.Kind(), func(e ecs.Entity, thrower *component.GrenadeThrower, line *component.LineRender) {
		if !thrower.Aiming || (ts.settings != nil && !ts.settings.ShowTrajectory()) {
			line.Enabled = false
			return
		}

		path, ok := ts.Predict(w, e, thrower)
		if !ok {
			line.Enabled = false
			return
		}
		ts.buf = path.Points

		line.SetPositions(path.Points)
		line.Enabled = true
		if ts.settings != nil {
			if c := ts.settings.TrajectoryColor(); c.A != 0 {
				line.Color = c
			}
		}
	})
}

// Predict samples the path the thrower's grenade would take if released
// now and records the speed it would arrive with. The returned points alias
// an internal buffer.
func (ts *TrajectorySystem) Predict(w *ecs.World, e ecs.Entity, thrower *component.GrenadeThrower) (ballistics.Path, bool) {
	x, y, ok := HoldPoint(w, e)
	if !ok {
		return ballistics.Path{}, false
	}
	thrower.Clamp()

	launch := ballistics.Launch{
		Origin:    cp.Vector{X: x, Y: y},
		Direction: cp.Vector{X: thrower.AimX, Y: thrower.AimY},
		Strength:  thrower.ThrowStrength * common.PixelsPerMeter,
		Mass:      grenadeMass(w, ecs.Entity(thrower.Grenade)),
	}
	sampler := ballistics.Sampler{Points: thrower.LinePoints, Step: thrower.TimeBetweenPoints}
	caster := SpaceRaycaster{
		Space:  ts.physics.Space(),
		Filter: throwFilter(thrower.Group, thrower.CollisionCategory, thrower.CollisionMask),
	}
	path := sampler.PredictInto(ts.buf, launch, ts.physics.Gravity(), caster)
	thrower.PreviewImpactSpeed = sampler.ImpactVelocity(launch, ts.physics.Gravity(), path).Length()
	return path, true
}

func grenadeMass(w *ecs.World, grenade ecs.Entity) float64 {
	if body, ok := ecs.Get(w, grenade, component.PhysicsBodyComponent.Kind()); ok && body.Mass > 0 {
		return body.Mass
	}
	return 1
}
