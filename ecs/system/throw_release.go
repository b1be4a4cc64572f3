package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// ThrowReleaseSystem lets go of the grenade when a thrower's animation
// reaches its release frame.
type ThrowReleaseSystem struct{}

func NewThrowReleaseSystem() *ThrowReleaseSystem {
	return &ThrowReleaseSystem{}
}

func (s *ThrowReleaseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventAnimationFrame {
			continue
		}
		frame, ok := evt.Data.(ecs.AnimationFrameEvent)
		if !ok {
			continue
		}
		thrower, ok := ecs.Get(w, frame.Entity, component.GrenadeThrowerComponent.Kind())
		if !ok || frame.Name != thrower.ReleaseEventName() {
			continue
		}
		if !ReleaseGrenade(w, frame.Entity, thrower) {
			log.Printf("throw: entity=%s has no grenade ready to release", frame.Entity)
			if !grenadeInFlight(w, thrower) {
				thrower.ThrowAvailable = true
			}
		}
	}
}

// grenadeInFlight reports whether the thrower's grenade has left the hand.
func grenadeInFlight(w *ecs.World, thrower *component.GrenadeThrower) bool {
	grenade, ok := ecs.Get(w, ecs.Entity(thrower.Grenade), component.GrenadeComponent.Kind())
	return ok && !grenade.Held
}

// ReleaseGrenade detaches the thrower's grenade from the hand, makes it a
// dynamic body, applies the throw impulse along the aim direction and arms
// its fuse. It reports false when there is no held grenade with a body.
func ReleaseGrenade(w *ecs.World, owner ecs.Entity, thrower *component.GrenadeThrower) bool {
	grenadeEntity := ecs.Entity(thrower.Grenade)
	grenade, ok := ecs.Get(w, grenadeEntity, component.GrenadeComponent.Kind())
	if !ok || !grenade.Held {
		return false
	}
	bodyComp, ok := ecs.Get(w, grenadeEntity, component.PhysicsBodyComponent.Kind())
	if !ok || bodyComp.Body == nil {
		return false
	}
	body := bodyComp.Body

	if x, y, ok := HoldPoint(w, owner); ok {
		body.SetPosition(cp.Vector{X: x, Y: y})
	}
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
	body.SetType(cp.BODY_DYNAMIC)
	bodyComp.Kinematic = false
	grenade.Held = false

	dir := cp.Vector{X: thrower.AimX, Y: thrower.AimY}
	if dir.LengthSq() > 0 {
		impulse := dir.Normalize().Mult(thrower.ThrowStrength * common.PixelsPerMeter)
		body.ApplyImpulseAtWorldPoint(impulse, body.Position())
	}

	fuse := &component.Fuse{Frames: common.SecondsToFrames(thrower.ExplosionDelay)}
	if err := ecs.Add(w, grenadeEntity, component.FuseComponent.Kind(), fuse); err != nil {
		panic("throw system: arm fuse: " + err.Error())
	}
	if sprite, ok := ecs.Get(w, grenadeEntity, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = false
	}
	return true
}
