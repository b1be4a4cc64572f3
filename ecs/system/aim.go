package system

import (
	"math"

	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const (
	animIdle = "idle"
	animAim  = "aim"
)

// AimSystem turns input into an aim direction for every grenade thrower and
// starts the throw animation when a throw is released.
type AimSystem struct{}

func NewAimSystem() *AimSystem {
	return &AimSystem{}
}

func (a *AimSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camX, camY, zoom := cameraView(w)

	ecs.ForEach3(w,
		component.GrenadeThrowerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, thrower *component.GrenadeThrower, input *component.Input, transform *component.Transform) {
			anim, hasAnim := ecs.Get(w, e, component.AnimationComponent.Kind())
			if !input.Focused || !input.Aim {
				thrower.Aiming = false
				if hasAnim && anim.Current == animAim && anim.Trigger == "" {
					anim.Play(animIdle)
				}
				return
			}
			thrower.Aiming = true
			if hasAnim && anim.Current == animIdle && anim.Trigger == "" {
				anim.Play(animAim)
			}

			startX, startY, ok := HoldPoint(w, e)
			if !ok {
				startX, startY = transform.X, transform.Y
			}

			var dirX, dirY float64
			if math.Hypot(input.AimX, input.AimY) > stickDeadzone {
				dirX, dirY = input.AimX, input.AimY
			} else {
				cursorWorldX := camX + input.CursorX/zoom
				cursorWorldY := camY + input.CursorY/zoom
				dirX = cursorWorldX - startX
				dirY = cursorWorldY - startY
			}
			if l := math.Hypot(dirX, dirY); l > 0 {
				thrower.AimX = dirX / l
				thrower.AimY = dirY / l
			} else if thrower.AimX == 0 && thrower.AimY == 0 {
				thrower.AimX = 1
			}

			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && thrower.AimX != 0 {
				sprite.FacingLeft = thrower.AimX < 0
			}

			if input.ThrowReleased && thrower.ThrowAvailable {
				thrower.ThrowAvailable = false
				if hasAnim && hasAnimation(anim, thrower.ThrowAnimation) {
					anim.SetTrigger(thrower.ThrowAnimation)
				} else {
					// nothing will emit the release event, so throw now
					w.Events().Push(releaseEvent(e, thrower))
				}
			}
		})
}

func releaseEvent(e ecs.Entity, thrower *component.GrenadeThrower) ecs.Event {
	return ecs.Event{
		Type: ecs.EventAnimationFrame,
		Data: ecs.AnimationFrameEvent{Entity: e, Animation: thrower.ThrowAnimation, Name: thrower.ReleaseEventName()},
	}
}

func hasAnimation(anim *component.Animation, name string) bool {
	_, ok := anim.Defs[name]
	return ok && name != ""
}
