package system

import (
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const (
	defaultMoveSpeed = 160.0
	defaultJumpSpeed = 420.0
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, bodyComp *component.PhysicsBody) {
			if bodyComp.Body == nil {
				return
			}
			moveSpeed := player.MoveSpeed
			if moveSpeed <= 0 {
				moveSpeed = defaultMoveSpeed
			}
			jumpSpeed := player.JumpSpeed
			if jumpSpeed <= 0 {
				jumpSpeed = defaultJumpSpeed
			}

			vel := bodyComp.Body.Velocity()
			vel.X = input.MoveX * moveSpeed
			if input.JumpPressed && player.Grounded {
				vel.Y = -jumpSpeed
				player.Grounded = false
			}
			bodyComp.Body.SetVelocityVector(vel)

			// facing follows movement unless the aim system owns it
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && input.MoveX != 0 && !input.Aim {
				sprite.FacingLeft = input.MoveX < 0
			}
		})
}
