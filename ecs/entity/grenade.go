package entity

import (
	"fmt"

	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const GrenadePrefab = "grenade.yaml"

// NewGrenadeFor builds the pooled grenade for owner and links the two. The
// grenade starts held, shares the owner's collision group and takes its
// collision layer as the thrower's preview filter.
func NewGrenadeFor(w *ecs.World, owner ecs.Entity) (ecs.Entity, error) {
	thrower, ok := ecs.Get(w, owner, component.GrenadeThrowerComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("grenade: owner %v has no grenade thrower", owner)
	}
	prefab := thrower.GrenadePrefab
	if prefab == "" {
		prefab = GrenadePrefab
	}

	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("grenade: %w", err)
	}
	grenade, ok := ecs.Get(w, e, component.GrenadeComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("grenade: prefab %q has no grenade component", prefab)
	}

	grenade.Owner = uint64(owner)
	grenade.Held = true
	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		grenade.InitialRotation = transform.Rotation
	}

	var group uint
	if ownerBody, ok := ecs.Get(w, owner, component.PhysicsBodyComponent.Kind()); ok {
		group = ownerBody.Group
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Group = group
		body.Kinematic = true
	}

	layer := component.CollisionLayer{Category: component.LayerGrenade, Mask: component.LayerWorld}
	if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		layer = *l
	}
	thrower.Grenade = uint64(e)
	thrower.CollisionCategory = layer.Category
	thrower.CollisionMask = layer.CollisionMask()
	thrower.Group = group
	thrower.ThrowAvailable = true

	if ownerTransform, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		facingLeft := false
		if sprite, ok := ecs.Get(w, owner, component.SpriteComponent.Kind()); ok {
			facingLeft = sprite.FacingLeft
		}
		x, y := thrower.ReleasePoint(ownerTransform.X, ownerTransform.Y, facingLeft)
		if err := SetEntityTransform(w, e, x, y, grenade.InitialRotation); err != nil {
			return 0, fmt.Errorf("grenade: place in hand: %w", err)
		}
	}
	return e, nil
}
