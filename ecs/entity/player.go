package entity

import (
	"fmt"

	"github.com/milk9111/grenadier/ecs"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return NewPlayerAt(w, 0, 0)
}

// NewPlayerAt builds the player and hands it its grenade.
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if _, err := NewGrenadeFor(w, entity); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return entity, nil
}
