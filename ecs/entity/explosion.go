package entity

import (
	"fmt"

	"github.com/milk9111/grenadier/ecs"
)

const ExplosionPrefab = "explosion.yaml"

// NewExplosionAt spawns a one-shot explosion effect centered on (x, y).
func NewExplosionAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	if prefab == "" {
		prefab = ExplosionPrefab
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("explosion: %w", err)
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("explosion: override transform: %w", err)
	}
	return e, nil
}
