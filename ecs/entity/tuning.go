package entity

import (
	"fmt"

	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"github.com/milk9111/grenadier/prefabs"
)

// ApplyThrowerTuning reloads grenade thrower tuning from prefab onto every
// thrower in the world. Runtime state such as the held grenade and
// ThrowAvailable is kept.
func ApplyThrowerTuning(w *ecs.World, prefab string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("tuning: load %q: %w", prefab, err)
	}
	raw, ok := spec.Components["grenade_thrower"]
	if !ok {
		return 0, nil
	}
	throwerSpec, err := prefabs.DecodeComponentSpec[prefabs.GrenadeThrowerComponentSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("tuning: decode %q: %w", prefab, err)
	}

	updated := 0
	ecs.ForEach(w, component.GrenadeThrowerComponent.Kind(), func(_ ecs.Entity, thrower *component.GrenadeThrower) {
		applyThrowerSpec(thrower, throwerSpec)
		updated++
	})
	return updated, nil
}
