package system

import (
	"image/color"

	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// Settings is the part of the player's preferences systems read every tick.
type Settings interface {
	ShowTrajectory() bool
	// TrajectoryColor overrides the prefab line colour unless it is zero.
	TrajectoryColor() color.RGBA
	Volume() float64
}

// SettingsStore is Settings plus the setters driven by input.
type SettingsStore interface {
	Settings
	SetShowTrajectory(bool)
	SetVolume(float64)
}

// SettingsSystem applies the settings hotkeys.
type SettingsSystem struct {
	store SettingsStore
}

func NewSettingsSystem(store SettingsStore) *SettingsSystem {
	return &SettingsSystem{store: store}
}

func (s *SettingsSystem) Update(w *ecs.World) {
	if s == nil || s.store == nil || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	if input.ToggleTrajectory {
		s.store.SetShowTrajectory(!s.store.ShowTrajectory())
	}
	if input.VolumeDelta != 0 {
		s.store.SetVolume(s.store.Volume() + input.VolumeDelta)
	}
}
