// Package settings persists player preferences between runs. Storage goes
// through gdata; without a gdata manager the settings live in memory only.
package settings

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/grenadier/prefabs"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "grenadier"

	settingsObject   = "settings"
	settingsProperty = "global"
)

type Values struct {
	ShowTrajectory  bool              `yaml:"show_trajectory"`
	TrajectoryColor prefabs.YAMLColor `yaml:"trajectory_color"`
	Volume          float64           `yaml:"volume"`
}

func Defaults() Values {
	return Values{
		ShowTrajectory:  true,
		TrajectoryColor: prefabs.YAMLColor{RGBA: color.RGBA{R: 0xff, G: 0xd5, B: 0x4a, A: 0xcc}},
		Volume:          0.8,
	}
}

// Manager holds the current settings and writes them back on change.
type Manager struct {
	store  *gdata.Manager
	values Values
}

// Open creates a gdata-backed manager for AppName. Storage failures fall
// back to a memory-only manager.
func Open() *Manager {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("settings: open storage: %v (settings will not persist)", err)
		store = nil
	}
	return NewManager(store)
}

// NewManager loads saved settings from store. A nil store keeps settings in
// memory only.
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, values: Defaults()}
	if err := m.Load(); err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.values = Defaults()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	m.values = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (m *Manager) Values() Values {
	return m.values
}

func (m *Manager) ShowTrajectory() bool {
	return m.values.ShowTrajectory
}

func (m *Manager) TrajectoryColor() color.RGBA {
	return m.values.TrajectoryColor.RGBA
}

func (m *Manager) Volume() float64 {
	return m.values.Volume
}

func (m *Manager) SetShowTrajectory(show bool) {
	m.values.ShowTrajectory = show
	m.persist()
}

func (m *Manager) SetVolume(volume float64) {
	m.values.Volume = clampVolume(volume)
	m.persist()
}

func (m *Manager) persist() {
	if err := m.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
