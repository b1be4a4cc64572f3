package system

import (
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type AudioSystem struct {
	settings Settings
}

// NewAudioSystem scales every clip by the settings' master volume; nil
// settings play clips at their own volume.
func NewAudioSystem(settings Settings) *AudioSystem {
	return &AudioSystem{settings: settings}
}

func (a *AudioSystem) Update(w *ecs.World) {
	master := 1.0
	if a.settings != nil {
		master = a.settings.Volume()
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			if player := audioComp.Players[i]; player != nil {
				volume := master
				if i < len(audioComp.Volume) {
					volume *= audioComp.Volume[i]
				}
				player.SetVolume(volume)
				player.Rewind()
				player.Play()
			}

			audioComp.Play[i] = false
		}

		for i := 0; i < count && i < len(audioComp.Stop); i++ {
			if !audioComp.Stop[i] {
				continue
			}

			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}
	})
}
