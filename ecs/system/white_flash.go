package system

import (
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		if wf.Interval <= 0 {
			wf.Interval = 1
		}
		wf.Timer++
		wf.Frames--
		if wf.Timer >= wf.Interval {
			wf.Timer = 0
			wf.On = !wf.On
		}
		if wf.Frames <= 0 {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}
