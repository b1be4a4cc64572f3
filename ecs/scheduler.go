package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system in order, then drops this tick's events.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.Events().flush()
}

// Draw calls every system that also implements Drawer, in update order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, system := range s.systems {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
