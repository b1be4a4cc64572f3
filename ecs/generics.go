package ecs

import "github.com/milk9111/grenadier/ecs/component"

// Add attaches or replaces a component value on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Get returns e's component of the given kind. The pointer is the stored
// value, so mutations are visible without writing back.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return nil, false
	}
	raw := w.store(kind.ID(), false).Get(e)
	if raw == nil {
		return nil, false
	}
	v, ok := raw.(*T)
	return v, ok
}

// Has reports whether e has a component of the given kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Remove detaches e's component of the given kind.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// First returns any live entity holding the given kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil || !kind.Valid() {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.denseEntities {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
