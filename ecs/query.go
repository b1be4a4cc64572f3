package ecs

import "github.com/milk9111/grenadier/ecs/component"

// ForEach calls fn for every live entity holding kind. Entities created or
// destroyed by fn do not disturb the iteration.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil || !kind.Valid() {
		return
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range smallest(w, ka.ID(), kb.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range smallest(w, ka.ID(), kb.ID(), kc.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range smallest(w, ka.ID(), kb.ID(), kc.ID(), kd.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		d, ok := Get(w, e, kd)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// smallest returns the entity list of the smallest store among ids, or nil
// when any store is missing.
func smallest(w *World, ids ...component.ComponentID) []Entity {
	var best *SparseSet
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		if best == nil || s.Len() < best.Len() {
			best = s
		}
	}
	return best.Entities()
}
