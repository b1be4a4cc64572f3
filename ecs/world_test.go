package ecs

import (
	"testing"

	"github.com/milk9111/grenadier/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got id %d want %d", fresh.id(), old.id())
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ by generation")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("fresh entity must not inherit the destroyed entity's component")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int",
			setup: func() error { return Add(w, e, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "mutation_through_pointer",
			setup: func() error {
				v, _ := Get(w, e, ints.Kind())
				*v = 42
				return nil
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e, ints.Kind())
				if *v != 42 {
					t.Fatalf("expected 42, got %d", *v)
				}
			},
		},
		{
			name: "nil_value_rejected",
			setup: func() error {
				if err := Add[string](w, e, strs.Kind(), nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e, strs.Kind()) {
					t.Fatalf("nil add must not store a component")
				}
			},
		},
		{
			name:  "remove_int",
			setup: func() error { Remove(w, e, ints.Kind()); return nil },
			check: func(t *testing.T) {
				if Has(w, e, ints.Kind()) {
					t.Fatalf("expected int removed")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		if *v%2 == 0 {
			DestroyEntity(w, e)
		}
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	if got := len(Entities(w)); got != 2 {
		t.Fatalf("expected 2 survivors, got %d", got)
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(Add(w, e1, ka, intPtr(1)))
	must(Add(w, e2, ka, intPtr(2)))
	must(Add(w, e2, kb, intPtr(3)))
	must(Add(w, e2, kc, intPtr(4)))
	must(Add(w, e2, kd, intPtr(5)))
	must(Add(w, e3, kb, intPtr(6)))

	var res2 []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res2 = append(res2, e) })
	if len(res2) != 1 || res2[0] != e2 {
		t.Fatalf("ForEach2: expected only e2, got %v", res2)
	}

	var res4 []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { res4 = append(res4, e) })
	if len(res4) != 1 || res4[0] != e2 {
		t.Fatalf("ForEach4: expected only e2, got %v", res4)
	}

	DestroyEntity(w, e2)
	var res3 []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { res3 = append(res3, e) })
	if len(res3) != 0 {
		t.Fatalf("ForEach3: expected empty after destroy, got %v", res3)
	}

	missing := component.NewComponentKind[string]()
	var resMissing []Entity
	ForEach2(w, ka, missing, func(e Entity, _ *int, _ *string) { resMissing = append(resMissing, e) })
	if len(resMissing) != 0 {
		t.Fatalf("expected nothing when a store is missing, got %v", resMissing)
	}
}

func TestFirstSkipsDeadEntities(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	if _, ok := First(w, h.Kind()); ok {
		t.Fatalf("expected no entity in empty world")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, h.Kind(), intPtr(1))
	_ = Add(w, e2, h.Kind(), intPtr(2))
	DestroyEntity(w, e1)

	got, ok := First(w, h.Kind())
	if !ok || got != e2 {
		t.Fatalf("expected e2, got %v ok=%v", got, ok)
	}
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	var seen int
	s := NewScheduler(
		systemFunc(func(w *World) { w.Events().Push(Event{Type: "ping"}) }),
		systemFunc(func(w *World) { seen = len(w.Events().Peek()) }),
	)
	s.Update(w)
	if seen != 1 {
		t.Fatalf("expected later system to see 1 event, got %d", seen)
	}
	if n := len(w.Events().Peek()); n != 0 {
		t.Fatalf("expected events flushed after tick, got %d", n)
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
