package entity

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"github.com/milk9111/grenadier/levels"
	"github.com/milk9111/grenadier/prefabs"
)

func TestApplyThrowerSpec(t *testing.T) {
	tests := []struct {
		name string
		spec prefabs.GrenadeThrowerComponentSpec
		want component.GrenadeThrower
	}{
		{
			name: "zero_values_take_defaults",
			want: component.GrenadeThrower{
				ThrowStrength:     component.DefaultThrowStrength,
				ExplosionDelay:    component.DefaultExplosionDelay,
				LinePoints:        component.DefaultLinePoints,
				TimeBetweenPoints: component.DefaultTimeBetween,
			},
		},
		{
			name: "out_of_range_is_clamped",
			spec: prefabs.GrenadeThrowerComponentSpec{
				ThrowStrength:     500,
				ExplosionDelay:    0.2,
				LinePoints:        3,
				TimeBetweenPoints: 2,
			},
			want: component.GrenadeThrower{
				ThrowStrength:     component.MaxThrowStrength,
				ExplosionDelay:    component.MinExplosionDelay,
				LinePoints:        component.MinLinePoints,
				TimeBetweenPoints: component.MaxTimeBetweenPoints,
			},
		},
		{
			name: "names_and_offsets_copied",
			spec: prefabs.GrenadeThrowerComponentSpec{
				ThrowStrength:   20,
				ExplosionDelay:  3,
				LinePoints:      40,
				ReleaseOffsetX:  12,
				ReleaseOffsetY:  -18,
				ThrowAnimation:  "throw",
				ReleaseEvent:    "let_go",
				GrenadePrefab:   "grenade.yaml",
				ExplosionPrefab: "explosion.yaml",
				ExplosionScript: "explosion.tengo",
				ExplosionSound:  "boom",
			},
			want: component.GrenadeThrower{
				ThrowStrength:     20,
				ExplosionDelay:    3,
				LinePoints:        40,
				TimeBetweenPoints: component.DefaultTimeBetween,
				ReleaseOffsetX:    12,
				ReleaseOffsetY:    -18,
				ThrowAnimation:    "throw",
				ReleaseEvent:      "let_go",
				GrenadePrefab:     "grenade.yaml",
				ExplosionPrefab:   "explosion.yaml",
				ExplosionScript:   "explosion.tengo",
				ExplosionSound:    "boom",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got component.GrenadeThrower
			applyThrowerSpec(&got, tc.spec)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("thrower mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyThrowerSpecKeepsRuntimeState(t *testing.T) {
	got := component.GrenadeThrower{Grenade: 7, ThrowAvailable: true, Aiming: true, AimX: 1}
	applyThrowerSpec(&got, prefabs.GrenadeThrowerComponentSpec{ThrowStrength: 30})
	if got.Grenade != 7 || !got.ThrowAvailable || !got.Aiming || got.AimX != 1 {
		t.Fatalf("runtime state changed: %+v", got)
	}
	if got.ThrowStrength != 30 {
		t.Fatalf("throw strength = %v, want 30", got.ThrowStrength)
	}
}

func TestBuildFromSpec(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{
		Name: "dummy",
		Components: map[string]any{
			"grenade_thrower": map[string]any{"throw_strength": 15, "line_points": 30},
			"transform":       map[string]any{"x": 10, "y": 20},
			"physics_body":    map[string]any{"radius": 4, "mass": 2, "group": 3},
			"collision_layer": map[string]any{"category": 4, "mask": 1},
			"player_tag":      map[string]any{},
		},
	}
	e, err := buildFromSpec(w, "dummy.yaml", spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("missing transform")
	}
	if diff := cmp.Diff(component.Transform{X: 10, Y: 20, ScaleX: 1, ScaleY: 1}, *transform); diff != "" {
		t.Fatalf("transform mismatch (-want +got):\n%s", diff)
	}

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatalf("missing physics body")
	}
	want := component.PhysicsBody{Radius: 4, Mass: 2, Group: 3}
	if diff := cmp.Diff(want, *body, cmpopts.IgnoreFields(component.PhysicsBody{}, "Body", "Shape")); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	thrower, ok := ecs.Get(w, e, component.GrenadeThrowerComponent.Kind())
	if !ok {
		t.Fatalf("missing thrower")
	}
	if thrower.ThrowStrength != 15 || thrower.LinePoints != 30 {
		t.Fatalf("unexpected thrower tuning %+v", thrower)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("missing player tag")
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr string
	}{
		{"empty", prefabs.EntityBuildSpec{Name: "empty"}, "does not define components"},
		{"unknown_component", prefabs.EntityBuildSpec{Components: map[string]any{"jetpack": map[string]any{}}}, `no builder for component "jetpack"`},
		{"static_and_kinematic", prefabs.EntityBuildSpec{Components: map[string]any{
			"physics_body": map[string]any{"static": true, "kinematic": true},
		}}, "both static and kinematic"},
		{"ttl_without_duration", prefabs.EntityBuildSpec{Components: map[string]any{"ttl": map[string]any{}}}, "ttl needs frames or seconds"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, "bad.yaml", tc.spec)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build left %d entities behind", n)
			}
		})
	}
}

func TestBuildOrderCoversRegistry(t *testing.T) {
	if len(componentBuildOrder) != len(componentRegistry) {
		t.Fatalf("order has %d entries, registry has %d", len(componentBuildOrder), len(componentRegistry))
	}
	for _, name := range componentBuildOrder {
		if _, ok := componentRegistry[name]; !ok {
			t.Fatalf("order names unregistered component %q", name)
		}
	}
}

func TestAddLevelGeometry(t *testing.T) {
	lvl := &levels.Level{
		Width:  4,
		Height: 3,
		Layers: [][]int{{
			0, 0, 0, 0,
			0, 0, 0, 1,
			1, 1, 1, 1,
		}},
	}
	w := ecs.NewWorld()
	if err := AddLevelGeometry(w, lvl); err != nil {
		t.Fatalf("add geometry: %v", err)
	}

	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		t.Fatalf("missing level bounds")
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if bounds.Width != 128 || bounds.Height != 96 {
		t.Fatalf("bounds = %vx%v, want 128x96", bounds.Width, bounds.Height)
	}

	var area float64
	colliders := 0
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.CollisionLayerComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody, layer *component.CollisionLayer) {
		colliders++
		if !body.Static || !body.AlignTopLeft {
			t.Fatalf("level collider must be static and top-left aligned: %+v", body)
		}
		if layer.Category != component.LayerWorld {
			t.Fatalf("level collider category = %d, want world", layer.Category)
		}
		area += body.Width * body.Height
	})
	if colliders == 0 || colliders > 2 {
		t.Fatalf("expected 1-2 merged colliders, got %d", colliders)
	}
	if want := 5.0 * 32 * 32; area != want {
		t.Fatalf("collider area = %v, want %v", area, want)
	}
}

func TestTileCenter(t *testing.T) {
	x, y := TileCenter(3, 12)
	if x != 112 || y != 400 {
		t.Fatalf("TileCenter(3, 12) = (%v, %v), want (112, 400)", x, y)
	}
}
