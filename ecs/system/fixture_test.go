package system

import (
	"image/color"
	"testing"

	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type throwFixture struct {
	w       *ecs.World
	physics *PhysicsSystem
	player  ecs.Entity
	grenade ecs.Entity
}

func (f *throwFixture) thrower(t *testing.T) *component.GrenadeThrower {
	t.Helper()
	thrower, ok := ecs.Get(f.w, f.player, component.GrenadeThrowerComponent.Kind())
	if !ok {
		t.Fatalf("player has no thrower")
	}
	return thrower
}

func (f *throwFixture) grenadeState(t *testing.T) (*component.Grenade, *component.PhysicsBody) {
	t.Helper()
	grenade, ok := ecs.Get(f.w, f.grenade, component.GrenadeComponent.Kind())
	if !ok {
		t.Fatalf("grenade entity lost its grenade component")
	}
	body, ok := ecs.Get(f.w, f.grenade, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatalf("grenade entity lost its body")
	}
	return grenade, body
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// newThrowFixture builds a player standing at (100, 300) holding a grenade,
// with physics bodies already created. The hand sits at the player's
// center.
func newThrowFixture(t *testing.T) *throwFixture {
	t.Helper()
	w := ecs.NewWorld()
	f := &throwFixture{w: w, physics: NewPhysicsSystem()}

	f.player = ecs.CreateEntity(w)
	mustAdd(t, w, f.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, f.player, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 300, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, f.player, component.SpriteComponent.Kind(), &component.Sprite{})
	mustAdd(t, w, f.player, component.InputComponent.Kind(), &component.Input{Focused: true})
	mustAdd(t, w, f.player, component.LineRenderComponent.Kind(), &component.LineRender{Width: 2})
	mustAdd(t, w, f.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: 22, Height: 46, Mass: 1, FixedRotation: true, Group: 1,
	})
	mustAdd(t, w, f.player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer, Mask: component.LayerWorld,
	})

	f.grenade = ecs.CreateEntity(w)
	mustAdd(t, w, f.grenade, component.GrenadeComponent.Kind(), &component.Grenade{Owner: uint64(f.player), Held: true})
	mustAdd(t, w, f.grenade, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 300, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, f.grenade, component.SpriteComponent.Kind(), &component.Sprite{})
	mustAdd(t, w, f.grenade, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: 5, Mass: 1, Kinematic: true, Group: 1,
	})
	layer := component.CollisionLayer{Category: component.LayerGrenade, Mask: component.LayerWorld}
	mustAdd(t, w, f.grenade, component.CollisionLayerComponent.Kind(), &layer)

	mustAdd(t, w, f.player, component.GrenadeThrowerComponent.Kind(), &component.GrenadeThrower{
		ThrowStrength:     10,
		ExplosionDelay:    2,
		LinePoints:        30,
		TimeBetweenPoints: 0.05,
		Grenade:           uint64(f.grenade),
		ThrowAvailable:    true,
		AimX:              1,
		CollisionCategory: layer.Category,
		CollisionMask:     layer.CollisionMask(),
		Group:             1,
	})

	f.physics.Sync(w)
	return f
}

// addWall adds a static world box with its top-left at (x, y).
func (f *throwFixture) addWall(t *testing.T, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(f.w)
	mustAdd(t, f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, f.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: width, Height: height, Static: true, AlignTopLeft: true,
	})
	mustAdd(t, f.w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerWorld})
	f.physics.Sync(f.w)
	return e
}

type fakeSettings struct {
	show   bool
	volume float64
}

func (s *fakeSettings) ShowTrajectory() bool        { return s.show }
func (s *fakeSettings) TrajectoryColor() color.RGBA { return color.RGBA{} }
func (s *fakeSettings) Volume() float64             { return s.volume }
func (s *fakeSettings) SetShowTrajectory(v bool)    { s.show = v }
func (s *fakeSettings) SetVolume(v float64)         { s.volume = v }
