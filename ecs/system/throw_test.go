package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// throwNow aims right with the stick and releases the throw button.
func throwNow(f *throwFixture) {
	input, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	input.Aim = true
	input.AimX, input.AimY = 1, 0
	input.ThrowReleased = true
	NewAimSystem().Update(f.w)
	NewThrowReleaseSystem().Update(f.w)
	f.w.Events().Drain()
	input.ThrowReleased = false
}

func TestThrowConsumesAvailability(t *testing.T) {
	f := newThrowFixture(t)
	throwNow(f)

	thrower := f.thrower(t)
	if thrower.ThrowAvailable {
		t.Fatalf("ThrowAvailable must be false while the grenade is live")
	}
	grenade, body := f.grenadeState(t)
	if grenade.Held {
		t.Fatalf("grenade still held after release")
	}
	if body.Kinematic || body.Body.GetType() != cp.BODY_DYNAMIC {
		t.Fatalf("released grenade must be dynamic")
	}
	want := thrower.ThrowStrength * common.PixelsPerMeter / body.Mass
	if v := body.Body.Velocity(); math.Abs(v.X-want) > 1e-6 || math.Abs(v.Y) > 1e-6 {
		t.Fatalf("launch velocity = %v, want (%v, 0)", v, want)
	}
	fuse, ok := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
	if !ok {
		t.Fatalf("released grenade has no fuse")
	}
	if want := common.SecondsToFrames(thrower.ExplosionDelay); fuse.Frames != want {
		t.Fatalf("fuse = %d frames, want %d", fuse.Frames, want)
	}
}

func TestThrowIgnoredWhileGrenadeLive(t *testing.T) {
	f := newThrowFixture(t)
	throwNow(f)
	fuse, _ := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
	fuse.Frames = 50

	throwNow(f)
	fuse, ok := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
	if !ok || fuse.Frames != 50 {
		t.Fatalf("second throw re-armed the live grenade: %+v", fuse)
	}
}

func TestThrowNeedsFocus(t *testing.T) {
	f := newThrowFixture(t)
	input, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	input.Focused = false
	input.Aim = true
	input.ThrowReleased = true
	NewAimSystem().Update(f.w)

	thrower := f.thrower(t)
	if thrower.Aiming || !thrower.ThrowAvailable {
		t.Fatalf("unfocused input must neither aim nor throw: %+v", thrower)
	}
	if n := len(f.w.Events().Peek()); n != 0 {
		t.Fatalf("unfocused throw pushed %d events", n)
	}
}

func TestFuseResetsGrenade(t *testing.T) {
	f := newThrowFixture(t)
	throwNow(f)

	_, body := f.grenadeState(t)
	body.Body.SetPosition(cp.Vector{X: 400, Y: 120})
	body.Body.SetAngle(1.2)

	fuses := NewFuseSystem(nil, 1)
	frames := common.SecondsToFrames(f.thrower(t).ExplosionDelay)
	for i := 0; i < frames-1; i++ {
		fuses.Update(f.w)
	}
	if f.thrower(t).ThrowAvailable {
		t.Fatalf("grenade reset one frame early")
	}

	fuses.Update(f.w)
	thrower := f.thrower(t)
	if !thrower.ThrowAvailable {
		t.Fatalf("ThrowAvailable must be true after the explosion")
	}
	grenade, body := f.grenadeState(t)
	if !grenade.Held || !body.Kinematic || body.Body.GetType() != cp.BODY_KINEMATIC {
		t.Fatalf("grenade not back in hand: held=%v kinematic=%v", grenade.Held, body.Kinematic)
	}
	if ecs.Has(f.w, f.grenade, component.FuseComponent.Kind()) {
		t.Fatalf("fuse left on reset grenade")
	}
	if got := body.Body.Position(); got != (cp.Vector{X: 100, Y: 300}) {
		t.Fatalf("grenade at %v, want the hand", got)
	}
	if got := body.Body.Angle(); got != grenade.InitialRotation {
		t.Fatalf("grenade angle = %v, want %v", got, grenade.InitialRotation)
	}
	if v := body.Body.Velocity(); v.LengthSq() != 0 {
		t.Fatalf("grenade still moving: %v", v)
	}
	if !ecs.IsAlive(f.w, f.grenade) {
		t.Fatalf("the pooled grenade must never be destroyed")
	}

	shakes := 0
	ecs.ForEach(f.w, component.CameraShakeRequestComponent.Kind(), func(_ ecs.Entity, req *component.CameraShakeRequest) {
		shakes++
		if req.DirY >= 0 {
			t.Fatalf("explosion shake must kick upward, got %+v", req)
		}
	})
	if shakes != 1 {
		t.Fatalf("expected one shake request, got %d", shakes)
	}
}

func TestResetUsesCurrentReleaseOffset(t *testing.T) {
	f := newThrowFixture(t)
	throwNow(f)

	thrower := f.thrower(t)
	thrower.ReleaseOffsetX, thrower.ReleaseOffsetY = 10, -8
	fuse, _ := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
	fuse.Frames = 1
	NewFuseSystem(nil, 1).Update(f.w)

	_, body := f.grenadeState(t)
	if got := body.Body.Position(); got != (cp.Vector{X: 110, Y: 292}) {
		t.Fatalf("grenade at %v, want the retuned hand at (110, 292)", got)
	}
}

func TestFailedReleaseRestoresAvailability(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *throwFixture)
		want  bool
	}{
		{
			name:  "missing_grenade",
			setup: func(f *throwFixture) { ecs.DestroyEntity(f.w, f.grenade) },
			want:  true,
		},
		{
			name:  "grenade_without_body",
			setup: func(f *throwFixture) { ecs.Remove(f.w, f.grenade, component.PhysicsBodyComponent.Kind()) },
			want:  true,
		},
		{
			name:  "grenade_in_flight",
			setup: func(f *throwFixture) { throwNow(f) },
			want:  false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newThrowFixture(t)
			tc.setup(f)

			thrower := f.thrower(t)
			thrower.ThrowAvailable = false
			f.w.Events().Push(releaseEvent(f.player, thrower))
			NewThrowReleaseSystem().Update(f.w)
			f.w.Events().Drain()

			if got := f.thrower(t).ThrowAvailable; got != tc.want {
				t.Fatalf("ThrowAvailable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFuseSpawnsExplosionAtGrenade(t *testing.T) {
	f := newThrowFixture(t)
	f.thrower(t).ExplosionPrefab = "boom.yaml"
	throwNow(f)
	transform, _ := ecs.Get(f.w, f.grenade, component.TransformComponent.Kind())
	transform.X, transform.Y = 321, 123
	fuse, _ := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
	fuse.Frames = 1

	var spawned []cp.Vector
	spawn := func(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
		if prefab != "boom.yaml" {
			t.Fatalf("spawned %q", prefab)
		}
		spawned = append(spawned, cp.Vector{X: x, Y: y})
		e := ecs.CreateEntity(w)
		return e, ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), &component.ParticleEmitter{})
	}
	NewFuseSystem(spawn, 7).Update(f.w)

	if len(spawned) != 1 || spawned[0] != (cp.Vector{X: 321, Y: 123}) {
		t.Fatalf("explosion spawned at %v, want one at (321, 123)", spawned)
	}
	count := 0
	ecs.ForEach(f.w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, emitter *component.ParticleEmitter) {
		count += len(emitter.Particles)
	})
	if count == 0 {
		t.Fatalf("explosion burst produced no particles")
	}
}

func TestThrowAfterResetWorksAgain(t *testing.T) {
	f := newThrowFixture(t)
	fuses := NewFuseSystem(nil, 3)
	for round := 0; round < 3; round++ {
		throwNow(f)
		if f.thrower(t).ThrowAvailable {
			t.Fatalf("round %d: throw did not consume availability", round)
		}
		fuse, ok := ecs.Get(f.w, f.grenade, component.FuseComponent.Kind())
		if !ok {
			t.Fatalf("round %d: no fuse armed", round)
		}
		fuse.Frames = 1
		fuses.Update(f.w)
		if !f.thrower(t).ThrowAvailable {
			t.Fatalf("round %d: grenade not returned", round)
		}
	}
}

func TestFuseBlinksBeforeDetonation(t *testing.T) {
	f := newThrowFixture(t)
	throwNow(f)
	fuses := NewFuseSystem(nil, 1)
	frames := common.SecondsToFrames(f.thrower(t).ExplosionDelay)
	for i := 0; i < frames-fuseWarningFrames-1; i++ {
		fuses.Update(f.w)
	}
	if ecs.Has(f.w, f.grenade, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("grenade blinking too early")
	}
	fuses.Update(f.w)
	if !ecs.Has(f.w, f.grenade, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("grenade not blinking in its last second")
	}
	for i := 0; i < fuseWarningFrames; i++ {
		fuses.Update(f.w)
	}
	if ecs.Has(f.w, f.grenade, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("reset grenade still blinking")
	}
	if !ecs.Has(f.w, f.grenade, component.HitFreezeRequestComponent.Kind()) {
		t.Fatalf("detonation did not request a hit freeze")
	}
}
