package system

import (
	"log"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

const (
	// fuseWarningFrames is how long before detonation the grenade starts
	// blinking.
	fuseWarningFrames = common.TPS
	fuseBlinkInterval = 6
)

// SpawnFunc instantiates a prefab at a world position.
type SpawnFunc func(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error)

// FuseSystem counts down armed grenades. On detonation it spawns the
// thrower's explosion, shakes the camera, plays the blast sound and hands
// the grenade back to its owner.
type FuseSystem struct {
	spawn   SpawnFunc
	rng     *rand.Rand
	scripts map[string]*explosionScript
}

func NewFuseSystem(spawn SpawnFunc, seed int64) *FuseSystem {
	return &FuseSystem{
		spawn:   spawn,
		rng:     rand.New(rand.NewSource(seed)),
		scripts: make(map[string]*explosionScript),
	}
}

// InvalidateScripts drops compiled explosion scripts so edits are picked
// up on the next detonation.
func (fs *FuseSystem) InvalidateScripts() {
	fs.scripts = make(map[string]*explosionScript)
}

func (fs *FuseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.FuseComponent.Kind(), component.GrenadeComponent.Kind(), func(e ecs.Entity, fuse *component.Fuse, grenade *component.Grenade) {
		fuse.Frames--
		if fuse.Frames <= fuseWarningFrames && fuse.Frames > 0 && !fuse.Warned {
			fuse.Warned = true
			warn := &component.WhiteFlash{Frames: fuse.Frames, Interval: fuseBlinkInterval, On: true}
			if err := ecs.Add(w, e, component.WhiteFlashComponent.Kind(), warn); err != nil {
				panic("fuse system: add warning flash: " + err.Error())
			}
		}
		if fuse.Frames > 0 {
			return
		}
		fs.detonate(w, e, grenade)
	})
}

func (fs *FuseSystem) detonate(w *ecs.World, e ecs.Entity, grenade *component.Grenade) {
	ecs.Remove(w, e, component.FuseComponent.Kind())

	owner := ecs.Entity(grenade.Owner)
	thrower, ok := ecs.Get(w, owner, component.GrenadeThrowerComponent.Kind())
	if !ok {
		return
	}

	x, y := 0.0, 0.0
	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = transform.X, transform.Y
	}

	fx := fs.effect(thrower.ExplosionScript)

	if fs.spawn != nil && thrower.ExplosionPrefab != "" {
		explosion, err := fs.spawn(w, thrower.ExplosionPrefab, x, y)
		if err != nil {
			log.Printf("explosion: spawn %s: %v", thrower.ExplosionPrefab, err)
		} else {
			fs.burst(w, explosion, x, y, fx)
		}
	}

	requestShake(w, component.CameraShakeRequest{
		Frames:    fx.ShakeFrames,
		Intensity: fx.ShakeIntensity,
		DirX:      fx.ShakeX,
		// upward kick on a y-down screen
		DirY: -fx.ShakeY,
	})

	if fx.FreezeFrames > 0 {
		if err := ecs.Add(w, e, component.HitFreezeRequestComponent.Kind(), &component.HitFreezeRequest{Frames: fx.FreezeFrames}); err != nil {
			panic("explosion system: add hit freeze: " + err.Error())
		}
	}

	if thrower.ExplosionSound != "" {
		if audioComp, ok := ecs.Get(w, owner, component.AudioComponent.Kind()); ok {
			audioComp.Request(thrower.ExplosionSound)
		}
	}

	ResetGrenade(w, e, grenade)
	thrower.ThrowAvailable = true
}

func (fs *FuseSystem) effect(scriptPath string) ExplosionEffect {
	fallback := DefaultExplosionEffect(fs.rng)
	if scriptPath == "" {
		return fallback
	}
	script, ok := fs.scripts[scriptPath]
	if !ok {
		var err error
		script, err = loadExplosionScript(scriptPath)
		if err != nil {
			log.Printf("explosion: load script %s: %v", scriptPath, err)
		}
		// cache failures too so a broken script is reported once
		fs.scripts[scriptPath] = script
	}
	if script == nil {
		return fallback
	}
	fx, err := script.run(fs.rng.Int63(), fallback)
	if err != nil {
		log.Printf("explosion: %v", err)
	}
	return fx
}

// burst fills the explosion's particle emitter from the effect.
func (fs *FuseSystem) burst(w *ecs.World, explosion ecs.Entity, x, y float64, fx ExplosionEffect) {
	emitter, ok := ecs.Get(w, explosion, component.ParticleEmitterComponent.Kind())
	if !ok || fx.ParticleCount <= 0 {
		return
	}
	emitter.Particles = emitter.Particles[:0]
	for i := 0; i < fx.ParticleCount; i++ {
		angle := fs.rng.Float64() * 2 * math.Pi
		speed := fx.ParticleSpeed * (0.4 + 0.6*fs.rng.Float64())
		life := fx.ParticleLife * (0.6 + 0.4*fs.rng.Float64())
		emitter.Particles = append(emitter.Particles, component.Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Life: life,
			Max:  life,
			Size: 1 + fs.rng.Float64()*2,
		})
	}
}

func requestShake(w *ecs.World, req component.CameraShakeRequest) {
	if req.Frames <= 0 || req.Intensity <= 0 {
		return
	}
	target, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		target = ecs.CreateEntity(w)
	}
	if err := ecs.Add(w, target, component.CameraShakeRequestComponent.Kind(), &req); err != nil {
		panic("explosion system: add shake request: " + err.Error())
	}
}

// ResetGrenade puts a grenade back in its owner's hand: kinematic, at rest,
// at its initial rotation, with no fuse.
func ResetGrenade(w *ecs.World, e ecs.Entity, grenade *component.Grenade) {
	ecs.Remove(w, e, component.FuseComponent.Kind())
	ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
	grenade.Held = true

	x, y, hasHand := HoldPoint(w, ecs.Entity(grenade.Owner))
	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		transform.Rotation = grenade.InitialRotation
		if hasHand {
			transform.X, transform.Y = x, y
		}
	}

	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	bodyComp.Kinematic = true
	if bodyComp.Body == nil {
		return
	}
	body := bodyComp.Body
	body.SetType(cp.BODY_KINEMATIC)
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
	body.SetAngle(grenade.InitialRotation)
	if hasHand {
		body.SetPosition(cp.Vector{X: x, Y: y})
	}
}
