package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/grenadier/assets"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"github.com/milk9111/grenadier/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"camera_tag":       addCameraTag,
	"explosion_tag":    addExplosionTag,
	"player":           addPlayer,
	"input":            addInput,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"line_render":      addLineRender,
	"camera":           addCamera,
	"animation":        addAnimation,
	"audio":            addAudio,
	"collision_layer":  addCollisionLayer,
	"physics_body":     addPhysicsBody,
	"ttl":              addTTL,
	"particle_emitter": addParticleEmitter,
	"grenade_thrower":  addGrenadeThrower,
	"grenade":          addGrenade,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"explosion_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"line_render",
	"camera",
	"animation",
	"audio",
	"collision_layer",
	"physics_body",
	"ttl",
	"particle_emitter",
	"grenade_thrower",
	"grenade",
}

// BuildEntity creates an entity from a prefab file. Components are added in
// a fixed order so builders can read components added before them.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addExplosionTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ExplosionTagComponent.Kind(), &component.ExplosionTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := assets.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}
	sprite.FacingLeft = spec.FacingLeft

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addLineRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LineRenderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode line render spec: %w", err)
	}
	line := &component.LineRender{
		Width:     spec.Width,
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		AntiAlias: spec.AntiAlias,
	}
	if spec.Color != nil {
		line.Color = spec.Color.RGBA
	}
	if line.Width <= 0 {
		line.Width = 1
	}
	return ecs.Add(w, e, component.LineRenderComponent.Kind(), line)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       zoom,
		Smoothness: spec.Smoothness,
	})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	sheet, err := assets.LoadImage(spec.Sheet)
	if err != nil {
		return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
	}

	anim := &component.Animation{
		Sheet:   sheet,
		Defs:    buildAnimationDefs(spec.Defs),
		Current: spec.Current,
	}
	if _, ok := anim.Defs[anim.Current]; !ok {
		return fmt.Errorf("unknown current animation %q", spec.Current)
	}
	if spec.Playing {
		anim.Play(spec.Current)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

func buildAnimationDefs(specs map[string]prefabs.AnimationDefComponentSpec) map[string]component.AnimationDef {
	defs := make(map[string]component.AnimationDef, len(specs))
	for name, def := range specs {
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
			Next:       def.Next,
			Events:     def.Events,
		}
	}
	return defs
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponentFromSpec(spec.Clips)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponentFromSpec(clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
	for i, clip := range clips {
		player, err := assets.LoadAudioPlayer(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
	}
	return comp, nil
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: spec.Category,
		Mask:     spec.Mask,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Static && spec.Kinematic {
		return fmt.Errorf("physics body cannot be both static and kinematic")
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		spec.Width, spec.Height = common.TileSize, common.TileSize
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Kinematic:     spec.Kinematic,
		AlignTopLeft:  spec.AlignTopLeft,
		FixedRotation: spec.FixedRotation,
		Group:         spec.Group,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	frames := spec.Frames
	if frames <= 0 && spec.Seconds > 0 {
		frames = common.SecondsToFrames(spec.Seconds)
	}
	if frames <= 0 {
		return fmt.Errorf("ttl needs frames or seconds")
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames})
}

func addParticleEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticleEmitterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particle emitter spec: %w", err)
	}
	emitter := &component.ParticleEmitter{
		Color:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Damping: spec.Damping,
		Gravity: spec.Gravity,
	}
	if spec.Color != nil {
		emitter.Color = spec.Color.RGBA
	}
	return ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), emitter)
}

func addGrenadeThrower(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GrenadeThrowerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode grenade thrower spec: %w", err)
	}
	thrower := &component.GrenadeThrower{}
	applyThrowerSpec(thrower, spec)
	return ecs.Add(w, e, component.GrenadeThrowerComponent.Kind(), thrower)
}

// applyThrowerSpec copies tuning from spec, filling zero values with the
// component defaults and clamping the rest. Runtime state is untouched.
func applyThrowerSpec(t *component.GrenadeThrower, spec prefabs.GrenadeThrowerComponentSpec) {
	t.ThrowStrength = orDefault(spec.ThrowStrength, component.DefaultThrowStrength)
	t.ExplosionDelay = orDefault(spec.ExplosionDelay, component.DefaultExplosionDelay)
	t.TimeBetweenPoints = orDefault(spec.TimeBetweenPoints, component.DefaultTimeBetween)
	t.LinePoints = spec.LinePoints
	if t.LinePoints == 0 {
		t.LinePoints = component.DefaultLinePoints
	}
	t.Clamp()

	t.ReleaseOffsetX = spec.ReleaseOffsetX
	t.ReleaseOffsetY = spec.ReleaseOffsetY
	t.ThrowAnimation = spec.ThrowAnimation
	t.ReleaseEvent = spec.ReleaseEvent
	t.GrenadePrefab = spec.GrenadePrefab
	t.ExplosionPrefab = spec.ExplosionPrefab
	t.ExplosionScript = spec.ExplosionScript
	t.ExplosionSound = spec.ExplosionSound
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func addGrenade(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GrenadeComponent.Kind(), &component.Grenade{Held: true})
}
