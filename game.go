package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"github.com/milk9111/grenadier/ecs/entity"
	"github.com/milk9111/grenadier/ecs/system"
	"github.com/milk9111/grenadier/levels"
	"github.com/milk9111/grenadier/prefabs"
	"github.com/milk9111/grenadier/settings"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Config struct {
	LevelName string
	Debug     bool
	// Watch reloads thrower tuning and explosion scripts from prefabs/ on
	// disk while the game runs.
	Watch    bool
	Seed     int64
	Settings *settings.Manager
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	draw      []ecs.Drawer

	// freeze holds the simulation for a few frames after a detonation.
	freeze int

	input   *system.InputSystem
	physics *system.PhysicsSystem
	fuses   *system.FuseSystem
	debug   *system.PhysicsDebugSystem
	watcher *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Settings == nil {
		cfg.Settings = settings.NewManager(nil)
	}

	lvl, err := levels.Load(cfg.LevelName)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", cfg.LevelName, err)
	}

	world := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return nil, fmt.Errorf("build level: %w", err)
	}
	if _, ok := ecs.First(world, component.CameraComponent.Kind()); !ok {
		if _, err := entity.NewCamera(world); err != nil {
			return nil, err
		}
	}

	g := &Game{
		world:   world,
		input:   system.NewInputSystem(),
		physics: system.NewPhysicsSystem(),
		fuses:   system.NewFuseSystem(entity.NewExplosionAt, cfg.Seed),
	}
	g.debug = system.NewPhysicsDebugSystem(g.physics, cfg.Debug)

	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewSettingsSystem(cfg.Settings),
		system.NewPlayerControllerSystem(),
		system.NewAimSystem(),
		system.NewTrajectorySystem(g.physics, cfg.Settings),
		system.NewAnimationSystem(),
		system.NewThrowReleaseSystem(),
		g.physics,
		g.fuses,
		system.NewParticleSystem(),
		system.NewTTLSystem(),
		system.NewWhiteFlashSystem(),
		system.NewCameraSystem(baseWidth, baseHeight),
		system.NewAudioSystem(cfg.Settings),
		system.NewHitFreezeSystem(g.startFreeze),
	)
	g.draw = []ecs.Drawer{
		system.NewRenderSystem(),
		system.NewLineRenderSystem(),
		system.NewParticleSystem(),
		system.NewHUDSystem(cfg.Settings),
		g.debug,
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug.Enabled = !g.debug.Enabled
	}
	g.pollPrefabChanges()
	if g.freeze > 0 {
		g.freeze--
		g.input.Latch()
		return nil
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) startFreeze(frames int) {
	if frames > g.freeze {
		g.freeze = frames
	}
}

func (g *Game) pollPrefabChanges() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("prefab watcher: %v", err)
	}
	for _, path := range changed {
		switch name := prefabs.BaseName(path); name {
		case entity.PlayerPrefab:
			n, err := entity.ApplyThrowerTuning(g.world, name)
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			log.Printf("reloaded %s: %d thrower(s) retuned", name, n)
		default:
			g.fuses.InvalidateScripts()
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, d := range g.draw {
		d.Draw(g.world, screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
