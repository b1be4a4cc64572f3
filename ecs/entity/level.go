package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/grenadier/assets"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"github.com/milk9111/grenadier/levels"
)

const levelTileImage = "tile.png"

// LoadLevelToWorld adds the level's tiles, merged static colliders, bounds
// and spawn markers to world.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if err := AddLevelGeometry(world, lvl); err != nil {
		return err
	}

	tileImg, err := assets.LoadImage(levelTileImage)
	if err != nil {
		return fmt.Errorf("level: load tile image: %w", err)
	}
	for layerIdx, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			continue
		}
		for idx, tileID := range layer {
			if tileID <= 0 {
				continue
			}
			x, y := idx%lvl.Width, idx/lvl.Width
			e := ecs.CreateEntity(world)
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * common.TileSize,
				Y:      float64(y) * common.TileSize,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{Image: tileImg}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.RenderLayerLevel + layerIdx}); err != nil {
				return err
			}
		}
	}

	for _, ent := range lvl.Entities {
		x, y := TileCenter(ent.X, ent.Y)
		switch strings.ToLower(ent.Type) {
		case "player":
			if _, err := NewPlayerAt(world, x, y); err != nil {
				return err
			}
		case "camera":
			if _, err := NewCameraAt(world, x, y); err != nil {
				return err
			}
		default:
		}
	}

	return nil
}

// AddLevelGeometry adds the level bounds and one static collider per merged
// block of solid tiles. It loads no images.
func AddLevelGeometry(world *ecs.World, lvl *levels.Level) error {
	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * common.TileSize,
		Height: float64(lvl.Height) * common.TileSize,
	}); err != nil {
		return err
	}
	if err := ecs.Add(world, boundsEntity, component.LevelTagComponent.Kind(), &component.LevelTag{}); err != nil {
		return err
	}

	for _, layer := range lvl.PhysicsLayers() {
		for _, r := range lvl.Solids(layer) {
			if err := addStaticCollider(world, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func addStaticCollider(world *ecs.World, r levels.Rect) error {
	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
		X:      float64(r.X) * common.TileSize,
		Y:      float64(r.Y) * common.TileSize,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        float64(r.W) * common.TileSize,
		Height:       float64(r.H) * common.TileSize,
		Friction:     0.9,
		Elasticity:   0.2,
		Static:       true,
		AlignTopLeft: true,
	}); err != nil {
		return err
	}
	return ecs.Add(world, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: component.LayerWorld})
}

// TileCenter converts tile coordinates to the world position of the tile's
// center.
func TileCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * common.TileSize, (float64(y) + 0.5) * common.TileSize
}
