package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type RenderSystem struct {
	drawList []renderItem
}

type renderItem struct {
	entity    ecs.Entity
	layer     int
	transform *component.Transform
	sprite    *component.Sprite
	flash     bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraView(w)

	r.drawList = r.drawList[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Image == nil || s.Hidden {
			return
		}
		layer := 0
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		flash := false
		if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok {
			flash = wf.On
		}
		r.drawList = append(r.drawList, renderItem{entity: e, layer: layer, transform: t, sprite: s, flash: flash})
	})
	sort.SliceStable(r.drawList, func(i, j int) bool {
		if r.drawList[i].layer != r.drawList[j].layer {
			return r.drawList[i].layer < r.drawList[j].layer
		}
		return uint64(r.drawList[i].entity) < uint64(r.drawList[j].entity)
	})

	for _, item := range r.drawList {
		t, s := item.transform, item.sprite

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)

		screen.DrawImage(img, op)
		if item.flash {
			// a second additive pass washes the sprite out toward white
			op.Blend = ebiten.BlendLighter
			screen.DrawImage(img, op)
		}
	}
}
