package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

// LineRenderSystem draws enabled world-space polylines over the sprites.
type LineRenderSystem struct{}

func NewLineRenderSystem() *LineRenderSystem {
	return &LineRenderSystem{}
}

func (l *LineRenderSystem) Update(w *ecs.World) {}

func (l *LineRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	camX, camY, zoom := cameraView(w)
	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, line *component.LineRender) {
		pts := line.Visible()
		if !line.Enabled || len(pts) < 2 {
			return
		}
		width := line.Width
		if width <= 0 {
			width = 1
		}
		c := color.NRGBA{R: line.Color.R, G: line.Color.G, B: line.Color.B, A: line.Color.A}
		if line.Color == (color.RGBA{}) {
			c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}

		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			vector.StrokeLine(screen,
				float32((a.X-camX)*zoom), float32((a.Y-camY)*zoom),
				float32((b.X-camX)*zoom), float32((b.Y-camY)*zoom),
				width, c, line.AntiAlias)
		}
		end := pts[len(pts)-1]
		vector.FillCircle(screen, float32((end.X-camX)*zoom), float32((end.Y-camY)*zoom), width*1.5, c, line.AntiAlias)
	})
}
