package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 14

// HUDSystem prints the thrower status and controls in the screen corner.
type HUDSystem struct {
	face     text.Face
	settings Settings
}

func NewHUDSystem(settings Settings) *HUDSystem {
	return &HUDSystem{
		face:     text.NewGoXFace(basicfont.Face7x13),
		settings: settings,
	}
}

func (h *HUDSystem) Update(w *ecs.World) {}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	thrower, ok := ecs.Get(w, player, component.GrenadeThrowerComponent.Kind())
	if !ok {
		return
	}

	lines := []string{HUDStatus(w, thrower)}
	lines = append(lines, fmt.Sprintf("strength %.0f  fuse %.1fs", thrower.ThrowStrength, thrower.ExplosionDelay))
	if h.settings != nil {
		preview := "on"
		if !h.settings.ShowTrajectory() {
			preview = "off"
		}
		lines = append(lines, fmt.Sprintf("preview %s [T]  volume %.0f%% [-/=]", preview, h.settings.Volume()*100))
	}
	lines = append(lines, "RMB aim  LMB throw  A/D move  space jump")

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, h.face, op)
	}
}

// HUDStatus describes the thrower's grenade state.
func HUDStatus(w *ecs.World, thrower *component.GrenadeThrower) string {
	if thrower.ThrowAvailable {
		return "grenade ready"
	}
	if fuse, ok := ecs.Get(w, ecs.Entity(thrower.Grenade), component.FuseComponent.Kind()); ok {
		return fmt.Sprintf("grenade live %.1fs", float64(fuse.Frames)/common.TPS)
	}
	return "throwing"
}
