package system

import (
	"image"
	"math"

	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if anim.Trigger != "" {
			anim.Play(anim.Trigger)
			anim.Trigger = ""
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing && !anim.FrameEntered {
			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame(def.FPS) {
				anim.FrameTimer = 0
				anim.Frame++
				anim.FrameEntered = true
				if anim.Frame >= def.FrameCount {
					switch {
					case def.Loop:
						anim.Frame = 0
					case def.Next != "":
						anim.Play(def.Next)
					default:
						anim.Frame = def.FrameCount - 1
						anim.Playing = false
						anim.FrameEntered = false
					}
					def = anim.Defs[anim.Current]
				}
			}
		}

		if anim.FrameEntered {
			anim.FrameEntered = false
			if name, ok := def.Events[anim.Frame]; ok && name != "" {
				w.Events().Push(ecs.Event{
					Type: ecs.EventAnimationFrame,
					Data: ecs.AnimationFrameEvent{Entity: e, Animation: anim.Current, Frame: anim.Frame, Name: name},
				})
			}
		}

		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		if anim.Sheet != nil {
			sprite.Image = anim.Sheet
		}
		sprite.Source = image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.UseSource = true
	})
}

func ticksPerFrame(fps float64) int {
	if fps <= 0 {
		return 1
	}
	ticks := int(math.Round(common.TPS / fps))
	if ticks < 1 {
		return 1
	}
	return ticks
}
