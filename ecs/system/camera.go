package system

import (
	"math"

	"github.com/milk9111/grenadier/common"
	"github.com/milk9111/grenadier/ecs"
	"github.com/milk9111/grenadier/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity

	viewW float64
	viewH float64
	// baseX/baseY is the follow position before shake is applied.
	baseX, baseY float64
	placed       bool
}

// NewCameraSystem follows the camera target inside a viewW x viewH screen.
func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{viewW: viewW, viewH: viewH}
}

// Update moves the camera transform (the top-left of the view in world
// space) toward its target and layers any active shake on top.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.placed = false
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := cs.viewW / zoom / 2
	halfH := cs.viewH / zoom / 2

	if target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind()); ok {
		goalX := target.X - halfW
		goalY := target.Y - halfH
		goalX, goalY = cs.clampToLevel(w, goalX, goalY, halfW*2, halfH*2)

		if !cs.placed || camComp.Smoothness <= 0 {
			cs.baseX, cs.baseY = goalX, goalY
			cs.placed = true
		} else {
			cs.baseX = common.Lerp(cs.baseX, goalX, camComp.Smoothness)
			cs.baseY = common.Lerp(cs.baseY, goalY, camComp.Smoothness)
		}
	}

	cs.consumeShakeRequests(w, camComp)
	updateShake(camComp)

	camTransform.X = cs.baseX + camComp.OffsetX
	camTransform.Y = cs.baseY + camComp.OffsetY
}

func (cs *CameraSystem) clampToLevel(w *ecs.World, x, y, viewW, viewH float64) (float64, float64) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return x, y
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return x, y
	}
	return clampAxis(x, viewW, bounds.Width), clampAxis(y, viewH, bounds.Height)
}

func clampAxis(pos, view, extent float64) float64 {
	if extent <= view {
		return (extent - view) / 2
	}
	return math.Max(0, math.Min(pos, extent-view))
}

func (cs *CameraSystem) consumeShakeRequests(w *ecs.World, camComp *component.Camera) {
	ecs.ForEach(w, component.CameraShakeRequestComponent.Kind(), func(e ecs.Entity, req *component.CameraShakeRequest) {
		if req.Frames > 0 && req.Intensity >= camComp.ShakeIntensity*progress(camComp) {
			camComp.ShakeFrames = req.Frames
			camComp.ShakeTotal = req.Frames
			camComp.ShakeIntensity = req.Intensity
			camComp.ShakeDirX = req.DirX
			camComp.ShakeDirY = req.DirY
		}
		ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
	})
}

func progress(camComp *component.Camera) float64 {
	if camComp.ShakeTotal <= 0 || camComp.ShakeFrames <= 0 {
		return 0
	}
	return float64(camComp.ShakeFrames) / float64(camComp.ShakeTotal)
}

// updateShake decays the shake linearly and oscillates the offset along the
// impulse direction.
func updateShake(camComp *component.Camera) {
	if camComp.ShakeFrames <= 0 {
		camComp.OffsetX = 0
		camComp.OffsetY = 0
		return
	}
	amp := camComp.ShakeIntensity * progress(camComp)
	phase := float64(camComp.ShakeTotal - camComp.ShakeFrames)
	dirX, dirY := camComp.ShakeDirX, camComp.ShakeDirY
	if l := math.Hypot(dirX, dirY); l > 0 {
		dirX /= l
		dirY /= l
		swing := math.Cos(phase * 1.9)
		camComp.OffsetX = dirX * amp * swing
		camComp.OffsetY = dirY * amp * swing
	} else {
		camComp.OffsetX = amp * math.Cos(phase*1.7)
		camComp.OffsetY = amp * math.Sin(phase*2.3)
	}
	camComp.ShakeFrames--
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

// cameraView returns the camera's top-left world position and zoom.
func cameraView(w *ecs.World) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}
