package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grenadier/ballistics"
	"github.com/milk9111/grenadier/ecs/component"
)

// SpaceRaycaster answers ballistics raycasts against a Chipmunk space.
// Sensors never block, and shapes rejected by Filter are skipped.
type SpaceRaycaster struct {
	Space  *cp.Space
	Filter cp.ShapeFilter
	Radius float64
}

func (r SpaceRaycaster) Raycast(from, to cp.Vector) (ballistics.RayHit, bool) {
	if r.Space == nil {
		return ballistics.RayHit{}, false
	}
	info := r.Space.SegmentQueryFirst(from, to, r.Radius, r.Filter)
	if info.Shape == nil {
		return ballistics.RayHit{}, false
	}
	return ballistics.RayHit{Point: info.Point, Normal: info.Normal, Alpha: info.Alpha}, true
}

// throwFilter makes preview rays collide exactly like the thrower's grenade.
func throwFilter(group uint, category, mask uint32) cp.ShapeFilter {
	layer := component.CollisionLayer{Category: category, Mask: mask}
	return layer.ShapeFilter(group)
}
