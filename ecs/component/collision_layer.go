package component

import "github.com/jakecoffman/cp"

const maxCollisionLayers = 32

// CollisionLayer declares an entity's collision category and the categories
// it collides with, mirroring a per-layer collision matrix row.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// it is treated as category 1.
	Category uint32
	// Mask is a bitmask of categories this entity collides with. If zero,
	// it is treated as all bits set.
	Mask uint32
}

const (
	LayerWorld   uint32 = 1 << 0
	LayerPlayer  uint32 = 1 << 1
	LayerGrenade uint32 = 1 << 2
)

func (l CollisionLayer) category() uint32 {
	if l.Category == 0 {
		return 1
	}
	return l.Category
}

// IgnoresLayer reports whether collisions with layer index i are disabled.
func (l CollisionLayer) IgnoresLayer(i int) bool {
	if i < 0 || i >= maxCollisionLayers {
		return true
	}
	if l.Mask == 0 {
		return false
	}
	return l.Mask&(1<<uint(i)) == 0
}

// CollisionMask folds every non-ignored layer into one bitmask.
func (l CollisionLayer) CollisionMask() uint32 {
	var mask uint32
	for i := 0; i < maxCollisionLayers; i++ {
		if !l.IgnoresLayer(i) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// ShapeFilter converts the layer into a Chipmunk filter in the given group.
func (l CollisionLayer) ShapeFilter(group uint) cp.ShapeFilter {
	return cp.NewShapeFilter(group, uint(l.category()), uint(l.CollisionMask()))
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
