package component

import "github.com/jakecoffman/cp"

// Transform is an entity's world position in pixels and rotation in radians.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
