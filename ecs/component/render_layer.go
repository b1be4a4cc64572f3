package component

// RenderLayer sorts draw order; lower indices draw first.
type RenderLayer struct {
	Index int
}

// RenderLayerLevel is the index of the first tile layer. Prefabs place
// actors above it.
const RenderLayerLevel = 0

var RenderLayerComponent = NewComponent[RenderLayer]()
