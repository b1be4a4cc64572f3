package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// LineRender is a world-space polyline. Only Points[:Count] are drawn, so
// the backing slice can be reused frame to frame.
type LineRender struct {
	Enabled   bool
	Points    []cp.Vector
	Count     int
	Width     float32
	Color     color.RGBA
	AntiAlias bool
}

// SetPositions replaces the visible points with pts.
func (l *LineRender) SetPositions(pts []cp.Vector) {
	l.Points = append(l.Points[:0], pts...)
	l.Count = len(pts)
}

// Visible returns the drawn portion of the line.
func (l *LineRender) Visible() []cp.Vector {
	if l.Count > len(l.Points) {
		return l.Points
	}
	return l.Points[:l.Count]
}

var LineRenderComponent = NewComponent[LineRender]()
