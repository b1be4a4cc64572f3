package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width/Height describe a box; a positive Radius makes a circle instead.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Width        float64
	Height       float64
	Radius       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	Kinematic    bool
	AlignTopLeft bool
	// FixedRotation gives dynamic bodies an infinite moment.
	FixedRotation bool
	// Group puts shapes in a Chipmunk collision group; shapes sharing a
	// non-zero group never collide with each other.
	Group uint
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
