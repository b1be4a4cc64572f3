package component

// Fuse counts down frames until the entity detonates.
type Fuse struct {
	Frames int
	// Warned is set once the pre-detonation blink has started.
	Warned bool
}

var FuseComponent = NewComponent[Fuse]()
