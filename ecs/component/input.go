package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool

	// Aim is held while the throw preview should be shown.
	Aim bool
	// AimX/AimY is a gamepad stick direction; zero means use the cursor.
	AimX float64
	AimY float64
	// CursorX/CursorY is the cursor in screen pixels.
	CursorX float64
	CursorY float64
	// ThrowReleased is true on the frame the throw button is let go.
	ThrowReleased bool
	// Focused is false while the window does not have input focus.
	Focused bool

	ToggleTrajectory bool
	VolumeDelta      float64
}

var InputComponent = NewComponent[Input]()
