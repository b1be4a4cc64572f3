package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	// Grounded is refreshed by the physics system each step.
	Grounded bool
}

var PlayerComponent = NewComponent[Player]()
