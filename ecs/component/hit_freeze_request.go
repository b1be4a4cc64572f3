package component

// HitFreezeRequest asks the game loop to hold the simulation for a few
// frames. The longest pending request wins.
type HitFreezeRequest struct {
	Frames int
}

var HitFreezeRequestComponent = NewComponent[HitFreezeRequest]()
