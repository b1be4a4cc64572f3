package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
	// Next is played when a non-looping animation finishes.
	Next string
	// Events names frame events; entering frame k pushes Events[k].
	Events map[int]string
}

type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
	// Trigger is consumed by the animation system on its next tick and
	// switches to the named animation.
	Trigger string
	// FrameEntered marks that Frame has not had its events emitted yet.
	FrameEntered bool
}

// SetTrigger queues a switch to name.
func (a *Animation) SetTrigger(name string) {
	a.Trigger = name
}

// Play switches to name immediately and rewinds it. Unknown names are
// ignored.
func (a *Animation) Play(name string) {
	if _, ok := a.Defs[name]; !ok {
		return
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	a.FrameEntered = true
}

var AnimationComponent = NewComponent[Animation]()
