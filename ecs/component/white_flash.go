package component

// WhiteFlash blinks a sprite. Timing is in frames; the flash system toggles
// On every Interval frames and removes the component when Frames runs out.
type WhiteFlash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
