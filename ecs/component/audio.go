package component

import "github.com/hajimehoshi/ebiten/v2/audio"

type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request marks the named clip to start on the next audio tick.
func (a *Audio) Request(name string) bool {
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
