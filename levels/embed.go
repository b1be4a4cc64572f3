package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultLevel = "arena"

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a placed spawn marker in tile coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Rect is an axis-aligned block of solid tiles in tile coordinates.
type Rect struct {
	X, Y, W, H int
}

// Load reads a level by basename; the .json suffix is optional.
func Load(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return LoadLevelFromFS(LevelsFS, name)
}

func LoadLevelFromFS(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %s: invalid size %dx%d", name, lvl.Width, lvl.Height)
	}
	return &lvl, nil
}

// Spawn returns the first entity of the given type.
func (l *Level) Spawn(typ string) (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

// PhysicsLayers returns the layers that carry collision. Without layer
// metadata every layer collides.
func (l *Level) PhysicsLayers() [][]int {
	var out [][]int
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			continue
		}
		if len(l.LayerMeta) > 0 && (i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics) {
			continue
		}
		out = append(out, layer)
	}
	return out
}

// Solids greedily merges the non-zero tiles of layer into rectangles: each
// run is widened along the row first, then grown downward while every tile
// under it is still solid.
func (l *Level) Solids(layer []int) []Rect {
	if len(layer) != l.Width*l.Height {
		return nil
	}
	processed := make([]bool, len(layer))
	solid := func(x, y int) bool {
		idx := y*l.Width + x
		return !processed[idx] && layer[idx] != 0
	}

	var rects []Rect
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !solid(x, y) {
				continue
			}

			w := 1
			for x+w < l.Width && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return rects
}
