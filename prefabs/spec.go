package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is a prefab: a name plus raw component blocks keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component block into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	rgba, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = rgba
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return FormatHexColor(c.RGBA), nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into straight (not
// premultiplied) RGBA.
func ParseHexColor(raw string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.RGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.RGBA{}, err
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
