// Package style holds the presentation templates used when footprints,
// samples and stage overlays are rendered.
//
// Templates are plain data: they are loaded once at startup and passed to
// the renderer explicitly. The geometry packages never read them.
package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is the stroke and fill styling of one layer.
type Style struct {
	Edge      RGBA    `yaml:"edge_color"`
	Face      RGBA    `yaml:"face_color"`
	Fill      bool    `yaml:"fill"`
	LineWidth float64 `yaml:"line_width"`
	Alpha     float64 `yaml:"alpha"`
	Z         int     `yaml:"z_order"`
}

// EdgeColor returns the stroke color with the layer alpha applied.
func (s Style) EdgeColor() RGBA { return s.Edge.WithAlpha(s.Alpha) }

// FaceColor returns the fill color with the layer alpha applied, or
// Transparent when the layer is not filled.
func (s Style) FaceColor() RGBA {
	if !s.Fill {
		return Transparent
	}
	return s.Face.WithAlpha(s.Alpha)
}

// Templates groups the styles of the standard layers.
type Templates struct {
	Spot   Style `yaml:"spot"`
	Sample Style `yaml:"sample"`
	Stage  Style `yaml:"stage"`
	Points Style `yaml:"points"`
}

// Defaults returns the built-in templates.
func Defaults() Templates {
	return Templates{
		Spot: Style{
			Edge:      Hex("#f0027f"),
			Face:      Hex("#009dff"),
			Fill:      true,
			LineWidth: 1,
			Alpha:     1,
			Z:         10,
		},
		Sample: Style{
			Edge:      Hex("#666666"),
			Face:      Hex("#cccccc"),
			Fill:      true,
			LineWidth: 1,
			Alpha:     1,
			Z:         5,
		},
		Stage: Style{
			Edge:      Hex("#666666"),
			Face:      Hex("#666666"),
			Fill:      false,
			LineWidth: 0.5,
			Alpha:     0.5,
			Z:         1,
		},
		Points: Style{
			Edge:      Hex("#1f77b4"),
			Face:      Hex("#1f77b4"),
			Fill:      true,
			LineWidth: 0,
			Alpha:     1,
			Z:         20,
		},
	}
}

// LoadTemplates reads a YAML template file. Keys absent from the file keep
// their default values.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("read style templates: %w", err)
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes YAML template data on top of the defaults.
func ParseTemplates(data []byte) (Templates, error) {
	t := Defaults()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Templates{}, fmt.Errorf("parse style templates: %w", err)
	}
	for name, s := range map[string]Style{"spot": t.Spot, "sample": t.Sample, "stage": t.Stage, "points": t.Points} {
		if s.Alpha < 0 || s.Alpha > 1 {
			return Templates{}, fmt.Errorf("style %s: alpha %g outside [0, 1]", name, s.Alpha)
		}
		if s.LineWidth < 0 {
			return Templates{}, fmt.Errorf("style %s: negative line width %g", name, s.LineWidth)
		}
	}
	return t, nil
}

// UnmarshalYAML decodes a hex color string.
func (c *RGBA) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}

// MarshalYAML encodes the color as a hex string.
func (c RGBA) MarshalYAML() (any, error) {
	return c.Hex(), nil
}
