package shoring

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
	"gopkg.in/yaml.v3"
)

// Input bounds for the style controls
const (
	MinRadius  = 10.0  // mm
	MaxRadius  = 200.0 // mm
	MinOpacity = 0.1
	MaxOpacity = 1.0

	// MaxStruts caps the size of one model
	MaxStruts = 250_000
)

// Params is the full set of user inputs for one model
type Params struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Spacing lists as typed, e.g. "610, 1219, 1524" (mm)
	X string `yaml:"x" json:"x"`
	Y string `yaml:"y" json:"y"`
	Z string `yaml:"z" json:"z"`

	Radius float64 `yaml:"radius" json:"radius"` // mm

	Colors  Colors    `yaml:"colors" json:"colors"`
	Opacity Opacities `yaml:"opacity" json:"opacity"`

	Projection string `yaml:"projection" json:"projection"`
	Camera     string `yaml:"camera" json:"camera"`
}

// Colors holds the hex colour (#RRGGBB) of each strut group
type Colors struct {
	Vertical    string `yaml:"vertical" json:"vertical"`
	HorizontalX string `yaml:"horizontal_x" json:"horizontal_x"`
	HorizontalY string `yaml:"horizontal_y" json:"horizontal_y"`
}

// Opacities holds the opacity of each strut group
type Opacities struct {
	Vertical    float64 `yaml:"vertical" json:"vertical"`
	HorizontalX float64 `yaml:"horizontal_x" json:"horizontal_x"`
	HorizontalY float64 `yaml:"horizontal_y" json:"horizontal_y"`
}

// DefaultParams returns the starting inputs: a 3×4 bay layout, five lifts
func DefaultParams() Params {
	return Params{
		X:      "610, 1219, 1524",
		Y:      "610, 914, 1219, 1524",
		Z:      "432, 863, 1291, 1725, 1725",
		Radius: 60,
		Colors: Colors{
			Vertical:    "#4169E1",
			HorizontalX: "#DC143C",
			HorizontalY: "#228B22",
		},
		Opacity: Opacities{
			Vertical:    1.0,
			HorizontalX: 1.0,
			HorizontalY: 1.0,
		},
		Projection: view.Perspective.String(),
		Camera:     view.Isometric.String(),
	}
}

// ValidationError represents an out-of-range or malformed style or view input
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Style validates the style inputs and converts them for the generator
func (p Params) Style() (strut.Style, error) {
	if !within(p.Radius, MinRadius, MaxRadius) {
		return strut.Style{}, &ValidationError{msg: fmt.Sprintf("radius must be between %.0f and %.0f mm, got %g", MinRadius, MaxRadius, p.Radius)}
	}

	groups := []struct {
		name    string
		hex     string
		opacity float64
	}{
		{"vertical", p.Colors.Vertical, p.Opacity.Vertical},
		{"horizontal-x", p.Colors.HorizontalX, p.Opacity.HorizontalX},
		{"horizontal-y", p.Colors.HorizontalY, p.Opacity.HorizontalY},
	}

	looks := make([]strut.Appearance, len(groups))
	for i, g := range groups {
		c, err := ParseHexColor(g.hex)
		if err != nil {
			return strut.Style{}, &ValidationError{msg: fmt.Sprintf("%s colour: %v", g.name, err)}
		}
		if !within(g.opacity, MinOpacity, MaxOpacity) {
			return strut.Style{}, &ValidationError{msg: fmt.Sprintf("%s opacity must be between %.1f and %.1f, got %g", g.name, MinOpacity, MaxOpacity, g.opacity)}
		}
		looks[i] = strut.Appearance{Color: c, Opacity: g.opacity}
	}

	return strut.Style{
		Radius:      p.Radius,
		Vertical:    looks[0],
		HorizontalX: looks[1],
		HorizontalY: looks[2],
	}, nil
}

// within reports whether lo <= v <= hi. NaN is never within.
func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// View resolves the projection and camera names
func (p Params) View() (view.Config, error) {
	proj, err := view.ParseProjection(p.Projection)
	if err != nil {
		return view.Config{}, &ValidationError{msg: err.Error()}
	}
	cam, err := view.ParseCamera(p.Camera)
	if err != nil {
		return view.Config{}, &ValidationError{msg: err.Error()}
	}
	return view.Resolve(proj, cam)
}

// ParseHexColor parses "#RRGGBB" (the leading # is optional) into an opaque colour
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q, want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q, want #RRGGBB", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// HexColor formats an opaque colour as "#RRGGBB"
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// LoadFromFile loads parameters from a YAML file. Fields left out of the
// file keep their default values.
func LoadFromFile(filepath string) (*Params, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	params := DefaultParams()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath, err)
	}

	if _, err := params.Style(); err != nil {
		return nil, err
	}
	if _, err := params.View(); err != nil {
		return nil, err
	}

	return &params, nil
}
