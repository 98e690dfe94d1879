package strut

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// HorizontalRadiusFactor scales the base radius for horizontal ledgers
const HorizontalRadiusFactor = 0.8

// Group classifies a strut by its direction
type Group int

const (
	Vertical    Group = iota // standard, runs the full height
	HorizontalX              // ledger along X
	HorizontalY              // ledger along Y
)

// Groups lists every group in generation order
var Groups = []Group{Vertical, HorizontalX, HorizontalY}

func (g Group) String() string {
	switch g {
	case Vertical:
		return "vertical"
	case HorizontalX:
		return "horizontal-x"
	case HorizontalY:
		return "horizontal-y"
	default:
		return "unknown"
	}
}

// MarshalText lets groups appear by name in JSON output
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (g *Group) UnmarshalText(text []byte) error {
	for _, candidate := range Groups {
		if candidate.String() == string(text) {
			*g = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown strut group %q", text)
}

// Appearance is the colour and opacity of one group
type Appearance struct {
	Color   color.NRGBA
	Opacity float64 // 0 transparent, 1 opaque
}

// Style holds the drawing parameters shared by all struts
type Style struct {
	Radius float64 // base pipe radius (mm)

	Vertical    Appearance
	HorizontalX Appearance
	HorizontalY Appearance
}

// Appearance returns the colour and opacity for group g
func (s Style) Appearance(g Group) Appearance {
	switch g {
	case HorizontalX:
		return s.HorizontalX
	case HorizontalY:
		return s.HorizontalY
	default:
		return s.Vertical
	}
}

// RadiusFor returns the pipe radius used by group g
func (s Style) RadiusFor(g Group) float64 {
	if g == Vertical {
		return s.Radius
	}
	return s.Radius * HorizontalRadiusFactor
}

// Strut is one cylindrical member between two grid points
type Strut struct {
	Group   Group
	A       r3.Vec // start point (mm)
	B       r3.Vec // end point (mm)
	Radius  float64
	Color   color.NRGBA
	Opacity float64
}

// Length returns the distance between the endpoints
func (s Strut) Length() float64 {
	return r3.Norm(r3.Sub(s.B, s.A))
}

// RGBA returns the strut colour with its opacity folded into the alpha channel
func (s Strut) RGBA() color.NRGBA {
	c := s.Color
	c.A = uint8(clamp01(s.Opacity)*255 + 0.5)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
