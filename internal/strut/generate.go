package strut

import (
	"github.com/alexiusacademia/shoring/internal/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Counts holds the number of struts per group
type Counts struct {
	Vertical    int `json:"vertical"`
	HorizontalX int `json:"horizontal_x"`
	HorizontalY int `json:"horizontal_y"`
}

// Total returns the sum over all groups
func (c Counts) Total() int {
	return c.Vertical + c.HorizontalX + c.HorizontalY
}

// ExpectedCount returns the strut counts for a grid with nx, ny, nz coordinates
// per axis:
//
//	vertical     = nx·ny
//	horizontal-x = nz·ny·(nx-1)
//	horizontal-y = nz·nx·(ny-1)
func ExpectedCount(nx, ny, nz int) Counts {
	return Counts{
		Vertical:    nx * ny,
		HorizontalX: nz * ny * pairs(nx),
		HorizontalY: nz * nx * pairs(ny),
	}
}

func pairs(n int) int {
	if n < 1 {
		return 0
	}
	return n - 1
}

// Generate instantiates the struts of the lattice.
//
// Verticals come first, one per (x, y) column from z=0 to the top level.
// Then ledgers along X for every (z, y) and consecutive x pair, then ledgers
// along Y for every (z, x) and consecutive y pair. The coordinates are assumed
// valid; Generate never fails.
func Generate(c grid.Coordinates, style Style) []Strut {
	n := ExpectedCount(len(c.X), len(c.Y), len(c.Z))
	struts := make([]Strut, 0, n.Total())

	top := c.Extent(grid.AxisZ)

	v := newBuilder(style, Vertical)
	for _, x := range c.X {
		for _, y := range c.Y {
			struts = append(struts, v.strut(r3.Vec{X: x, Y: y, Z: 0}, r3.Vec{X: x, Y: y, Z: top}))
		}
	}

	hx := newBuilder(style, HorizontalX)
	for _, z := range c.Z {
		for _, y := range c.Y {
			for i := 0; i < len(c.X)-1; i++ {
				struts = append(struts, hx.strut(r3.Vec{X: c.X[i], Y: y, Z: z}, r3.Vec{X: c.X[i+1], Y: y, Z: z}))
			}
		}
	}

	hy := newBuilder(style, HorizontalY)
	for _, z := range c.Z {
		for _, x := range c.X {
			for i := 0; i < len(c.Y)-1; i++ {
				struts = append(struts, hy.strut(r3.Vec{X: x, Y: c.Y[i], Z: z}, r3.Vec{X: x, Y: c.Y[i+1], Z: z}))
			}
		}
	}

	return struts
}

// builder stamps out struts of one group
type builder struct {
	group  Group
	radius float64
	look   Appearance
}

func newBuilder(style Style, g Group) builder {
	return builder{group: g, radius: style.RadiusFor(g), look: style.Appearance(g)}
}

func (b builder) strut(a, c r3.Vec) Strut {
	return Strut{
		Group:   b.group,
		A:       a,
		B:       c,
		Radius:  b.radius,
		Color:   b.look.Color,
		Opacity: b.look.Opacity,
	}
}

// CountGroups tallies struts by group
func CountGroups(struts []Strut) Counts {
	var c Counts
	for _, s := range struts {
		switch s.Group {
		case Vertical:
			c.Vertical++
		case HorizontalX:
			c.HorizontalX++
		case HorizontalY:
			c.HorizontalY++
		}
	}
	return c
}
