package strut

import "github.com/alexiusacademia/shoring/internal/grid"

// AxisSummary describes one grid axis
type AxisSummary struct {
	Axis   grid.Axis
	Points int     // number of grid lines
	Extent float64 // total length from the origin (mm)
}

// GroupSummary describes the struts of one group
type GroupSummary struct {
	Group       Group
	Count       int
	TotalLength float64 // mm
	Radius      float64 // mm
}

// Summary holds the grid metrics shown alongside the model
type Summary struct {
	Axes   [3]AxisSummary
	Groups [3]GroupSummary
}

// Total returns the number of struts over all groups
func (s Summary) Total() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}

// TotalLength returns the summed member length over all groups (mm)
func (s Summary) TotalLength() float64 {
	var l float64
	for _, g := range s.Groups {
		l += g.TotalLength
	}
	return l
}

// Summarize computes the grid metrics for coordinates c and the struts built from them
func Summarize(c grid.Coordinates, struts []Strut) Summary {
	var sum Summary

	for i, a := range []grid.Axis{grid.AxisX, grid.AxisY, grid.AxisZ} {
		sum.Axes[i] = AxisSummary{
			Axis:   a,
			Points: len(c.Axis(a)),
			Extent: c.Extent(a),
		}
	}

	for i, g := range Groups {
		sum.Groups[i].Group = g
	}
	for _, s := range struts {
		gs := &sum.Groups[s.Group]
		gs.Count++
		gs.TotalLength += s.Length()
		gs.Radius = s.Radius
	}

	return sum
}
