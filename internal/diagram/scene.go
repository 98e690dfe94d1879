package diagram

import (
	"sort"

	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scene holds everything a renderer needs for one regeneration
type Scene struct {
	Title  string
	Struts []strut.Strut
	View   view.Config
}

// segment is a strut projected onto the screen plane
type segment struct {
	strut          strut.Strut
	x1, y1, x2, y2 float64
	depth          float64 // mean depth, larger is farther
}

// bounds returns the box around every strut endpoint
func (s Scene) bounds() view.Bounds {
	pts := make([]r3.Vec, 0, 2*len(s.Struts))
	for _, st := range s.Struts {
		pts = append(pts, st.A, st.B)
	}
	return view.BoundsOf(pts...)
}

// project returns the projected segments ordered far to near
func (s Scene) project() []segment {
	pr := view.NewProjector(s.View, s.bounds())

	segs := make([]segment, len(s.Struts))
	for i, st := range s.Struts {
		x1, y1, d1 := pr.Project(st.A)
		x2, y2, d2 := pr.Project(st.B)
		segs[i] = segment{strut: st, x1: x1, y1: y1, x2: x2, y2: y2, depth: (d1 + d2) / 2}
	}

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].depth > segs[j].depth })
	return segs
}

// extent returns the 2D bounding box of projected segments
func extent(segs []segment) (minX, minY, maxX, maxY float64) {
	if len(segs) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = segs[0].x1, segs[0].x1
	minY, maxY = segs[0].y1, segs[0].y1
	for _, s := range segs {
		for _, p := range [][2]float64{{s.x1, s.y1}, {s.x2, s.y2}} {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minY, maxY = min(minY, p[1]), max(maxY, p[1])
		}
	}
	return minX, minY, maxX, maxY
}
