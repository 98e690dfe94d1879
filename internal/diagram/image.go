package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Line widths for the projected pipes (points)
const (
	minLineWidth = 0.5
	maxLineWidth = 8.0
)

// pointsPerPixel converts a pixel count to a vg length at the default 96 dpi
const pointsPerPixel = vg.Inch / 96

// axisLabels names the screen axes of the orthographic presets
var axisLabels = map[view.Camera][2]string{
	view.Top:   {"X (mm)", "Y (mm)"},
	view.Front: {"X (mm)", "Z (mm)"},
	view.Right: {"Y (mm)", "Z (mm)"},
}

// PlotModel draws the projected struts as coloured lines. Line width follows
// the pipe radius and the line alpha follows the group opacity.
func PlotModel(scene Scene) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = scene.Title
	p.BackgroundColor = color.White

	segs := scene.project()
	if len(segs) == 0 {
		return nil, fmt.Errorf("nothing to draw: the model has no struts")
	}

	minX, minY, maxX, maxY := extent(segs)
	span := max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}

	// width is relative to the drawing so thin and thick pipes stay in proportion
	widthScale := 400 / span

	legend := make(map[strut.Group]*plotter.Line)
	for _, s := range segs {
		line, err := plotter.NewLine(plotter.XYs{
			{X: s.x1, Y: s.y1},
			{X: s.x2, Y: s.y2},
		})
		if err != nil {
			return nil, err
		}
		w := 2 * s.strut.Radius * widthScale
		line.LineStyle.Width = vg.Points(min(max(w, minLineWidth), maxLineWidth))
		line.LineStyle.Color = s.strut.RGBA()
		p.Add(line)
		if _, ok := legend[s.strut.Group]; !ok {
			legend[s.strut.Group] = line
		}
	}
	for _, g := range strut.Groups {
		if line, ok := legend[g]; ok {
			p.Legend.Add(g.String(), line)
		}
	}
	p.Legend.Top = true

	// equal scale on both screen axes, with a margin
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	half := 0.55 * span
	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half

	labels, ok := axisLabels[scene.View.Camera]
	if ok && scene.View.Parallel {
		// screen coordinates are centred on the model; label them as offsets
		p.X.Label.Text = labels[0]
		p.Y.Label.Text = labels[1]
	} else {
		p.HideAxes()
	}

	return p, nil
}

// ExportModel exports the projected model to an image file. The format
// follows the extension (.png, .svg, .pdf); anything else gets ".png"
// appended. It returns the path actually written.
func ExportModel(scene Scene, filename string, sizePx int) (string, error) {
	p, err := PlotModel(scene)
	if err != nil {
		return "", err
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	size := vg.Length(sizePx) * pointsPerPixel

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	return filename, p.Save(size, size, filename)
}

// WriteModel writes the projected model to w in the given format
// ("png", "svg" or "pdf")
func WriteModel(w io.Writer, scene Scene, sizePx int, format string) error {
	p, err := PlotModel(scene)
	if err != nil {
		return err
	}

	size := vg.Length(sizePx) * pointsPerPixel
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
