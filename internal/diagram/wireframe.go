package diagram

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
	"github.com/tidwall/pinhole"
)

// wireframeExtent is the half-size of the unit box the model is fitted into
const wireframeExtent = 0.6

// Wireframe builds a pinhole scene of the struts, already turned to the
// camera of the view. Each group is drawn in its own colour.
func Wireframe(scene Scene) (*pinhole.Pinhole, error) {
	if len(scene.Struts) == 0 {
		return nil, fmt.Errorf("nothing to draw: the model has no struts")
	}

	b := scene.bounds()
	pr := view.NewProjector(scene.View, b)

	fit := 1.0
	if r := b.Radius(); r > 0 {
		fit = wireframeExtent / r
	}

	p := pinhole.New()
	for _, g := range strut.Groups {
		p.Begin()
		var drawn bool
		var c strut.Strut
		for _, s := range scene.Struts {
			if s.Group != g {
				continue
			}
			a, e := pr.Camera(s.A), pr.Camera(s.B)
			// parallel projection: flatten depth so nothing shrinks with distance
			if scene.View.Parallel {
				a.Z, e.Z = 0, 0
			}
			p.DrawLine(a.X*fit, a.Y*fit, a.Z*fit, e.X*fit, e.Y*fit, e.Z*fit)
			drawn, c = true, s
		}
		if drawn {
			p.Colorize(c.RGBA())
		}
		p.End()
	}

	return p, nil
}

// SaveWireframe renders the wireframe to a PNG file
func SaveWireframe(scene Scene, filename string, sizePx int) error {
	p, err := Wireframe(scene)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return p.SavePNG(filename, sizePx, sizePx, pinhole.DefaultImageOptions)
}

// WriteWireframe renders the wireframe as PNG to w
func WriteWireframe(w io.Writer, scene Scene, sizePx int) error {
	p, err := Wireframe(scene)
	if err != nil {
		return err
	}
	return png.Encode(w, p.Image(sizePx, sizePx, pinhole.DefaultImageOptions))
}
