package shoring

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/spacing"
	"github.com/alexiusacademia/shoring/internal/view"
)

func TestRun_Defaults(t *testing.T) {
	m, err := Run(DefaultParams())
	if err != nil {
		t.Fatalf("Run(defaults) error: %v", err)
	}

	wantX := []float64{0, 610, 1829, 3353}
	if !reflect.DeepEqual(m.Coordinates.X, wantX) {
		t.Fatalf("X = %v; want %v", m.Coordinates.X, wantX)
	}

	// 4 x-lines, 5 y-lines, 6 levels
	want := 4*5 + 6*5*3 + 6*4*4
	if len(m.Struts) != want || m.Summary.Total() != want {
		t.Fatalf("struts = %d (summary %d); want %d", len(m.Struts), m.Summary.Total(), want)
	}
	if m.View.Camera != view.Isometric || m.View.Parallel {
		t.Fatalf("view = %+v; want perspective isometric", m.View)
	}
}

func TestRun_ParseError(t *testing.T) {
	p := DefaultParams()
	p.Y = "610, abc, 1219"

	m, err := Run(p)
	if m != nil {
		t.Fatal("Run returned a model for malformed input")
	}

	var perr *spacing.ParseError
	if !errors.As(err, &perr) || perr.Token != "abc" {
		t.Fatalf("Run error = %v; want ParseError for \"abc\"", err)
	}
	var aerr *AxisError
	if !errors.As(err, &aerr) || aerr.Axis != grid.AxisY {
		t.Fatalf("Run error = %v; want AxisError on Y", err)
	}
}

func TestRun_MissingInput(t *testing.T) {
	p := DefaultParams()
	p.Z = " , "

	_, err := Run(p)
	if !errors.Is(err, grid.ErrMissingInput) {
		t.Fatalf("Run error = %v; want ErrMissingInput", err)
	}
}

func TestRun_ValidationErrors(t *testing.T) {
	tcs := []struct {
		name   string
		modify func(*Params)
	}{
		{name: "radius too small", modify: func(p *Params) { p.Radius = 5 }},
		{name: "radius too large", modify: func(p *Params) { p.Radius = 250 }},
		{name: "opacity too low", modify: func(p *Params) { p.Opacity.HorizontalX = 0.05 }},
		{name: "opacity too high", modify: func(p *Params) { p.Opacity.Vertical = 1.5 }},
		{name: "radius NaN", modify: func(p *Params) { p.Radius = math.NaN() }},
		{name: "opacity NaN", modify: func(p *Params) { p.Opacity.Vertical = math.NaN() }},
		{name: "too many struts", modify: func(p *Params) { p.X, p.Y, p.Z = oneMetreBays(300), oneMetreBays(300), oneMetreBays(300) }},
		{name: "bad colour", modify: func(p *Params) { p.Colors.HorizontalY = "green" }},
		{name: "bad camera", modify: func(p *Params) { p.Camera = "Bottom" }},
		{name: "bad projection", modify: func(p *Params) { p.Projection = "Fisheye" }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.modify(&p)
			_, err := Run(p)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Run error = %v; want *ValidationError", err)
			}
		})
	}
}

func TestGenerate_SingleBay(t *testing.T) {
	style, err := DefaultParams().Style()
	if err != nil {
		t.Fatalf("Style error: %v", err)
	}
	m, err := Generate(Spacings{X: []float64{610}, Y: []float64{914}, Z: []float64{432}}, style, view.Default())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(m.Struts) != 8 {
		t.Fatalf("struts = %d; want 8", len(m.Struts))
	}
}

func TestKey(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()

	if a.Key() != b.Key() {
		t.Fatal("Key differs for identical params")
	}
	if len(a.Key()) != 8 {
		t.Fatalf("Key length = %d; want 8", len(a.Key()))
	}

	b.Camera = view.Top.String()
	if a.Key() == b.Key() {
		t.Fatal("Key did not change with the camera")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#4169E1")
	if err != nil {
		t.Fatalf("ParseHexColor error: %v", err)
	}
	if c.R != 0x41 || c.G != 0x69 || c.B != 0xE1 || c.A != 0xFF {
		t.Fatalf("ParseHexColor = %v", c)
	}
	if HexColor(c) != "#4169E1" {
		t.Fatalf("HexColor = %s", HexColor(c))
	}
	for _, bad := range []string{"", "#123", "#GGGGGG", "red"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("ParseHexColor(%q) succeeded", bad)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := `name: Slab pour bay 3
x: "900, 900"
y: "1200"
z: "1500, 1500"
radius: 24
opacity:
  horizontal_x: 0.5
camera: top
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}
	if p.Name != "Slab pour bay 3" || p.X != "900, 900" || p.Radius != 24 {
		t.Fatalf("params = %+v", p)
	}
	if p.Opacity.HorizontalX != 0.5 || p.Opacity.Vertical != 1.0 {
		t.Fatalf("opacity = %+v; want overridden x and default vertical", p.Opacity)
	}
	if p.Colors.Vertical != "#4169E1" {
		t.Fatalf("vertical colour = %q; want the default", p.Colors.Vertical)
	}

	m, err := Run(*p)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if m.View.Camera != view.Top {
		t.Fatalf("camera = %v; want Top", m.View.Camera)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tcs := []struct {
		name string
		body string
	}{
		{name: "radius out of range", body: "radius: 1000\n"},
		{name: "radius NaN", body: "radius: .nan\n"},
		{name: "opacity NaN", body: "opacity:\n  vertical: .nan\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "params.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFromFile(path)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("LoadFromFile error = %v; want *ValidationError", err)
			}
		})
	}
}

func TestRun_SizeLimit(t *testing.T) {
	// 49 bays a side is the largest cube under the limit
	p := DefaultParams()
	p.X, p.Y, p.Z = oneMetreBays(49), oneMetreBays(49), oneMetreBays(49)
	m, err := Run(p)
	if err != nil {
		t.Fatalf("Run(49 bays) error: %v", err)
	}
	if len(m.Struts) > MaxStruts {
		t.Fatalf("struts = %d; over the limit %d", len(m.Struts), MaxStruts)
	}

	p.X = oneMetreBays(60)
	if _, err := Run(p); err == nil {
		t.Fatal("Run accepted a model over the strut limit")
	}

	// an empty axis is still missing input, not a size error
	p.Z = ""
	if _, err := Run(p); !errors.Is(err, grid.ErrMissingInput) {
		t.Fatalf("Run error = %v; want ErrMissingInput", err)
	}
}

func oneMetreBays(n int) string {
	return strings.TrimSuffix(strings.Repeat("1000,", n), ",")
}
