package server

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/shoring"
	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
)

type indexPage struct {
	Params      shoring.Params
	Projections []view.Projection
	Cameras     []view.Camera
	MinRadius   float64
	MaxRadius   float64
	MinOpacity  float64
	MaxOpacity  float64

	Error    string // input rejected
	Info     string // inputs incomplete
	ImageURL string
	WireURL  string
	Summary  *strut.Summary
}

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"meters": func(mm float64) float64 { return mm / 1000 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Shoring lattice</title>
<style>
body { font-family: sans-serif; display: flex; gap: 2em; margin: 1.5em; }
form { min-width: 18em; }
label { display: block; margin-top: .6em; }
textarea { width: 100%; height: 3.5em; }
.error { color: #b00020; } .info { color: #1a5fb4; }
table { border-collapse: collapse; margin-top: 1em; }
td, th { padding: .2em .8em; text-align: right; }
</style>
</head>
<body>
<form method="get" action="/">
  <h3>1. Spacings</h3>
  <label>Horizontal X (mm)<textarea name="x">{{.Params.X}}</textarea></label>
  <label>Depth Y (mm)<textarea name="y">{{.Params.Y}}</textarea></label>
  <label>Height Z (mm)<textarea name="z">{{.Params.Z}}</textarea></label>

  <h3>2. Members</h3>
  <label>Pipe radius (mm)
    <input type="range" name="radius" min="{{.MinRadius}}" max="{{.MaxRadius}}" value="{{.Params.Radius}}"></label>
  <label>Vertical <input type="color" name="color_v" value="{{.Params.Colors.Vertical}}">
    <input type="number" name="opacity_v" step="0.1" min="{{.MinOpacity}}" max="{{.MaxOpacity}}" value="{{.Params.Opacity.Vertical}}"></label>
  <label>Horizontal X <input type="color" name="color_x" value="{{.Params.Colors.HorizontalX}}">
    <input type="number" name="opacity_x" step="0.1" min="{{.MinOpacity}}" max="{{.MaxOpacity}}" value="{{.Params.Opacity.HorizontalX}}"></label>
  <label>Horizontal Y <input type="color" name="color_y" value="{{.Params.Colors.HorizontalY}}">
    <input type="number" name="opacity_y" step="0.1" min="{{.MinOpacity}}" max="{{.MaxOpacity}}" value="{{.Params.Opacity.HorizontalY}}"></label>

  <h3>3. View</h3>
  <label>Projection <select name="projection">
    {{range .Projections}}<option{{if eq .String $.Params.Projection}} selected{{end}}>{{.}}</option>{{end}}
  </select></label>
  <label>Camera <select name="camera">
    {{range .Cameras}}<option{{if eq .String $.Params.Camera}} selected{{end}}>{{.}}</option>{{end}}
  </select></label>
  <p><button type="submit">Update</button></p>
</form>
<main>
  <h2>Shoring lattice</h2>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  {{if .Info}}<p class="info">{{.Info}}</p>{{end}}
  {{if .ImageURL}}
  <img src="{{.ImageURL}}" width="800" height="800" alt="shoring model">
  <p><a href="{{.WireURL}}">3D wireframe</a></p>
  {{end}}
  {{with .Summary}}
  <table>
    <tr><th>Axis</th><th>Points</th><th>Length (mm)</th></tr>
    {{range .Axes}}<tr><td>{{.Axis}}</td><td>{{.Points}}</td><td>{{printf "%.0f" .Extent}}</td></tr>{{end}}
  </table>
  <table>
    <tr><th>Group</th><th>Struts</th><th>Total length (m)</th></tr>
    {{range .Groups}}<tr><td>{{.Group}}</td><td>{{.Count}}</td><td>{{printf "%.2f" (meters .TotalLength)}}</td></tr>{{end}}
  </table>
  {{end}}
</main>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Projections: view.Projections,
		Cameras:     view.Cameras,
		MinRadius:   shoring.MinRadius,
		MaxRadius:   shoring.MaxRadius,
		MinOpacity:  shoring.MinOpacity,
		MaxOpacity:  shoring.MaxOpacity,
	}

	p, err := paramsFromQuery(r.URL.Query())
	page.Params = p

	var m *shoring.Model
	if err == nil {
		m, err = shoring.Run(p)
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, grid.ErrMissingInput):
		page.Info = "Enter spacings for all three axes to show the model."
	case err != nil:
		page.Error = "Invalid input: " + err.Error()
		status = http.StatusBadRequest
	default:
		q := query(p)
		q.Set("k", p.Key())
		page.ImageURL = "/render/model.png?" + q.Encode()
		page.WireURL = "/render/wireframe.png?" + q.Encode()
		page.Summary = &m.Summary
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, page); err != nil {
		s.log.Error("index template", "err", err)
	}
}
