package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexiusacademia/shoring/internal/diagram"
	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/shoring"
	"github.com/alexiusacademia/shoring/internal/spacing"
	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/gorilla/mux"
)

// Image size limits for the render endpoints (px)
const (
	minImageSize = 100
	maxImageSize = 2400
)

// paramsFromQuery overlays the query fields on the default parameters
func paramsFromQuery(q url.Values) (shoring.Params, error) {
	p := shoring.DefaultParams()

	strs := map[string]*string{
		"x":          &p.X,
		"y":          &p.Y,
		"z":          &p.Z,
		"color_v":    &p.Colors.Vertical,
		"color_x":    &p.Colors.HorizontalX,
		"color_y":    &p.Colors.HorizontalY,
		"projection": &p.Projection,
		"camera":     &p.Camera,
	}
	for key, dst := range strs {
		if q.Has(key) {
			*dst = q.Get(key)
		}
	}

	nums := map[string]*float64{
		"radius":    &p.Radius,
		"opacity_v": &p.Opacity.Vertical,
		"opacity_x": &p.Opacity.HorizontalX,
		"opacity_y": &p.Opacity.HorizontalY,
	}
	for key, dst := range nums {
		if v := q.Get(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("%s: %q is not a number", key, v)
			}
			*dst = f
		}
	}

	return p, nil
}

// query encodes p in the form read by paramsFromQuery
func query(p shoring.Params) url.Values {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return url.Values{
		"x":          {p.X},
		"y":          {p.Y},
		"z":          {p.Z},
		"radius":     {f(p.Radius)},
		"color_v":    {p.Colors.Vertical},
		"color_x":    {p.Colors.HorizontalX},
		"color_y":    {p.Colors.HorizontalY},
		"opacity_v":  {f(p.Opacity.Vertical)},
		"opacity_x":  {f(p.Opacity.HorizontalX)},
		"opacity_y":  {f(p.Opacity.HorizontalY)},
		"projection": {p.Projection},
		"camera":     {p.Camera},
	}
}

// statusFor maps a generation error to an HTTP status
func statusFor(err error) int {
	var perr *spacing.ParseError
	var verr *shoring.ValidationError
	switch {
	case errors.Is(err, grid.ErrMissingInput):
		return http.StatusUnprocessableEntity
	case errors.As(err, &perr), errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) imageSize(r *http.Request) int {
	size := s.settings.ImageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		size = v
	}
	return min(max(size, minImageSize), maxImageSize)
}

// model parses the request and regenerates the lattice. On failure it has
// already written the error response.
func (s *Server) model(w http.ResponseWriter, r *http.Request) (shoring.Params, *shoring.Model, bool) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return p, nil, false
	}

	m, err := shoring.Run(p)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return p, nil, false
	}
	return p, m, true
}

// notModified sets the ETag from the parameter key and reports whether the
// client already holds this image
func notModified(w http.ResponseWriter, r *http.Request, p shoring.Params) bool {
	etag := `"` + p.Key() + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func sceneOf(m *shoring.Model) diagram.Scene {
	return diagram.Scene{Struts: m.Struts, View: m.View}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	p, m, ok := s.model(w, r)
	if !ok {
		return
	}
	if notModified(w, r, p) {
		return
	}

	format := mux.Vars(r)["format"]
	contentType := "image/png"
	if format == "svg" {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)

	if err := diagram.WriteModel(w, sceneOf(m), s.imageSize(r), format); err != nil {
		s.log.Error("render failed", "key", p.Key(), "err", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	s.log.Debug("rendered", "key", p.Key(), "struts", len(m.Struts), "format", format)
}

func (s *Server) handleWireframe(w http.ResponseWriter, r *http.Request) {
	p, m, ok := s.model(w, r)
	if !ok {
		return
	}
	if notModified(w, r, p) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := diagram.WriteWireframe(w, sceneOf(m), s.imageSize(r)); err != nil {
		s.log.Error("wireframe failed", "key", p.Key(), "err", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
	}
}

// strutJSON is the wire form of a strut
type strutJSON struct {
	Group   strut.Group `json:"group"`
	A       [3]float64  `json:"a"`
	B       [3]float64  `json:"b"`
	Radius  float64     `json:"radius"`
	Color   string      `json:"color"`
	Opacity float64     `json:"opacity"`
}

type viewJSON struct {
	Projection string `json:"projection"`
	Camera     string `json:"camera"`
	Parallel   bool   `json:"parallel"`
}

type modelJSON struct {
	Key         string       `json:"key"`
	Coordinates [3][]float64 `json:"coordinates"`
	View        viewJSON     `json:"view"`
	Counts      strut.Counts `json:"counts"`
	Struts      []strutJSON  `json:"struts"`
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	var (
		p   shoring.Params
		m   *shoring.Model
		err error
	)

	if r.Method == http.MethodPost {
		p = shoring.DefaultParams()
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if m, err = shoring.Run(p); err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
	} else {
		var ok bool
		if p, m, ok = s.model(w, r); !ok {
			return
		}
	}

	out := modelJSON{
		Key:         p.Key(),
		Coordinates: [3][]float64{m.Coordinates.X, m.Coordinates.Y, m.Coordinates.Z},
		View: viewJSON{
			Projection: m.View.Projection.String(),
			Camera:     m.View.Camera.String(),
			Parallel:   m.View.Parallel,
		},
		Counts: strut.CountGroups(m.Struts),
		Struts: make([]strutJSON, len(m.Struts)),
	}
	for i, st := range m.Struts {
		out.Struts[i] = strutJSON{
			Group:   st.Group,
			A:       [3]float64{st.A.X, st.A.Y, st.A.Z},
			B:       [3]float64{st.B.X, st.B.Y, st.B.Z},
			Radius:  st.Radius,
			Color:   shoring.HexColor(st.Color),
			Opacity: st.Opacity,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.log.Error("encode model", "err", err)
	}
}
