package view

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Projection selects perspective or parallel (orthographic) projection
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Projections lists the projection choices in menu order
var Projections = []Projection{Perspective, Orthographic}

func (p Projection) String() string {
	switch p {
	case Perspective:
		return "Perspective"
	case Orthographic:
		return "Orthographic"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// Camera selects one of the fixed camera presets
type Camera int

const (
	Isometric Camera = iota
	Top              // looks down onto the XY plane
	Front            // looks onto the XZ plane
	Right            // looks onto the YZ plane
)

// Cameras lists the camera presets in menu order
var Cameras = []Camera{Isometric, Top, Front, Right}

func (c Camera) String() string {
	switch c {
	case Isometric:
		return "Isometric"
	case Top:
		return "Top"
	case Front:
		return "Front"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Camera(%d)", int(c))
	}
}

// UnknownChoiceError reports a projection or camera name that is not recognised
type UnknownChoiceError struct {
	Kind  string
	Value string
}

func (e *UnknownChoiceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// ParseProjection accepts "perspective" or "orthographic", case-insensitively
func ParseProjection(s string) (Projection, error) {
	for _, p := range Projections {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, &UnknownChoiceError{Kind: "projection", Value: s}
}

// ParseCamera accepts "isometric", "top", "front" or "right", case-insensitively
func ParseCamera(s string) (Camera, error) {
	for _, c := range Cameras {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, &UnknownChoiceError{Kind: "camera", Value: s}
}

// Orientation fixes where the camera looks and which way is up on screen
type Orientation struct {
	Direction r3.Vec // unit vector from the eye toward the model
	Up        r3.Vec // unit vector that maps to screen up
}

// Right returns the unit vector that maps to screen right
func (o Orientation) Right() r3.Vec {
	return r3.Unit(r3.Cross(o.Direction, o.Up))
}

// ScreenUp returns Up made orthogonal to Direction
func (o Orientation) ScreenUp() r3.Vec {
	return r3.Cross(o.Right(), o.Direction)
}

var orientations = map[Camera]Orientation{
	Isometric: {Direction: r3.Unit(r3.Vec{X: -1, Y: -1, Z: -1}), Up: r3.Vec{Z: 1}},
	Top:       {Direction: r3.Vec{Z: -1}, Up: r3.Vec{Y: 1}},
	Front:     {Direction: r3.Vec{Y: 1}, Up: r3.Vec{Z: 1}},
	Right:     {Direction: r3.Vec{X: -1}, Up: r3.Vec{Z: 1}},
}

// Config is the resolved view handed to a renderer
type Config struct {
	Projection  Projection
	Camera      Camera
	Parallel    bool
	Orientation Orientation
}

// Resolve maps the projection and camera choices onto a Config
func Resolve(p Projection, c Camera) (Config, error) {
	if p != Perspective && p != Orthographic {
		return Config{}, &UnknownChoiceError{Kind: "projection", Value: p.String()}
	}
	o, ok := orientations[c]
	if !ok {
		return Config{}, &UnknownChoiceError{Kind: "camera", Value: c.String()}
	}

	return Config{
		Projection:  p,
		Camera:      c,
		Parallel:    p == Orthographic,
		Orientation: o,
	}, nil
}

// Default returns the perspective isometric view
func Default() Config {
	cfg, _ := Resolve(Perspective, Isometric)
	return cfg
}

// Bounds is an axis-aligned box
type Bounds struct {
	Min r3.Vec
	Max r3.Vec
}

// Center returns the midpoint of the box
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Radius returns half the box diagonal
func (b Bounds) Radius() float64 {
	return 0.5 * r3.Norm(r3.Sub(b.Max, b.Min))
}

// BoundsOf returns the smallest box holding every point
func BoundsOf(points ...r3.Vec) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	return b
}

// eyeDistance is the perspective eye distance in units of the scene radius
const eyeDistance = 2.5

// Projector maps model points onto the 2D screen plane of a view
type Projector struct {
	parallel bool
	center   r3.Vec
	right    r3.Vec
	up       r3.Vec
	forward  r3.Vec
	eye      float64
}

// NewProjector builds a projector centred on the given scene bounds
func NewProjector(cfg Config, scene Bounds) *Projector {
	eye := eyeDistance * scene.Radius()
	if eye == 0 {
		eye = 1
	}
	return &Projector{
		parallel: cfg.Parallel,
		center:   scene.Center(),
		right:    cfg.Orientation.Right(),
		up:       cfg.Orientation.ScreenUp(),
		forward:  cfg.Orientation.Direction,
		eye:      eye,
	}
}

// Project returns the screen position of p and its depth along the view
// direction. Depth is negative toward the eye.
func (pr *Projector) Project(p r3.Vec) (x, y, depth float64) {
	q := r3.Sub(p, pr.center)
	x, y, depth = r3.Dot(q, pr.right), r3.Dot(q, pr.up), r3.Dot(q, pr.forward)
	if pr.parallel {
		return x, y, depth
	}
	s := pr.eye / (pr.eye + depth)
	return x * s, y * s, depth
}

// Camera returns p expressed in the camera frame (right, up, forward),
// centred on the scene
func (pr *Projector) Camera(p r3.Vec) r3.Vec {
	q := r3.Sub(p, pr.center)
	return r3.Vec{X: r3.Dot(q, pr.right), Y: r3.Dot(q, pr.up), Z: r3.Dot(q, pr.forward)}
}
