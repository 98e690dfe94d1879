package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Axis identifies one of the three grid directions
type Axis int

const (
	AxisX Axis = iota // horizontal
	AxisY             // depth
	AxisZ             // height
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// ErrMissingInput is matched by every MissingInputError
var ErrMissingInput = errors.New("all spacing inputs are required")

// MissingInputError lists the axes whose spacing list was empty.
// It is a soft condition: generation is skipped, nothing failed.
type MissingInputError struct {
	Axes []Axis
}

func (e *MissingInputError) Error() string {
	names := make([]string, len(e.Axes))
	for i, a := range e.Axes {
		names[i] = a.String()
	}
	return fmt.Sprintf("%v: missing %s", ErrMissingInput, strings.Join(names, ", "))
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// Coordinates holds the absolute grid positions along each axis (mm).
// Every sequence starts at exactly 0.
type Coordinates struct {
	X []float64
	Y []float64
	Z []float64
}

// Axis returns the coordinate sequence for a
func (c Coordinates) Axis(a Axis) []float64 {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// Extent returns the last coordinate of an axis, the total length from the origin
func (c Coordinates) Extent(a Axis) float64 {
	seq := c.Axis(a)
	if len(seq) == 0 {
		return 0
	}
	return seq[len(seq)-1]
}

// Accumulate prefixes an origin of 0 and returns the running sum of spacings.
// The result has len(spacings)+1 elements. Negative spacings are not rejected.
func Accumulate(spacings []float64) []float64 {
	coords := make([]float64, len(spacings)+1)
	for i, s := range spacings {
		coords[i+1] = coords[i] + s
	}
	return coords
}

// Build converts the three spacing lists into coordinate sequences.
// It returns a *MissingInputError when any list is empty.
func Build(x, y, z []float64) (Coordinates, error) {
	var missing []Axis
	for axis, s := range [][]float64{x, y, z} {
		if len(s) == 0 {
			missing = append(missing, Axis(axis))
		}
	}
	if len(missing) > 0 {
		return Coordinates{}, &MissingInputError{Axes: missing}
	}

	return Coordinates{
		X: Accumulate(x),
		Y: Accumulate(y),
		Z: Accumulate(z),
	}, nil
}
