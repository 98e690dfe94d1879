package shoring

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/spacing"
	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/alexiusacademia/shoring/internal/view"
)

// Spacings holds the parsed spacing values per axis (mm)
type Spacings struct {
	X []float64
	Y []float64
	Z []float64
}

// Model is the result of one regeneration
type Model struct {
	Coordinates grid.Coordinates
	Struts      []strut.Strut
	View        view.Config
	Summary     strut.Summary
}

// AxisError ties a spacing parse failure to the axis it came from
type AxisError struct {
	Axis grid.Axis
	Err  error
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%s spacing: %v", e.Axis, e.Err)
}

func (e *AxisError) Unwrap() error {
	return e.Err
}

// ParseSpacings parses the three spacing lists of p. A failure is an
// *AxisError wrapping a *spacing.ParseError.
func (p Params) ParseSpacings() (Spacings, error) {
	var sp Spacings
	targets := []struct {
		axis grid.Axis
		text string
		dst  *[]float64
	}{
		{grid.AxisX, p.X, &sp.X},
		{grid.AxisY, p.Y, &sp.Y},
		{grid.AxisZ, p.Z, &sp.Z},
	}

	for _, t := range targets {
		values, err := spacing.Parse(t.text)
		if err != nil {
			return Spacings{}, &AxisError{Axis: t.axis, Err: err}
		}
		*t.dst = values
	}

	return sp, nil
}

// Generate builds the grid and its struts. It fails only with a
// *grid.MissingInputError when a spacing list is empty.
func Generate(sp Spacings, style strut.Style, v view.Config) (*Model, error) {
	coords, err := grid.Build(sp.X, sp.Y, sp.Z)
	if err != nil {
		return nil, err
	}

	struts := strut.Generate(coords, style)

	return &Model{
		Coordinates: coords,
		Struts:      struts,
		View:        v,
		Summary:     strut.Summarize(coords, struts),
	}, nil
}

// Run validates every input of p before generating the model, so a bad
// field never yields a partial grid.
func Run(p Params) (*Model, error) {
	sp, err := p.ParseSpacings()
	if err != nil {
		return nil, err
	}
	style, err := p.Style()
	if err != nil {
		return nil, err
	}
	v, err := p.View()
	if err != nil {
		return nil, err
	}
	if err := checkSize(sp); err != nil {
		return nil, err
	}
	return Generate(sp, style, v)
}

// checkSize rejects spacings whose lattice would exceed MaxStruts. Empty
// lists pass through so Generate can report them as missing input.
func checkSize(sp Spacings) error {
	if len(sp.X) == 0 || len(sp.Y) == 0 || len(sp.Z) == 0 {
		return nil
	}
	n := strut.ExpectedCount(len(sp.X)+1, len(sp.Y)+1, len(sp.Z)+1).Total()
	if n > MaxStruts {
		return &ValidationError{msg: fmt.Sprintf("model too large: %d struts, limit is %d", n, MaxStruts)}
	}
	return nil
}

// Key returns a short digest of every input field. It only identifies a
// parameter set for change detection; it has no other meaning.
func (p Params) Key() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	s := p.X + p.Y + p.Z +
		f(p.Radius) +
		p.Colors.Vertical + p.Colors.HorizontalX + p.Colors.HorizontalY +
		f(p.Opacity.Vertical) + f(p.Opacity.HorizontalX) + f(p.Opacity.HorizontalY) +
		p.Projection + p.Camera

	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
