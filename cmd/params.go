package cmd

import (
	"github.com/alexiusacademia/shoring/internal/shoring"
	"github.com/spf13/cobra"
)

// modelFlags binds the model inputs of one command
type modelFlags struct {
	file   string
	params shoring.Params
}

// bindModelFlags registers the spacing, style and view flags on cmd
func bindModelFlags(cmd *cobra.Command, f *modelFlags) {
	f.params = shoring.DefaultParams()
	p := &f.params
	flags := cmd.Flags()

	flags.StringVarP(&f.file, "file", "f", "", "YAML parameter file (flags given explicitly override it)")

	// Spacings
	flags.StringVarP(&p.X, "horizontal", "x", p.X, "Horizontal (X) spacings, comma-separated (mm)")
	flags.StringVarP(&p.Y, "depth", "y", p.Y, "Depth (Y) spacings, comma-separated (mm)")
	flags.StringVarP(&p.Z, "height", "z", p.Z, "Height (Z) spacings, comma-separated (mm)")

	// Style
	flags.Float64VarP(&p.Radius, "radius", "r", p.Radius, "Pipe radius (mm), ledgers use 0.8×")
	flags.StringVar(&p.Colors.Vertical, "color-v", p.Colors.Vertical, "Vertical standard colour (#RRGGBB)")
	flags.StringVar(&p.Colors.HorizontalX, "color-x", p.Colors.HorizontalX, "X ledger colour (#RRGGBB)")
	flags.StringVar(&p.Colors.HorizontalY, "color-y", p.Colors.HorizontalY, "Y ledger colour (#RRGGBB)")
	flags.Float64Var(&p.Opacity.Vertical, "opacity-v", p.Opacity.Vertical, "Vertical standard opacity (0.1-1.0)")
	flags.Float64Var(&p.Opacity.HorizontalX, "opacity-x", p.Opacity.HorizontalX, "X ledger opacity (0.1-1.0)")
	flags.Float64Var(&p.Opacity.HorizontalY, "opacity-y", p.Opacity.HorizontalY, "Y ledger opacity (0.1-1.0)")

	// View
	flags.StringVarP(&p.Projection, "projection", "p", p.Projection, "Projection: Perspective or Orthographic")
	flags.StringVarP(&p.Camera, "camera", "c", p.Camera, "Camera: Isometric, Top, Front or Right")
}

// overrides copies one explicitly set flag from src into dst
var overrides = map[string]func(dst *shoring.Params, src shoring.Params){
	"horizontal": func(d *shoring.Params, s shoring.Params) { d.X = s.X },
	"depth":      func(d *shoring.Params, s shoring.Params) { d.Y = s.Y },
	"height":     func(d *shoring.Params, s shoring.Params) { d.Z = s.Z },
	"radius":     func(d *shoring.Params, s shoring.Params) { d.Radius = s.Radius },
	"color-v":    func(d *shoring.Params, s shoring.Params) { d.Colors.Vertical = s.Colors.Vertical },
	"color-x":    func(d *shoring.Params, s shoring.Params) { d.Colors.HorizontalX = s.Colors.HorizontalX },
	"color-y":    func(d *shoring.Params, s shoring.Params) { d.Colors.HorizontalY = s.Colors.HorizontalY },
	"opacity-v":  func(d *shoring.Params, s shoring.Params) { d.Opacity.Vertical = s.Opacity.Vertical },
	"opacity-x":  func(d *shoring.Params, s shoring.Params) { d.Opacity.HorizontalX = s.Opacity.HorizontalX },
	"opacity-y":  func(d *shoring.Params, s shoring.Params) { d.Opacity.HorizontalY = s.Opacity.HorizontalY },
	"projection": func(d *shoring.Params, s shoring.Params) { d.Projection = s.Projection },
	"camera":     func(d *shoring.Params, s shoring.Params) { d.Camera = s.Camera },
}

// resolveParams returns the inputs for a run: the parameter file if one was
// given, with any explicitly set flags applied on top
func resolveParams(cmd *cobra.Command, f *modelFlags) (shoring.Params, error) {
	if f.file == "" {
		return f.params, nil
	}

	loaded, err := shoring.LoadFromFile(f.file)
	if err != nil {
		return shoring.Params{}, err
	}

	p := *loaded
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply(&p, f.params)
		}
	}
	return p, nil
}
