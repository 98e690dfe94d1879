package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/shoring/internal/diagram"
	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/shoring"
	"github.com/alexiusacademia/shoring/internal/spacing"
	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/spf13/cobra"
)

var (
	generateFlags modelFlags

	generateShowDiagram bool
	generateShowChart   bool
	generateListStruts  bool
	generateWidth       int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the shoring lattice and print its grid and member summary",
	Long: `Generate the shoring lattice from X, Y and Z spacings and print the
grid coordinates and a member summary.

Spacings are comma-separated increments in millimetres. Each axis starts at 0
and accumulates the increments in order, so "610, 1219, 1524" gives grid lines
at 0, 610, 1829 and 3353 mm. Blank entries are ignored.

Members:
  Vertical      - one per (x, y) column, from 0 to the top level
  Horizontal X  - between consecutive x lines, at every y and every level
  Horizontal Y  - between consecutive y lines, at every x and every level

Examples:
  # Default 3×4 bay layout with five lifts
  shoring generate

  # Single bay, ASCII front elevation
  shoring generate -x 610 -y 914 -z 432 --diagram --camera front --projection orthographic

  # From a parameter file, overriding the height spacings
  shoring generate -f bay3.yaml -z "1500, 1500"`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	bindModelFlags(generateCmd, &generateFlags)

	// Output options
	generateCmd.Flags().BoolVar(&generateShowDiagram, "diagram", false, "Show ASCII projection of the model with legend")
	generateCmd.Flags().BoolVar(&generateShowChart, "chart", false, "Chart the spacing profile of each axis")
	generateCmd.Flags().BoolVarP(&generateListStruts, "list", "l", false, "List every strut with its endpoints")
	generateCmd.Flags().IntVarP(&generateWidth, "width", "w", 72, "ASCII diagram width (columns)")
}

// reportModelError prints why no model was generated
func reportModelError(err error) {
	if errors.Is(err, grid.ErrMissingInput) {
		fmt.Printf("Info: %v\n", err)
		fmt.Println("The model is shown once spacings are entered for X, Y and Z.")
		return
	}
	fmt.Printf("Error: %v\n", err)
}

func runGenerate(cmd *cobra.Command, args []string) {
	params, err := resolveParams(cmd, &generateFlags)
	if err != nil {
		fmt.Printf("Error loading parameters: %v\n", err)
		return
	}

	model, err := shoring.Run(params)
	if err != nil {
		logger.Debug("generation skipped", "key", params.Key(), "err", err)
		reportModelError(err)
		return
	}
	logger.Debug("generated", "key", params.Key(), "struts", len(model.Struts))

	style, _ := params.Style()
	sum := model.Summary

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          SHORING LATTICE - GRID AND MEMBERS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if params.Name != "" {
		fmt.Printf("  Model: %s\n", params.Name)
		fmt.Println()
	}

	// Input summary
	fmt.Println("INPUT SPACINGS (mm):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Horizontal (X):\t%s\n", params.X)
	fmt.Fprintf(w, "  Depth (Y):\t%s\n", params.Y)
	fmt.Fprintf(w, "  Height (Z):\t%s\n", params.Z)
	w.Flush()
	fmt.Println()

	// Grid coordinates
	fmt.Println("GRID COORDINATES (mm):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range []grid.Axis{grid.AxisX, grid.AxisY, grid.AxisZ} {
		fmt.Fprintf(w, "  %s:\t%s\n", a, spacing.Format(model.Coordinates.Axis(a)))
	}
	w.Flush()
	fmt.Println()

	// Grid metrics
	fmt.Println("GRID:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axis\tPoints\tTotal Length (mm)\n")
	fmt.Fprintf(w, "  ────\t──────\t─────────────────\n")
	for _, a := range sum.Axes {
		fmt.Fprintf(w, "  %s\t%d\t%.0f\n", a.Axis, a.Points, a.Extent)
	}
	w.Flush()
	fmt.Println()

	// Members
	fmt.Println("MEMBERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Group\tCount\tRadius (mm)\tTotal Length (m)\tColour\tOpacity\n")
	fmt.Fprintf(w, "  ─────\t─────\t───────────\t────────────────\t──────\t───────\n")
	for _, g := range sum.Groups {
		look := style.Appearance(g.Group)
		fmt.Fprintf(w, "  %s\t%d\t%.1f\t%.2f\t%s\t%.1f\n",
			g.Group, g.Count, style.RadiusFor(g.Group), g.TotalLength/1000, shoring.HexColor(look.Color), look.Opacity)
	}
	w.Flush()
	fmt.Println()

	if generateListStruts {
		printStruts(model.Struts)
	}

	fmt.Print(diagram.DrawSummaryBox("MODEL", []string{
		fmt.Sprintf("Struts        = %d", sum.Total()),
		fmt.Sprintf("Total length  = %.2f m", sum.TotalLength()/1000),
		fmt.Sprintf("Footprint     = %.0f × %.0f mm", sum.Axes[0].Extent, sum.Axes[1].Extent),
		fmt.Sprintf("Height        = %.0f mm", sum.Axes[2].Extent),
		fmt.Sprintf("View          = %s, %s", model.View.Camera, model.View.Projection),
		fmt.Sprintf("Key           = %s", params.Key()),
	}))
	fmt.Println()

	if generateShowChart {
		fmt.Println(diagram.DrawSpacingProfile(model.Coordinates))
	}

	if generateShowDiagram {
		scene := diagram.Scene{Title: params.Name, Struts: model.Struts, View: model.View}
		fmt.Println(diagram.DrawASCII(scene, generateWidth))
		fmt.Println(diagram.DrawLegend(style))
	}
}

func printStruts(struts []strut.Strut) {
	fmt.Println("STRUTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tGroup\tFrom (x, y, z)\tTo (x, y, z)\tLength (mm)\n")
	fmt.Fprintf(w, "  ─\t─────\t──────────────\t────────────\t───────────\n")
	for i, s := range struts {
		fmt.Fprintf(w, "  %d\t%s\t(%.0f, %.0f, %.0f)\t(%.0f, %.0f, %.0f)\t%.0f\n",
			i+1, s.Group, s.A.X, s.A.Y, s.A.Z, s.B.X, s.B.Y, s.B.Z, s.Length())
	}
	w.Flush()
	fmt.Println()
}
