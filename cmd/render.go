package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/alexiusacademia/shoring/internal/diagram"
	"github.com/alexiusacademia/shoring/internal/shoring"
	"github.com/spf13/cobra"
)

var (
	renderFlags modelFlags

	renderOutput string
	renderEngine string
	renderSize   int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the shoring lattice to an image file",
	Long: `Render the shoring lattice to an image file.

Engines:
  plot       - projected pipes with per-group colour, width and opacity
               (.png, .svg or .pdf by extension)
  wireframe  - 3D line drawing (.png)

When no output file is given the image is written to SHORING_OUTPUT_DIR
as shoring-<key>.png, where <key> identifies the input parameters.

Examples:
  shoring render -o model.png
  shoring render -o plan.svg --camera top --projection orthographic
  shoring render --engine wireframe -x "900, 900" -y 1200 -z "1500, 1500"`,
	Run: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	bindModelFlags(renderCmd, &renderFlags)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (png, svg, pdf)")
	renderCmd.Flags().StringVarP(&renderEngine, "engine", "e", "plot", "Render engine: plot or wireframe")
	renderCmd.Flags().IntVarP(&renderSize, "size", "s", 0, "Image edge in pixels (default SHORING_IMAGE_SIZE)")
}

func runRender(cmd *cobra.Command, args []string) {
	params, err := resolveParams(cmd, &renderFlags)
	if err != nil {
		fmt.Printf("Error loading parameters: %v\n", err)
		return
	}

	model, err := shoring.Run(params)
	if err != nil {
		reportModelError(err)
		return
	}

	scene := diagram.Scene{Title: params.Name, Struts: model.Struts, View: model.View}

	size := renderSize
	if size <= 0 {
		size = cfg.ImageSize
	}

	output := renderOutput
	if output == "" {
		output = filepath.Join(cfg.OutputDir, fmt.Sprintf("shoring-%s.png", params.Key()))
	}

	switch renderEngine {
	case "plot":
		output, err = diagram.ExportModel(scene, output, size)
	case "wireframe":
		err = diagram.SaveWireframe(scene, output, size)
	default:
		fmt.Printf("Error: unknown engine %q (use plot or wireframe)\n", renderEngine)
		return
	}
	if err != nil {
		logger.Error("render failed", "engine", renderEngine, "output", output, "err", err)
		fmt.Printf("Error exporting image: %v\n", err)
		return
	}

	logger.Debug("rendered", "engine", renderEngine, "struts", len(model.Struts), "size", size)
	fmt.Printf("Model rendered to: %s (%d struts, %s view)\n", output, len(model.Struts), model.View.Camera)
}
