package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/shoring/internal/settings"
	"github.com/alexiusacademia/shoring/internal/version"
	"github.com/spf13/cobra"
)

var (
	envFile string

	// Loaded once before any command runs
	cfg    = settings.Defaults()
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "shoring",
	Short: "Parametric shoring lattice generator",
	Long: `shoring - Parametric Shoring (Falsework) Lattice Generator

A CLI tool that builds a 3D shoring scaffold model from three lists
of bay spacings and renders it.

  - Horizontal (X), depth (Y) and height (Z) spacings in millimetres
  - Vertical standards at every grid column, full height
  - Horizontal ledgers along X and Y at every lift
  - Per-group pipe colour and opacity
  - Isometric, top, front and right views in perspective or orthographic

The model is geometry only; no structural check is performed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(envFile)
		if err != nil {
			return err
		}
		cfg = s
		logger = cfg.Logger(os.Stderr)
		if cfg.EnvFile != "" {
			logger.Debug("loaded environment file", "path", cfg.EnvFile)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   shoring v%-47s║\n", version.Version)
		fmt.Println("  ║   Parametric Shoring Lattice Generator                    ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Builds a 3D falsework scaffold from bay spacings and renders it.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Grid coordinates from cumulative spacings")
		fmt.Println("    • Vertical standards and X/Y ledgers at every lift")
		fmt.Println("    • ASCII, PNG/SVG/PDF and 3D wireframe rendering")
		fmt.Println("    • Browser front end with live regeneration")
		fmt.Println()
		fmt.Println("  Use 'shoring --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with SHORING_* settings")
}
