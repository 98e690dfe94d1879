package cmd

import (
	"fmt"

	"github.com/alexiusacademia/shoring/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shoring",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shoring v%s\n", version.Version)
		fmt.Println("Parametric Shoring Lattice Generator")
		fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
