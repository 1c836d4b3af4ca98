package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gowst",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gowst v%s\n", version.Version)
		fmt.Println("Wellbore Stress and Stability Analysis Tool")
		fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
