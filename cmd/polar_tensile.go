package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/sweep"
)

var polarTensileOpts polarOptions

var polarTensileCmd = &cobra.Command{
	Use:   "tensile",
	Short: "Mud pressure for tensile failure at every orientation",
	Long: `For each azimuth and inclination, find the minimum hoop stress around
the wall and report the mud pressure at which it reaches the tensile
strength:

  Pm = min σθθ − T0 + Pp

Examples:
  # Reference stresses on the default 2° grid
  gowst polar tensile

  # Coarser grid with an ASCII map and CSV output
  gowst polar tensile --step 10 --diagram --csv tensile.csv

  # Heat map image
  gowst polar tensile -o tensile.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPolar(cmd, sweep.ModeTensile, &polarTensileOpts)
	},
}

func init() {
	polarCmd.AddCommand(polarTensileCmd)
	polarTensileOpts.register(polarTensileCmd)
}
