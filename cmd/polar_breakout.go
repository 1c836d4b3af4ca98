package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/sweep"
)

var polarBreakoutOpts polarOptions

var polarBreakoutCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Rock strength to prevent breakouts at every orientation",
	Long: `For each azimuth and inclination, take the peak principal stresses
around the wall and report the uniaxial compressive strength the rock
needs to stay intact under the Mohr-Coulomb criterion:

  UCS = σmax − Δp·q²,  q = √(μ²+1) + μ

Examples:
  # Reference stresses on the default 2° grid
  gowst polar breakout

  # Overbalanced mud, weaker friction, 5° grid
  gowst polar breakout --pm 36 --mu 0.6 --step 5 --diagram

  # Use a stored scenario and export the map
  gowst polar breakout --scenario deviated -o breakout.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPolar(cmd, sweep.ModeBreakout, &polarBreakoutOpts)
	},
}

func init() {
	polarCmd.AddCommand(polarBreakoutCmd)
	polarBreakoutOpts.register(polarBreakoutCmd)
}
