package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/config"
	"github.com/alexiusacademia/gowst/internal/version"
)

var (
	configFile string

	// resolved in PersistentPreRunE
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gowst",
	Short: "Wellbore Stress and Stability Analysis Tool",
	Long: `gowst - Go Wellbore Stability Tool

A CLI tool for the analysis of stresses around a borehole drilled
through pre-stressed rock, and of the resulting wellbore failure.

This tool helps geomechanics engineers perform:
  - Stress transformation into the borehole frame
  - Wall stress profiles (Kirsch solution, poroelastic correction)
  - Mohr-Coulomb breakout analysis (envelope, UCS, Mohr circles)
  - Tensile fracture analysis (required mud pressure)
  - Orientation sweeps over every azimuth and inclination

Stresses and pressures are in MPa, angles in degrees.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := config.Load(configFile)
		if err != nil {
			return err
		}
		log, err := config.NewLogger(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		appConfig, logger = cfg, log
		if path != "" {
			logger.Debug("configuration loaded", "path", path)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		printBanner(cmd.OutOrStdout())
	},
}

// printBanner writes the text shown when gowst runs without a subcommand
func printBanner(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ╔═══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "  ║                                                           ║")
	fmt.Fprintf(w, "  ║   gowst v%-49s║\n", version.Version)
	fmt.Fprintln(w, "  ║   Go Wellbore Stability Tool                              ║")
	fmt.Fprintf(w, "  ║   %-56s║\n", "© "+version.Year+" "+version.Author)
	fmt.Fprintln(w, "  ║                                                           ║")
	fmt.Fprintln(w, "  ╚═══════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  A CLI tool for borehole stress and failure analysis.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Features:")
	fmt.Fprintln(w, "    • Wall stress profile and Mohr-Coulomb evaluation")
	fmt.Fprintln(w, "    • Tensile failure mud pressure for every orientation")
	fmt.Fprintln(w, "    • Breakout strength for every orientation")
	fmt.Fprintln(w, "    • Named scenarios stored in a local database")
	fmt.Fprintln(w, "    • HTTP API with Prometheus metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Use 'gowst --help' to see available commands.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ─────────────────────────────────────────────────────────────")
	fmt.Fprintf(w, "  Copyright © %s %s\n", version.Year, version.Author)
	fmt.Fprintln(w)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $GOWST_CONFIG or ~/.config/gowst/gowst.yaml)")
}
