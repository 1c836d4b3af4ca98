package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/diagram"
	"github.com/alexiusacademia/gowst/internal/sweep"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

var polarCmd = &cobra.Command{
	Use:   "polar",
	Short: "Failure maps over every borehole orientation",
	Long: `Sweep the borehole azimuth over 0-360° and the inclination over 0-90°
and evaluate a failure quantity for each orientation.

Subcommands:
  tensile   - Mud pressure at which the wall fractures in tension
  breakout  - Rock strength (UCS) needed to prevent breakouts

Rows of the grid are evaluated in parallel; --workers bounds the
number of goroutines (0 uses every CPU).`,
}

func init() {
	rootCmd.AddCommand(polarCmd)
}

// polarOptions holds the flags shared by the polar subcommands
type polarOptions struct {
	params     paramFlags
	step       float64
	thetaStep  float64
	workers    int
	csvFile    string
	diagram    bool
	exportFile string
}

func (o *polarOptions) register(cmd *cobra.Command) {
	o.params.register(cmd)

	// Grid flags
	cmd.Flags().Float64Var(&o.step, "step", sweep.DefaultAzimuthStep, "Azimuth and inclination step (deg)")
	cmd.Flags().Float64Var(&o.thetaStep, "theta-step", sweep.DefaultThetaStep, "Angular step around the wall (deg)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Concurrent rows (default from config, 0 uses every CPU)")

	// Output flags
	cmd.Flags().StringVar(&o.csvFile, "csv", "", "Write the grid to a CSV file")
	cmd.Flags().BoolVar(&o.diagram, "diagram", false, "Show ASCII map")
	cmd.Flags().StringVarP(&o.exportFile, "output", "o", "", "Export heat map to file (png, svg, pdf)")
}

func runPolar(cmd *cobra.Command, mode sweep.Mode, o *polarOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := o.params.resolve(ctx, cmd)
	if err != nil {
		return err
	}
	if o.exportFile != "" {
		if err := diagram.CheckFormat(o.exportFile); err != nil {
			return err
		}
	}
	well := diagram.Orientation{Azimuth: p.Azimuth, Inclination: p.Inclination}

	spec := sweep.DefaultSpec(mode)
	spec.AzimuthStep = o.step
	spec.InclinationStep = o.step
	spec.ThetaStep = o.thetaStep
	spec.Workers = appConfig.Sweep.Workers
	if cmd.Flags().Changed("workers") {
		spec.Workers = o.workers
	}

	start := time.Now()
	g, err := wellbore.Polar(ctx, p, spec)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("sweep interrupted: %w", err)
		}
		return err
	}
	elapsed := time.Since(start)
	logger.Debug("sweep finished", "mode", mode, "cells", g.Len(), "workers", spec.Workers, "elapsed", elapsed)

	printPolarReport(p, spec, g, elapsed)

	if o.diagram {
		fmt.Println(diagram.DrawPolarMap(g, well))
		fmt.Println()
	}

	if o.csvFile != "" {
		if err := writeGridCSV(g, o.csvFile); err != nil {
			return err
		}
		fmt.Printf("  Grid written to: %s\n", o.csvFile)
	}

	if o.exportFile != "" {
		if err := diagram.ExportPolarMap(g, well, o.exportFile); err != nil {
			return fmt.Errorf("exporting map: %w", err)
		}
		fmt.Printf("  Map exported to: %s\n", o.exportFile)
	}
	if o.csvFile != "" || o.exportFile != "" {
		fmt.Println()
	}
	return nil
}

func printPolarReport(p wellbore.Params, spec sweep.Spec, g *sweep.Grid, elapsed time.Duration) {
	title := "TENSILE FAILURE MAP"
	quantity := "Mud pressure for tensile failure"
	if g.Mode == sweep.ModeBreakout {
		title = "BREAKOUT MAP"
		quantity = "Rock strength to prevent breakout"
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT PARAMETERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  S1 / S2 / S3:\t%.2f / %.2f / %.2f MPa\n", p.S1, p.S2, p.S3)
	fmt.Fprintf(w, "  Pp / Pm:\t%.2f / %.2f MPa\n", p.PorePressure, p.MudPressure)
	fmt.Fprintf(w, "  Poisson's ratio (ν):\t%.3f\n", p.PoissonRatio)
	fmt.Fprintf(w, "  Euler angles (α, β, γ):\t%.1f°, %.1f°, %.1f°\n", p.Alpha, p.Beta, p.Gamma)
	if g.Mode == sweep.ModeBreakout {
		fmt.Fprintf(w, "  Friction coefficient (μ):\t%.3f\n", p.FrictionCoefficient)
	} else {
		fmt.Fprintf(w, "  Tensile strength (T0):\t%.2f MPa\n", p.TensileStrength)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("GRID:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Azimuths:\t%d (step %.2f°)\n", g.Cols(), spec.AzimuthStep)
	fmt.Fprintf(w, "  Inclinations:\t%d (step %.2f°)\n", g.Rows(), spec.InclinationStep)
	fmt.Fprintf(w, "  Wall step (θ):\t%.2f°\n", spec.ThetaStep)
	fmt.Fprintf(w, "  Cells:\t%d\n", g.Len())
	fmt.Fprintf(w, "  Elapsed:\t%s\n", elapsed.Round(time.Millisecond))
	w.Flush()
	fmt.Println()

	lo, okLo := g.Min()
	hi, okHi := g.Max()
	if !okLo || !okHi {
		fmt.Println("  No finite values in the grid.")
		fmt.Println()
		return
	}
	lines := []string{
		fmt.Sprintf("Minimum      = %8.2f MPa  at az %5.1f°, inc %4.1f°", lo.Value, lo.Azimuth, lo.Inclination),
		fmt.Sprintf("Maximum      = %8.2f MPa  at az %5.1f°, inc %4.1f°", hi.Value, hi.Azimuth, hi.Inclination),
	}
	if c, ok := wellCell(g, p); ok {
		lines = append(lines,
			fmt.Sprintf("Current well = %8.2f MPa  at az %5.1f°, inc %4.1f°", c.Value, p.Azimuth, p.Inclination),
			fmt.Sprintf("               (grid cell az %.1f°, inc %.1f°)", c.Azimuth, c.Inclination))
	}
	fmt.Println(diagram.DrawSummaryBox(quantity, lines))

	printWarnings(p.Warnings())
}

// wellCell returns the grid cell nearest the orientation of p
func wellCell(g *sweep.Grid, p wellbore.Params) (sweep.Cell, bool) {
	ia, ii, ok := g.Nearest(p.Azimuth, p.Inclination)
	if !ok {
		return sweep.Cell{}, false
	}
	return g.CellAt(ia, ii), true
}

func writeGridCSV(g *sweep.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := g.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
