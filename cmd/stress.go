package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/diagram"
	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/stress"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

var (
	stressParams     paramFlags
	stressDiagram    bool
	stressExportFile string
	stressNormalize  bool
	stressTableStep  float64
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Wall stress profile and Mohr-Coulomb analysis for one orientation",
	Long: `Transform the in-situ stresses into the borehole frame and evaluate
the stresses around the borehole wall for 0 ≤ θ < 360° at 0.1° steps.

The peak stresses around the wall are evaluated against the
Mohr-Coulomb criterion (envelope intercept, UCS) and the minimum hoop
stress gives the mud pressure for tensile fracturing.

Stresses are converted to effective stresses (S − Pp); the radial stress
at the wall is Δp = Pm − Pp.

Examples:
  # Reference case: S = 70/67/45 MPa, Pp = Pm = 32 MPa, az 90°, inc 85°
  gowst stress

  # Vertical well, overbalanced
  gowst stress --inclination 0 --pm 36

  # Parameters from a scenario file, charts and image export
  gowst stress -f deviated.yaml --diagram -o out/profile.png`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressParams.register(stressCmd)

	stressCmd.Flags().BoolVar(&stressNormalize, "normalize", false, "Divide profile stresses by the effective S1")
	stressCmd.Flags().Float64Var(&stressTableStep, "table-step", 30, "Angular step of the printed profile table (deg, 0 to hide)")

	// Diagram options
	stressCmd.Flags().BoolVar(&stressDiagram, "diagram", false, "Show ASCII stress profile chart")
	stressCmd.Flags().StringVarP(&stressExportFile, "output", "o", "", "Export profile and Mohr diagrams to file (png, svg, pdf)")
}

func runStress(cmd *cobra.Command, args []string) error {
	p, err := stressParams.resolve(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	if stressExportFile != "" {
		if err := diagram.CheckFormat(stressExportFile); err != nil {
			return err
		}
	}

	a := wellbore.Evaluate(p)
	logger.Debug("stress analysis", "azimuth", p.Azimuth, "inclination", p.Inclination, "samples", a.Profile.Len())

	profile, unit, normalized := displayProfile(a, stressNormalize)
	if stressNormalize && !normalized {
		logger.Warn("effective S1 is zero; profile left in MPa")
	}

	// Print results
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     WELLBORE STRESS ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT PARAMETERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  S1 / S2 / S3:\t%.2f / %.2f / %.2f MPa\n", p.S1, p.S2, p.S3)
	fmt.Fprintf(w, "  Pore pressure (Pp):\t%.2f MPa\n", p.PorePressure)
	fmt.Fprintf(w, "  Mud pressure (Pm):\t%.2f MPa\n", p.MudPressure)
	fmt.Fprintf(w, "  Poisson's ratio (ν):\t%.3f\n", p.PoissonRatio)
	fmt.Fprintf(w, "  Azimuth / Inclination:\t%.1f° / %.1f°\n", p.Azimuth, p.Inclination)
	fmt.Fprintf(w, "  Euler angles (α, β, γ):\t%.1f°, %.1f°, %.1f°\n", p.Alpha, p.Beta, p.Gamma)
	fmt.Fprintf(w, "  Friction coefficient (μ):\t%.3f\n", p.FrictionCoefficient)
	fmt.Fprintf(w, "  Tensile strength (T0):\t%.2f MPa\n", p.TensileStrength)
	w.Flush()
	fmt.Println()

	fmt.Println("EFFECTIVE STRESSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  S1' / S2' / S3':\t%.2f / %.2f / %.2f MPa\n", a.EffectiveS1, a.EffectiveS2, a.EffectiveS3)
	fmt.Fprintf(w, "  Pressure differential (Δp = Pm − Pp):\t%.2f MPa\n", a.PressureDifferential)
	w.Flush()
	fmt.Println()

	fmt.Println("BOREHOLE STRESS TENSOR (MPa):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printTensor(a.Borehole)
	fmt.Println()

	if stressTableStep > 0 {
		printProfileTable(profile, stressTableStep, unit)
	}

	fmt.Println("WALL STRESS EXTREMA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max tangential stress (σmax):\t%.3f MPa\n", a.Envelope.MaxStress)
	fmt.Fprintf(w, "  Max of min tangential stress (σint):\t%.3f MPa\n", a.Envelope.IntermediateStress)
	fmt.Fprintf(w, "  Min hoop stress (σθθ):\t%.3f MPa\n", a.Profile.MinTangentialStress())
	w.Flush()
	fmt.Println()

	fmt.Println("MOHR-COULOMB:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Friction coefficient (μ):\t%.3f\n", a.Envelope.Friction)
	fmt.Fprintf(w, "  Friction angle (φ):\t%.2f°\n", failure.FrictionAngle(a.Envelope.Friction))
	fmt.Fprintf(w, "  Envelope intercept (c):\t%.3f MPa\n", a.Envelope.Intercept)
	fmt.Fprintf(w, "  UCS:\t%.3f MPa\n", a.Envelope.UCS)
	w.Flush()
	fmt.Println()

	fmt.Println(diagram.DrawSummaryBox("RESULTS", []string{
		fmt.Sprintf("Rock strength to prevent breakout  = %.2f MPa", a.BreakoutUCS),
		fmt.Sprintf("Mud pressure for tensile failure   = %.2f MPa", a.TensileFailurePressure),
	}))

	printWarnings(a.Warnings)

	if stressDiagram {
		fmt.Println(diagram.DrawProfileChart(profile, "Wall stresses ("+unit+") vs θ"))
	}

	if stressExportFile != "" {
		title := "Stresses at the Borehole Wall"
		if normalized {
			title += " (normalized by S1')"
		}
		if err := diagram.ExportProfileDiagram(profile, title, stressExportFile); err != nil {
			return fmt.Errorf("exporting profile diagram: %w", err)
		}
		mohrFile := withSuffix(stressExportFile, "-mohr")
		if err := diagram.ExportMohrDiagram(a.Envelope, mohrFile); err != nil {
			return fmt.Errorf("exporting Mohr diagram: %w", err)
		}
		fmt.Printf("  Diagrams exported to: %s, %s\n", stressExportFile, mohrFile)
		fmt.Println()
	}
	return nil
}

// displayProfile picks the profile to report and its unit label. The
// profile is only labelled as normalized when it was actually scaled.
func displayProfile(a *wellbore.Analysis, normalize bool) (p *stress.WallProfile, unit string, normalized bool) {
	if normalize && a.CanNormalize() {
		return a.Normalized(), "× S1'", true
	}
	return a.Profile, "MPa", false
}

func printTensor(t stress.Tensor) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range t {
		fmt.Fprintf(w, "  \t%.4f\t%.4f\t%.4f\t\n", row[0], row[1], row[2])
	}
	w.Flush()
}

func printProfileTable(p *stress.WallProfile, step float64, unit string) {
	fmt.Printf("WALL STRESS PROFILE (%s):\n", unit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  θ (deg)\tσzz\tσθθ\tτθz\tσt max\tσt min\n")
	fmt.Fprintf(w, "  ───────\t───\t───\t───\t──────\t──────\n")
	stride := max(int(step/wellbore.ProfileStep+0.5), 1)
	for i := 0; i < p.Len(); i += stride {
		s := p.At(i)
		fmt.Fprintf(w, "  %.1f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Theta, s.Axial, s.Tangential, s.Shear, s.MaxTangential, s.MinTangential)
	}
	w.Flush()
	fmt.Println()
}

// withSuffix inserts suffix before the file extension
func withSuffix(filename, suffix string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + suffix + ext
}
