package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/scenario"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

// paramFlags binds the analysis parameters to a command. Values are
// resolved as defaults, then --file, then --scenario, then any flag set
// explicitly on the command line.
type paramFlags struct {
	values   wellbore.Params
	file     string
	scenario string
}

type paramFlag struct {
	name  string
	usage string
	field func(*wellbore.Params) *float64
}

var paramFlagTable = []paramFlag{
	{"s1", "Maximum principal stress S1 (MPa)", func(p *wellbore.Params) *float64 { return &p.S1 }},
	{"s2", "Intermediate principal stress S2 (MPa)", func(p *wellbore.Params) *float64 { return &p.S2 }},
	{"s3", "Minimum principal stress S3 (MPa)", func(p *wellbore.Params) *float64 { return &p.S3 }},
	{"pp", "Pore pressure (MPa)", func(p *wellbore.Params) *float64 { return &p.PorePressure }},
	{"pm", "Mud pressure (MPa)", func(p *wellbore.Params) *float64 { return &p.MudPressure }},
	{"nu", "Poisson's ratio", func(p *wellbore.Params) *float64 { return &p.PoissonRatio }},
	{"azimuth", "Borehole azimuth (deg)", func(p *wellbore.Params) *float64 { return &p.Azimuth }},
	{"inclination", "Borehole inclination (deg)", func(p *wellbore.Params) *float64 { return &p.Inclination }},
	{"mu", "Coefficient of internal friction", func(p *wellbore.Params) *float64 { return &p.FrictionCoefficient }},
	{"alpha", "Stress frame Euler angle α (deg)", func(p *wellbore.Params) *float64 { return &p.Alpha }},
	{"beta", "Stress frame Euler angle β (deg)", func(p *wellbore.Params) *float64 { return &p.Beta }},
	{"gamma", "Stress frame Euler angle γ (deg)", func(p *wellbore.Params) *float64 { return &p.Gamma }},
	{"t0", "Tensile strength T0 (MPa)", func(p *wellbore.Params) *float64 { return &p.TensileStrength }},
}

func (f *paramFlags) register(cmd *cobra.Command) {
	defaults := wellbore.DefaultParams()
	for _, pf := range paramFlagTable {
		cmd.Flags().Float64Var(pf.field(&f.values), pf.name, *pf.field(&defaults), pf.usage)
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Load parameters from a YAML scenario file")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Load parameters from a stored scenario (name or id)")
}

// resolve builds and validates the parameter set
func (f *paramFlags) resolve(ctx context.Context, cmd *cobra.Command) (wellbore.Params, error) {
	p := wellbore.DefaultParams()

	if f.file != "" {
		sc, err := scenario.LoadFromFile(f.file)
		if err != nil {
			return p, fmt.Errorf("loading scenario file: %w", err)
		}
		p = sc.Params
	}

	if f.scenario != "" {
		store, err := openStore()
		if err != nil {
			return p, err
		}
		defer store.Close()

		sc, err := store.Find(ctx, f.scenario)
		if err != nil {
			return p, fmt.Errorf("loading scenario %q: %w", f.scenario, err)
		}
		p = sc.Params
	}

	for _, pf := range paramFlagTable {
		if cmd.Flags().Changed(pf.name) {
			*pf.field(&p) = *pf.field(&f.values)
		}
	}

	return p, p.Validate()
}

// openStore opens the scenario database named by the configuration
func openStore() (*scenario.Store, error) {
	path := appConfig.Database.Path
	if dir := filepath.Dir(path); path != scenario.MemoryPath && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	store, err := scenario.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario store %s: %w", path, err)
	}
	return store, nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println("WARNINGS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, w := range warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
	fmt.Println()
}
