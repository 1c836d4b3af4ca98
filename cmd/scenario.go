package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/scenario"
)

var (
	scenarioParams      paramFlags
	scenarioDescription string
	scenarioReplace     bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage stored parameter scenarios",
	Long: `Save, list, show and delete named parameter sets. Scenarios live in a
SQLite database (see --config, $GOWST_DB) and can be used by the
analysis commands with --scenario <name>.

Subcommands:
  save    - Store the given parameters under a name
  list    - List stored scenarios
  show    - Print a scenario as YAML
  delete  - Remove a scenario`,
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Store parameters under a name",
	Long: `Store a parameter set. Parameters are taken from the defaults, a YAML
file (-f) and the individual flags, in that order.

Examples:
  gowst scenario save vertical --inclination 0 --description "vertical well"
  gowst scenario save deviated -f deviated.yaml
  gowst scenario save deviated --pm 36 --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Print a stored scenario as YAML",
	Long: `Print a stored scenario as YAML. The output can be edited and passed
back to any analysis command with -f.

Examples:
  gowst scenario show deviated > deviated.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete a stored scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioDeleteCmd)

	scenarioParams.register(scenarioSaveCmd)
	scenarioSaveCmd.Flags().StringVar(&scenarioDescription, "description", "", "Free-form description")
	scenarioSaveCmd.Flags().BoolVar(&scenarioReplace, "replace", false, "Overwrite an existing scenario with the same name")
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := scenarioParams.resolve(ctx, cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sc := scenario.New(args[0])
	sc.Description = scenarioDescription
	sc.Params = p

	existing, err := store.GetByName(ctx, sc.Name)
	switch {
	case err == nil && scenarioReplace:
		sc.ID = existing.ID
		if !cmd.Flags().Changed("description") {
			sc.Description = existing.Description
		}
		err = store.Update(ctx, sc)
	case err == nil:
		return fmt.Errorf("%w: %q (use --replace to overwrite)", scenario.ErrDuplicateName, sc.Name)
	case errors.Is(err, scenario.ErrNotFound):
		err = store.Create(ctx, sc)
	}
	if err != nil {
		return err
	}

	logger.Debug("scenario saved", "id", sc.ID, "name", sc.Name)
	fmt.Printf("Saved scenario %q (%s)\n", sc.Name, sc.ID)
	return nil
}

func runScenarioList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No scenarios stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tAZ\tINC\tS1/S2/S3\tPp/Pm\tUPDATED\tID\n")
	for _, sc := range list {
		p := sc.Params
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%g/%g/%g\t%g/%g\t%s\t%s\n",
			sc.Name, p.Azimuth, p.Inclination, p.S1, p.S2, p.S3,
			p.PorePressure, p.MudPressure, sc.UpdatedAt.Local().Format("2006-01-02 15:04"), sc.ID)
	}
	return w.Flush()
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sc, err := store.Find(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	data, err := sc.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sc, err := store.Find(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	if err := store.Delete(ctx, sc.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted scenario %q\n", sc.Name)
	return nil
}
