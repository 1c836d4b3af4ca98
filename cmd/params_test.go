package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowst/internal/scenario"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

func newParamCommand() (*cobra.Command, *paramFlags) {
	var f paramFlags
	c := &cobra.Command{Use: "test"}
	f.register(c)
	return c, &f
}

func TestResolve_Defaults(t *testing.T) {
	c, f := newParamCommand()
	p, err := f.resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, wellbore.DefaultParams(), p)
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: case\nparams:\n  inclination: 30\n  mud_pressure: 34\n"), 0644))

	c, f := newParamCommand()
	require.NoError(t, c.Flags().Set("file", path))
	require.NoError(t, c.Flags().Set("pm", "36"))

	p, err := f.resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.Inclination)
	assert.Equal(t, 36.0, p.MudPressure)
	assert.Equal(t, wellbore.DefaultS1, p.S1)
}

func TestResolve_StoredScenario(t *testing.T) {
	appConfig.Database.Path = filepath.Join(t.TempDir(), "db", "gowst.db")

	store, err := openStore()
	require.NoError(t, err)
	sc := scenario.New("vertical")
	sc.Params.Inclination = 0
	require.NoError(t, store.Create(context.Background(), sc))
	require.NoError(t, store.Close())

	c, f := newParamCommand()
	require.NoError(t, c.Flags().Set("scenario", "vertical"))
	require.NoError(t, c.Flags().Set("azimuth", "45"))

	p, err := f.resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Inclination)
	assert.Equal(t, 45.0, p.Azimuth)

	require.NoError(t, c.Flags().Set("scenario", "missing"))
	_, err = f.resolve(context.Background(), c)
	assert.ErrorIs(t, err, scenario.ErrNotFound)
}

func TestResolve_Invalid(t *testing.T) {
	c, f := newParamCommand()
	require.NoError(t, c.Flags().Set("s2", "80"))

	_, err := f.resolve(context.Background(), c)
	assert.ErrorIs(t, err, wellbore.ErrInvalidParams)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "out/profile-mohr.png", withSuffix("out/profile.png", "-mohr"))
	assert.Equal(t, "profile-mohr", withSuffix("profile", "-mohr"))
}
