package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowst/internal/wellbore"
)

func TestParse_MissingKeysTakeDefaults(t *testing.T) {
	sc, err := Parse([]byte(`
name: deviated
description: horizontal section
params:
  azimuth: 45
  mud_pressure: 35.5
`))
	require.NoError(t, err)

	want := wellbore.DefaultParams()
	want.Azimuth = 45
	want.MudPressure = 35.5
	assert.Equal(t, "deviated", sc.Name)
	assert.Equal(t, "horizontal section", sc.Description)
	assert.Equal(t, want, sc.Params)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("params: [1, 2"))
	assert.Error(t, err)
}

func TestYAMLRoundTripOfDefaults(t *testing.T) {
	sc := New("reference")
	data, err := sc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "pore_pressure: 32")
	assert.NotContains(t, string(data), "created_at")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, sc.Name, back.Name)
	assert.Equal(t, sc.Params, back.Params)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, New("reference").WriteFile(good))
	sc, err := LoadFromFile(good)
	require.NoError(t, err)
	assert.Equal(t, wellbore.DefaultParams(), sc.Params)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("params:\n  s2: 90\n"), 0644))
	_, err = LoadFromFile(bad)
	assert.ErrorIs(t, err, wellbore.ErrInvalidParams)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, New("  ").Validate(), ErrMissingName)
	assert.NoError(t, New("ok").Validate())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	sc := New("reference")
	sc.Description = "baseline"
	require.NoError(t, s.Create(ctx, sc))
	require.NotEmpty(t, sc.ID)
	assert.Equal(t, t0, sc.CreatedAt)

	got, err := s.Get(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, sc, got)

	byName, err := s.GetByName(ctx, "reference")
	require.NoError(t, err)
	assert.Equal(t, sc.ID, byName.ID)

	t1 := t0.Add(time.Hour)
	s.now = func() time.Time { return t1 }
	got.Params.MudPressure = 36
	got.Name = "reference-overbalanced"
	require.NoError(t, s.Update(ctx, got))
	assert.Equal(t, t0, got.CreatedAt)
	assert.Equal(t, t1, got.UpdatedAt)

	again, err := s.Get(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, 36.0, again.Params.MudPressure)
	assert.Equal(t, "reference-overbalanced", again.Name)

	require.NoError(t, s.Delete(ctx, sc.ID))
	_, err = s.Get(ctx, sc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, sc.ID), ErrNotFound)
}

func TestStore_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{"vertical", "horizontal", "deviated"} {
		require.NoError(t, s.Create(ctx, New(name)))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "deviated", list[0].Name)
	assert.Equal(t, "horizontal", list[1].Name)
	assert.Equal(t, "vertical", list[2].Name)
}

func TestStore_DuplicateName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := New("a")
	require.NoError(t, s.Create(ctx, a))
	assert.ErrorIs(t, s.Create(ctx, New("a")), ErrDuplicateName)

	b := New("b")
	require.NoError(t, s.Create(ctx, b))
	b.Name = "a"
	assert.ErrorIs(t, s.Update(ctx, b), ErrDuplicateName)

	// renaming to its own name is fine
	a.Description = "changed"
	assert.NoError(t, s.Update(ctx, a))
}

func TestStore_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sc := New("bad")
	sc.Params.PoissonRatio = 0.7
	assert.ErrorIs(t, s.Create(ctx, sc), wellbore.ErrInvalidParams)
	assert.ErrorIs(t, s.Create(ctx, New("")), ErrMissingName)
}

func TestStore_UpdateMissing(t *testing.T) {
	s := newTestStore(t)
	sc := New("ghost")
	sc.ID = "00000000-0000-0000-0000-000000000000"
	assert.ErrorIs(t, s.Update(context.Background(), sc), ErrNotFound)
}

func TestStore_Find(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sc := New("reference")
	require.NoError(t, s.Create(ctx, sc))

	byID, err := s.Find(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "reference", byID.Name)

	byName, err := s.Find(ctx, "reference")
	require.NoError(t, err)
	assert.Equal(t, sc.ID, byName.ID)

	_, err = s.Find(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FileBacked(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gowst.db")

	s, err := NewStore(path)
	require.NoError(t, err)
	sc := New("persisted")
	require.NoError(t, s.Create(ctx, sc))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Ping(ctx))

	got, err := s.Get(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
}
