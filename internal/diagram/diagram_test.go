package diagram

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/stress"
	"github.com/alexiusacademia/gowst/internal/sweep"
)

func testProfile() *stress.WallProfile {
	Σ := stress.Principal(38, 35, 13)
	return stress.Profile(Σ, stress.Angles(0, 360, 1), 0.15, 0)
}

func testGrid() *sweep.Grid {
	return &sweep.Grid{
		Mode:         sweep.ModeTensile,
		Azimuths:     []float64{0, 90, 180, 270},
		Inclinations: []float64{0, 45, 90},
		Values: [][]float64{
			{99, 99, 99, 99},
			{60, 50, 60, 50},
			{33, math.NaN(), 33, 40},
		},
	}
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("RESULTS", []string{"σmax = 100.83 MPa", "c = 20.88 MPa"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	// every row has the same visible width
	w := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, w, utf8.RuneCountInString(l), l)
	}
	assert.Contains(t, out, "RESULTS")
	assert.True(t, strings.HasPrefix(lines[0], "  ╔"))
}

func TestDrawProfileChart(t *testing.T) {
	out := DrawProfileChart(testProfile(), "Wall stresses")
	assert.Contains(t, out, "Wall stresses")
	assert.Contains(t, out, "θ from 0.0° to 359.0°")

	assert.Empty(t, DrawProfileChart(&stress.WallProfile{}, "x"))
}

func TestDrawPolarMap(t *testing.T) {
	out := DrawPolarMap(testGrid(), Orientation{Azimuth: 180, Inclination: 50})
	assert.Contains(t, out, "TENSILE MAP")
	assert.Contains(t, out, "?")
	assert.Contains(t, out, "33.00 MPa")
	assert.Contains(t, out, "99.00 MPa")

	// top row is the maximum everywhere
	assert.Contains(t, out, "  0.0° │@@@@│")

	// the well sits in the 45° row, third column
	assert.Contains(t, out, " 45.0° │")
	row := out[strings.Index(out, " 45.0° │"):]
	row = row[:strings.Index(row, "\n")]
	assert.Equal(t, 2, strings.IndexRune(strings.TrimPrefix(row, " 45.0° │"), 'X'))
	assert.Equal(t, 2, strings.Count(out, "X"), "one cell and the legend")
	assert.Contains(t, out, "current well (az 180.0°, inc 50.0°): 60.00 MPa")
	assert.Empty(t, DrawPolarMap(&sweep.Grid{}, Orientation{}))
}

func TestShade(t *testing.T) {
	assert.Equal(t, ' ', shade(0, 0, 10))
	assert.Equal(t, '@', shade(10, 0, 10))
	assert.Equal(t, '@', shade(12, 0, 10))
	assert.Equal(t, '?', shade(math.Inf(1), 0, 10))
	assert.Equal(t, shades[len(shades)/2], shade(5, 5, 0))
}

func TestDecimate(t *testing.T) {
	s := make([]float64, 3600)
	for i := range s {
		s[i] = float64(i)
	}
	d := decimate(s, 72)
	require.Len(t, d, 72)
	assert.Equal(t, 0.0, d[0])
	assert.Equal(t, 3599.0, d[71])

	short := []float64{1, 2}
	assert.Equal(t, short, decimate(short, 72))
}

func TestExportDiagrams(t *testing.T) {
	dir := t.TempDir()

	profile := filepath.Join(dir, "out", "profile.png")
	require.NoError(t, ExportProfileDiagram(testProfile(), "Wall stresses", profile))
	assert.FileExists(t, profile)

	mohr := filepath.Join(dir, "mohr.svg")
	require.NoError(t, ExportMohrDiagram(failure.MohrCoulomb(100.83, 42.28, 0, 1), mohr))
	assert.FileExists(t, mohr)

	polar := filepath.Join(dir, "polar.PDF")
	require.NoError(t, ExportPolarMap(testGrid(), Orientation{Azimuth: 90, Inclination: 85}, polar))
	assert.FileExists(t, polar)

	// unknown extensions are rejected and nothing is written
	bad := filepath.Join(dir, "polar.img")
	err := ExportPolarMap(testGrid(), Orientation{}, bad)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, bad)
	assert.NoFileExists(t, bad+".png")
	assert.ErrorIs(t, ExportProfileDiagram(testProfile(), "", filepath.Join(dir, "profile")), ErrUnsupportedFormat)

	info, err := os.Stat(profile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportRejectsEmptyData(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ExportProfileDiagram(&stress.WallProfile{}, "", filepath.Join(dir, "a.png")))
	assert.Error(t, ExportPolarMap(&sweep.Grid{}, Orientation{}, filepath.Join(dir, "b.png")))
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"a.png", "out/b.svg", "c.PDF"} {
		assert.NoError(t, CheckFormat(f), f)
	}
	for _, f := range []string{"a", "b.jpg", "c.png.txt"} {
		assert.ErrorIs(t, CheckFormat(f), ErrUnsupportedFormat, f)
	}
}

func TestHeatGridRange(t *testing.T) {
	h := heatGrid{g: testGrid()}
	c, r := h.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 3, r)
	assert.Equal(t, 33.0, h.Min())
	assert.Equal(t, 99.0, h.Max())
	assert.Equal(t, 90.0, h.Y(1)*2)

	flat := heatGrid{g: &sweep.Grid{Azimuths: []float64{0}, Inclinations: []float64{0}, Values: [][]float64{{7}}}}
	assert.Equal(t, 6.5, flat.Min())
	assert.Equal(t, 7.5, flat.Max())
}
