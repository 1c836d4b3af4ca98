package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/stress"
	"github.com/alexiusacademia/gowst/internal/sweep"
)

// Number of colours of the orientation map palette
const heatColors = 64

var (
	axialColor      = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	tangentialColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	maxColor        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	minColor        = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	circleColor     = color.RGBA{R: 100, G: 149, B: 237, A: 255}
)

// ExportProfileDiagram exports the wall stresses against θ to an image file
func ExportProfileDiagram(profile *stress.WallProfile, title, filename string) error {
	if profile.Len() == 0 {
		return fmt.Errorf("empty wall profile")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "θ (deg)"
	p.Y.Label.Text = "Stress (MPa)"
	p.X.Min, p.X.Max = profile.Theta[0], profile.Theta[profile.Len()-1]
	p.Legend.Top = true

	series := []struct {
		name   string
		values []float64
		color  color.Color
		dashed bool
	}{
		{"σzz", profile.Axial, axialColor, false},
		{"σθθ", profile.Tangential, tangentialColor, false},
		{"σt max", profile.MaxTangential, maxColor, true},
		{"σt min", profile.MinTangential, minColor, true},
	}

	for _, s := range series {
		line, err := plotter.NewLine(xys(profile.Theta, s.values))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = s.color
		if s.dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	zeroLine, err := plotter.NewLine(plotter.XYs{
		{X: p.X.Min, Y: 0},
		{X: p.X.Max, Y: 0},
	})
	if err != nil {
		return err
	}
	zeroLine.LineStyle.Width = vg.Points(1)
	zeroLine.LineStyle.Color = color.Gray{Y: 128}
	zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zeroLine)

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportMohrDiagram exports the three Mohr circles and the failure envelope
func ExportMohrDiagram(env failure.Envelope, filename string) error {
	p := plot.New()
	p.Title.Text = "Mohr-Coulomb Failure Envelope"
	p.X.Label.Text = "σn (MPa)"
	p.Y.Label.Text = "τ (MPa)"
	p.Legend.Top = true
	p.Legend.Left = true

	for i, c := range env.Circles(failure.DefaultCirclePoints) {
		line, err := plotter.NewLine(xys(c.Normal, c.Shear))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = circleColor
		if i > 0 {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
	}

	σn, τ := env.Line(1.5*env.MaxStress, failure.DefaultEnvelopePoints)
	envLine, err := plotter.NewLine(xys(σn, τ))
	if err != nil {
		return err
	}
	envLine.LineStyle.Width = vg.Points(2)
	envLine.LineStyle.Color = maxColor
	p.Add(envLine)
	p.Legend.Add(fmt.Sprintf("τ = %.2f·σn + %.2f", env.Friction, env.Intercept), envLine)

	principal, err := plotter.NewScatter(plotter.XYs{
		{X: env.MinStress, Y: 0},
		{X: env.IntermediateStress, Y: 0},
		{X: env.MaxStress, Y: 0},
	})
	if err != nil {
		return err
	}
	principal.GlyphStyle.Color = tangentialColor
	principal.GlyphStyle.Radius = vg.Points(4)
	principal.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(principal)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{{X: env.MaxStress, Y: env.Intercept}},
		Labels: []string{
			fmt.Sprintf("c=%.2f UCS=%.2f", env.Intercept, env.UCS),
		},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	p.Y.Min = 0
	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// Orientation is a borehole orientation marked on a map (deg)
type Orientation struct {
	Azimuth     float64
	Inclination float64
}

// ExportPolarMap exports an orientation sweep as a heat map of azimuth
// against inclination, with the current well orientation marked.
func ExportPolarMap(g *sweep.Grid, well Orientation, filename string) error {
	if g.Len() == 0 {
		return fmt.Errorf("empty orientation grid")
	}
	if err := CheckFormat(filename); err != nil {
		return err
	}

	lo, hi := g.Range()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%.2f to %.2f MPa)", mapTitle(g.Mode), lo, hi)
	p.X.Label.Text = "Azimuth (deg)"
	p.Y.Label.Text = "Inclination (deg)"

	hm := plotter.NewHeatMap(heatGrid{g: g}, palette.Heat(heatColors, 1))
	hm.NaN = color.Transparent
	p.Add(hm)

	marker, err := plotter.NewScatter(plotter.XYs{{X: well.Azimuth, Y: well.Inclination}})
	if err != nil {
		return fmt.Errorf("create well marker: %w", err)
	}
	marker.GlyphStyle.Shape = draw.CrossGlyph{}
	marker.GlyphStyle.Color = color.Black
	marker.GlyphStyle.Radius = vg.Points(6)
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("Current well orientation (%.1f°, %.1f°)", well.Azimuth, well.Inclination), marker)
	p.Legend.Top = true

	return save(p, 9*vg.Inch, 5*vg.Inch, filename)
}

func mapTitle(m sweep.Mode) string {
	switch m {
	case sweep.ModeTensile:
		return "Mud Pressure for Tensile Failure"
	case sweep.ModeBreakout:
		return "Rock Strength to Prevent Breakout"
	}
	return string(m)
}

// heatGrid adapts a sweep grid to plotter.GridXYZ
type heatGrid struct {
	g *sweep.Grid
}

func (h heatGrid) Dims() (c, r int)   { return h.g.Cols(), h.g.Rows() }
func (h heatGrid) Z(c, r int) float64 { return h.g.At(c, r) }
func (h heatGrid) X(c int) float64    { return h.g.Azimuths[c] }
func (h heatGrid) Y(r int) float64    { return h.g.Inclinations[r] }

// Min and Max are picked up by plotter.NewHeatMap. NaN cells are skipped
// and a constant grid gets a unit range.
func (h heatGrid) Min() float64 {
	lo, hi := h.g.Range()
	if lo == hi {
		return lo - 0.5
	}
	return lo
}

func (h heatGrid) Max() float64 {
	lo, hi := h.g.Range()
	if lo == hi {
		return hi + 0.5
	}
	return hi
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// ErrUnsupportedFormat is returned for an output file whose extension
// names no supported image format
var ErrUnsupportedFormat = errors.New("unsupported image format")

// CheckFormat verifies that filename ends in .png, .svg or .pdf
func CheckFormat(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return nil
	}
	return fmt.Errorf("%w: %q (use .png, .svg or .pdf)", ErrUnsupportedFormat, filename)
}

// save writes the plot, picking the format from the file extension
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	if err := CheckFormat(filename); err != nil {
		return err
	}
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return p.Save(width, height, filename)
}
