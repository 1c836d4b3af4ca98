// Package diagram renders analysis results as terminal charts and as
// image files.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gowst/internal/stress"
	"github.com/alexiusacademia/gowst/internal/sweep"
)

// Terminal chart size
const (
	ChartWidth  = 72
	ChartHeight = 16
)

// shades from lowest to highest value
var shades = []rune(" .:-=+*#%@")

// DrawProfileChart plots the hoop stress and the tangential extrema
// against θ. The profile is decimated to the chart width.
func DrawProfileChart(profile *stress.WallProfile, caption string) string {
	if profile.Len() == 0 {
		return ""
	}

	series := [][]float64{
		decimate(profile.Tangential, ChartWidth),
		decimate(profile.MaxTangential, ChartWidth),
		decimate(profile.MinTangential, ChartWidth),
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciigraph.PlotMany(series,
		asciigraph.Height(ChartHeight),
		asciigraph.Width(ChartWidth),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  θ from %.1f° to %.1f°; series: σθθ, σt max, σt min\n",
		profile.Theta[0], profile.Theta[profile.Len()-1]))
	return sb.String()
}

// wellMark marks the cell nearest the current well orientation
const wellMark = 'X'

// DrawPolarMap draws the orientation grid as a shaded map, one character
// per cell. Rows run from vertical (top) to horizontal (bottom). The cell
// nearest the well orientation is drawn as 'X'.
func DrawPolarMap(g *sweep.Grid, well Orientation) string {
	if g.Len() == 0 {
		return ""
	}
	lo, hi := g.Range()
	span := hi - lo
	wa, wi, _ := g.Nearest(well.Azimuth, well.Inclination)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s MAP  (azimuth →, inclination ↓)\n", strings.ToUpper(string(g.Mode))))
	sb.WriteString("  " + strings.Repeat("─", g.Cols()+12) + "\n")

	for ii, inc := range g.Inclinations {
		sb.WriteString(fmt.Sprintf("  %5.1f° │", inc))
		for ia := range g.Azimuths {
			if ia == wa && ii == wi {
				sb.WriteRune(wellMark)
				continue
			}
			sb.WriteRune(shade(g.At(ia, ii), lo, span))
		}
		sb.WriteString("│\n")
	}

	sb.WriteString(fmt.Sprintf("  %6s └%s┘\n", "", strings.Repeat("─", g.Cols())))
	sb.WriteString(fmt.Sprintf("  %8s0°%*s\n", "", g.Cols()-2, fmt.Sprintf("%.0f°", g.Azimuths[g.Cols()-1])))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Legend: '%c' = %.2f MPa ... '%c' = %.2f MPa\n",
		shades[0], lo, shades[len(shades)-1], hi))
	c := g.CellAt(wa, wi)
	sb.WriteString(fmt.Sprintf("          '%c' = current well (az %.1f°, inc %.1f°): %.2f MPa\n",
		wellMark, well.Azimuth, well.Inclination, c.Value))
	return sb.String()
}

func shade(v, lo, span float64) rune {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return '?'
	}
	if span <= 0 || math.IsNaN(span) {
		return shades[len(shades)/2]
	}
	i := int((v - lo) / span * float64(len(shades)-1))
	return shades[min(max(i, 0), len(shades)-1)]
}

// decimate picks at most n evenly spaced samples of s, keeping the last one
func decimate(s []float64, n int) []float64 {
	if len(s) <= n || n < 2 {
		return s
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s[i*(len(s)-1)/(n-1)]
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4

	border := strings.Repeat("═", width)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, width-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, width-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}
