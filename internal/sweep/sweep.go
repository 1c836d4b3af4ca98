// Package sweep evaluates the wall stress field and the failure criteria
// over every borehole orientation of an azimuth × inclination grid.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/frame"
	"github.com/alexiusacademia/gowst/internal/stress"
)

// Default grid resolution (deg)
const (
	DefaultAzimuthStep     = 2.0
	DefaultInclinationStep = 2.0
	DefaultThetaStep       = 0.1
)

// Grid extents (deg). Azimuth and θ are half-open, inclination is closed.
const (
	MaxAzimuth     = 360.0
	MaxInclination = 90.0
	MaxTheta       = 180.0
)

// Finest accepted resolution (deg). A 0.1° grid over 0.01° wall sampling
// is already 3600×901 cells of 18000 wall samples each.
const (
	MinGridStep  = 0.1
	MinThetaStep = 0.01
)

// ErrInvalidSpec is returned when a Spec cannot describe a grid
var ErrInvalidSpec = errors.New("sweep: invalid spec")

// Mode selects the quantity mapped over the grid
type Mode string

const (
	// ModeTensile maps the mud pressure that initiates tensile fracturing
	ModeTensile Mode = "tensile"
	// ModeBreakout maps the rock strength required to prevent breakout
	ModeBreakout Mode = "breakout"
)

// ParseMode converts a user supplied name into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTensile, ModeBreakout:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want %q or %q)", ErrInvalidSpec, s, ModeTensile, ModeBreakout)
}

// Input is the resolved state shared by every cell. Stresses are
// effective (pore pressure removed), angles are in degrees.
type Input struct {
	S1, S2, S3 float64

	Alpha, Beta, Gamma float64

	PoissonRatio         float64
	PressureDifferential float64 // Δp = mud − pore
	PorePressure         float64
	TensileStrength      float64
	Friction             float64
}

// Spec describes the grid resolution
type Spec struct {
	AzimuthStep     float64
	InclinationStep float64
	ThetaStep       float64
	Mode            Mode
	Workers         int // ≤ 0 uses GOMAXPROCS
}

// DefaultSpec returns the standard 2°×2° grid with 0.1° wall sampling
func DefaultSpec(mode Mode) Spec {
	return Spec{
		AzimuthStep:     DefaultAzimuthStep,
		InclinationStep: DefaultInclinationStep,
		ThetaStep:       DefaultThetaStep,
		Mode:            mode,
	}
}

// Validate checks that the steps are finite, no finer than the minimum
// resolution and no coarser than the grid extent, and that the mode is known
func (s Spec) Validate() error {
	steps := []struct {
		name string
		v    float64
		min  float64
	}{
		{"azimuth step", s.AzimuthStep, MinGridStep},
		{"inclination step", s.InclinationStep, MinGridStep},
		{"theta step", s.ThetaStep, MinThetaStep},
	}
	for _, st := range steps {
		if !(st.v > 0) || math.IsInf(st.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSpec, st.name, st.v)
		}
		if st.v < st.min {
			return fmt.Errorf("%w: %s must be at least %v, got %v", ErrInvalidSpec, st.name, st.min, st.v)
		}
	}
	if s.InclinationStep > MaxInclination || s.AzimuthStep > MaxAzimuth || s.ThetaStep > MaxTheta {
		return fmt.Errorf("%w: step larger than the grid extent", ErrInvalidSpec)
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	return nil
}

// Grid holds one value per orientation, indexed [inclination][azimuth]
type Grid struct {
	Mode         Mode
	Azimuths     []float64
	Inclinations []float64
	Values       [][]float64

	// Per-cell wall extrema, filled in breakout mode
	MaxTangential [][]float64
	MinTangential [][]float64
}

// Rows returns the number of inclinations
func (g *Grid) Rows() int { return len(g.Inclinations) }

// Cols returns the number of azimuths
func (g *Grid) Cols() int { return len(g.Azimuths) }

// Len returns the number of cells
func (g *Grid) Len() int { return g.Rows() * g.Cols() }

// At returns the value at azimuth index ia and inclination index ii
func (g *Grid) At(ia, ii int) float64 {
	return g.Values[ii][ia]
}

// Range returns the smallest and largest finite values of the grid.
// Both are NaN when the grid holds no finite value.
func (g *Grid) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}

// Cell identifies one orientation of the grid and its value
type Cell struct {
	Azimuth     float64
	Inclination float64
	Value       float64
}

// Min returns the cell with the smallest finite value. ok is false when
// the grid holds no finite value.
func (g *Grid) Min() (c Cell, ok bool) {
	return g.extreme(func(v, best float64) bool { return v < best })
}

// Max returns the cell with the largest finite value.
func (g *Grid) Max() (c Cell, ok bool) {
	return g.extreme(func(v, best float64) bool { return v > best })
}

func (g *Grid) extreme(better func(v, best float64) bool) (c Cell, ok bool) {
	for ii, row := range g.Values {
		for ia, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !ok || better(v, c.Value) {
				c = Cell{Azimuth: g.Azimuths[ia], Inclination: g.Inclinations[ii], Value: v}
				ok = true
			}
		}
	}
	return c, ok
}

// CellAt returns the cell at azimuth index ia and inclination index ii
func (g *Grid) CellAt(ia, ii int) Cell {
	return Cell{Azimuth: g.Azimuths[ia], Inclination: g.Inclinations[ii], Value: g.Values[ii][ia]}
}

// Nearest returns the indices of the cell closest to the given orientation.
// Azimuth distance wraps at 360°. ok is false for an empty grid.
func (g *Grid) Nearest(azimuth, inclination float64) (ia, ii int, ok bool) {
	if g.Len() == 0 {
		return 0, 0, false
	}
	azimuth = math.Mod(azimuth, MaxAzimuth)
	if azimuth < 0 {
		azimuth += MaxAzimuth
	}
	best := math.Inf(1)
	for i, az := range g.Azimuths {
		d := math.Abs(az - azimuth)
		d = math.Min(d, MaxAzimuth-d)
		if d < best {
			best, ia = d, i
		}
	}
	best = math.Inf(1)
	for i, inc := range g.Inclinations {
		if d := math.Abs(inc - inclination); d < best {
			best, ii = d, i
		}
	}
	return ia, ii, true
}

// Inclinations returns 0, step, 2·step, ... with the last entry clamped
// to 90°, ⌈90/step⌉+1 values in total.
func Inclinations(step float64) []float64 {
	if step <= 0 {
		return nil
	}
	n := int(math.Ceil(MaxInclination/step-1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Min(float64(i)*step, MaxInclination)
	}
	return out
}

// Run evaluates every cell of the grid. Rows are computed concurrently,
// each cell written exactly once. ctx is checked before every cell; once
// it is done the sweep stops and its error is returned.
func Run(ctx context.Context, in Input, spec Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := &Grid{
		Mode:         spec.Mode,
		Azimuths:     stress.Angles(0, MaxAzimuth, spec.AzimuthStep),
		Inclinations: Inclinations(spec.InclinationStep),
	}
	rows, cols := g.Rows(), g.Cols()
	g.Values = alloc(rows, cols)
	if spec.Mode == ModeBreakout {
		g.MaxTangential = alloc(rows, cols)
		g.MinTangential = alloc(rows, cols)
	}

	θs := stress.Angles(0, MaxTheta, spec.ThetaStep)
	Σ := stress.Principal(in.S1, in.S2, in.S3)
	Re := frame.FromEuler(in.Alpha, in.Beta, in.Gamma)
	// the geographic tensor does not depend on the borehole orientation
	geo := stress.Geographic(Σ, Re)

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for ii := range g.Inclinations {
		ii := ii
		eg.Go(func() error {
			inc := g.Inclinations[ii]
			for ia, az := range g.Azimuths {
				if err := ctx.Err(); err != nil {
					return err
				}
				c := evaluate(geo, az, inc, θs, in)
				switch spec.Mode {
				case ModeTensile:
					g.Values[ii][ia] = c.tensile
				case ModeBreakout:
					g.Values[ii][ia] = c.breakout
					g.MaxTangential[ii][ia] = c.maxMax
					g.MinTangential[ii][ia] = c.maxMin
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func alloc(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}

// cell holds the reductions of one orientation
type cell struct {
	maxMax   float64 // max over θ of MaxTangential
	maxMin   float64 // max over θ of MinTangential
	minHoop  float64 // min over θ of σθθ
	tensile  float64
	breakout float64
}

// evaluate reduces the wall field of one orientation without keeping the
// per-θ samples.
func evaluate(geo stress.Tensor, az, inc float64, θs []float64, in Input) cell {
	Rbh := frame.FromAzimuthInclination(az, inc)
	B := stress.Transform(geo, Rbh.Transpose())

	c := cell{
		maxMax:  math.Inf(-1),
		maxMin:  math.Inf(-1),
		minHoop: math.Inf(1),
	}
	for _, θ := range θs {
		w := stress.Wall(B, θ, in.PoissonRatio, in.PressureDifferential)
		c.maxMax = math.Max(c.maxMax, w.MaxTangential)
		c.maxMin = math.Max(c.maxMin, w.MinTangential)
		c.minHoop = math.Min(c.minHoop, w.Tangential)
	}
	c.tensile = failure.TensilePressure(c.minHoop, in.TensileStrength, in.PorePressure)
	c.breakout = failure.BreakoutUCS(c.maxMax, in.PressureDifferential, in.Friction)
	return c
}
