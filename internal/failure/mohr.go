// Package failure implements the failure criteria evaluated at the borehole
// wall: Mohr-Coulomb shear failure (breakout) and tensile fracturing.
package failure

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultCirclePoints is the number of points per Mohr circle used for plots
const DefaultCirclePoints = 201

// DefaultEnvelopePoints is the number of points of the envelope line
const DefaultEnvelopePoints = 100

// Envelope is the linear Mohr-Coulomb failure envelope τ = μ·σn + c
// together with the three stresses its circles are built from (MPa).
type Envelope struct {
	Friction  float64 // μ, internal friction coefficient
	Intercept float64 // c, envelope intercept (cohesion)
	UCS       float64 // unconfined compressive strength

	MaxStress          float64 // largest stress of the state
	IntermediateStress float64
	MinStress          float64 // smallest stress of the state
}

// Circle is a Mohr semicircle sampled for plotting
type Circle struct {
	Center float64
	Radius float64
	Normal []float64 // σn
	Shear  []float64 // τ ≥ 0
}

// Factor returns √(μ²+1) + μ. It is strictly positive for every finite μ.
func Factor(μ float64) float64 {
	return math.Sqrt(μ*μ+1) + μ
}

// FrictionAngle returns the internal friction angle φ = atan(μ) in degrees
func FrictionAngle(μ float64) float64 {
	return math.Atan(μ) * 180 / math.Pi
}

// MohrCoulomb builds the failure envelope for the stress state
// {σmax, σint, σmin} and friction coefficient μ.
//
// Only the (σmax, σmin) pair sets the intercept:
//
//	c   = (σmax − σmin) / (2·(√(μ²+1)+μ))
//	UCS = σmax − σmin·(√(μ²+1)+μ)²
//
// At the borehole wall σmin is the radial stress, i.e. the pressure
// differential Δp. The UCS expression is kept in exactly this form.
func MohrCoulomb(σmax, σint, σmin, μ float64) Envelope {
	q := Factor(μ)
	return Envelope{
		Friction:           μ,
		Intercept:          (σmax - σmin) / (2 * q),
		UCS:                σmax - σmin*q*q,
		MaxStress:          σmax,
		IntermediateStress: σint,
		MinStress:          σmin,
	}
}

// ShearAt returns the envelope shear stress at normal stress σn
func (e Envelope) ShearAt(σn float64) float64 {
	return e.Friction*σn + e.Intercept
}

// Line samples the envelope over [0, xmax] with n points
func (e Envelope) Line(xmax float64, n int) (σn, τ []float64) {
	if n < 2 {
		n = 2
	}
	σn = floats.Span(make([]float64, n), 0, xmax)
	τ = make([]float64, n)
	for i, x := range σn {
		τ[i] = e.ShearAt(x)
	}
	return σn, τ
}

// Circles returns the circles (max, min), (max, intermediate) and
// (intermediate, min), each sampled with n points.
func (e Envelope) Circles(n int) [3]Circle {
	return [3]Circle{
		MohrCircle(e.MaxStress, e.MinStress, n),
		MohrCircle(e.MaxStress, e.IntermediateStress, n),
		MohrCircle(e.IntermediateStress, e.MinStress, n),
	}
}

// MohrCircle returns the upper semicircle through (σb, 0) and (σa, 0):
// center (σa+σb)/2, radius |σa−σb|/2, sampled at n evenly spaced normal
// stresses across [min(σa,σb), max(σa,σb)].
func MohrCircle(σa, σb float64, n int) Circle {
	if n < 2 {
		n = 2
	}
	lo, hi := math.Min(σa, σb), math.Max(σa, σb)
	c := Circle{
		Center: (σa + σb) / 2,
		Radius: (hi - lo) / 2,
		Normal: floats.Span(make([]float64, n), lo, hi),
		Shear:  make([]float64, n),
	}
	c.Normal[0], c.Normal[n-1] = lo, hi

	r2 := c.Radius * c.Radius
	for i, x := range c.Normal {
		d := x - c.Center
		c.Shear[i] = math.Sqrt(math.Max(r2-d*d, 0))
	}
	return c
}
