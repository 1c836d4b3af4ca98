package stress

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// WallSample holds the stresses at one angular position θ on the wall (MPa)
type WallSample struct {
	Theta         float64 // angular position (deg)
	Axial         float64 // σzz
	Tangential    float64 // σθθ (hoop)
	Shear         float64 // τθz
	MaxTangential float64 // larger eigenvalue of the {σzz, σθθ, τ} block
	MinTangential float64 // smaller eigenvalue of the {σzz, σθθ, τ} block
}

// WallProfile is the batched form of WallSample, one entry per θ
type WallProfile struct {
	Theta         []float64
	Axial         []float64
	Tangential    []float64
	Shear         []float64
	MaxTangential []float64
	MinTangential []float64
}

// Wall evaluates the poroelastic Kirsch solution at the wall for angle θ
// (deg), Poisson's ratio ν and pressure differential Δp (mud − pore).
func Wall(Σ Tensor, θ, ν, Δp float64) WallSample {
	zz, tt, τ, smax, smin := wallAt(Σ, θ, ν, Δp)
	return WallSample{
		Theta:         θ,
		Axial:         zz,
		Tangential:    tt,
		Shear:         τ,
		MaxTangential: smax,
		MinTangential: smin,
	}
}

// Profile evaluates Wall for every angle in θs
func Profile(Σ Tensor, θs []float64, ν, Δp float64) *WallProfile {
	n := len(θs)
	p := &WallProfile{
		Theta:         append([]float64(nil), θs...),
		Axial:         make([]float64, n),
		Tangential:    make([]float64, n),
		Shear:         make([]float64, n),
		MaxTangential: make([]float64, n),
		MinTangential: make([]float64, n),
	}
	for i, θ := range θs {
		p.Axial[i], p.Tangential[i], p.Shear[i], p.MaxTangential[i], p.MinTangential[i] = wallAt(Σ, θ, ν, Δp)
	}
	return p
}

// wallAt is shared by the scalar and batched forms so both use one formula
func wallAt(Σ Tensor, θ, ν, Δp float64) (zz, tt, τ, smax, smin float64) {
	t := θ * math.Pi / 180
	s1, c1 := math.Sincos(t)
	s2, c2 := math.Sincos(2 * t)

	s11, s22, s33 := Σ[0][0], Σ[1][1], Σ[2][2]
	s12, s23, s13 := Σ[0][1], Σ[1][2], Σ[0][2]

	zz = s33 - 2*ν*(s11-s22)*c2 - 4*ν*s12*s2
	tt = s11 + s22 - 2*(s11-s22)*c2 - 4*s12*s2 - Δp
	τ = 2 * (s23*c1 - s13*s1)

	// discriminant is a sum of squares
	r := math.Sqrt((zz-tt)*(zz-tt) + 4*τ*τ)
	smax = 0.5 * (zz + tt + r)
	smin = 0.5 * (zz + tt - r)
	return
}

// Len returns the number of samples
func (p *WallProfile) Len() int {
	return len(p.Theta)
}

// At returns sample i
func (p *WallProfile) At(i int) WallSample {
	return WallSample{
		Theta:         p.Theta[i],
		Axial:         p.Axial[i],
		Tangential:    p.Tangential[i],
		Shear:         p.Shear[i],
		MaxTangential: p.MaxTangential[i],
		MinTangential: p.MinTangential[i],
	}
}

// MaxOfMax returns the largest maximum tangential stress around the wall
func (p *WallProfile) MaxOfMax() float64 {
	return maxOf(p.MaxTangential)
}

// MaxOfMin returns the largest minimum tangential stress around the wall
func (p *WallProfile) MaxOfMin() float64 {
	return maxOf(p.MinTangential)
}

// MinTangentialStress returns the smallest hoop stress σθθ around the wall
func (p *WallProfile) MinTangentialStress() float64 {
	if len(p.Tangential) == 0 {
		return math.NaN()
	}
	return floats.Min(p.Tangential)
}

// floats.Max panics on an empty slice
func maxOf(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return floats.Max(s)
}

// Scaled returns a copy of the profile with every stress divided by s
func (p *WallProfile) Scaled(s float64) *WallProfile {
	q := &WallProfile{
		Theta:         append([]float64(nil), p.Theta...),
		Axial:         append([]float64(nil), p.Axial...),
		Tangential:    append([]float64(nil), p.Tangential...),
		Shear:         append([]float64(nil), p.Shear...),
		MaxTangential: append([]float64(nil), p.MaxTangential...),
		MinTangential: append([]float64(nil), p.MinTangential...),
	}
	inv := 1 / s
	floats.Scale(inv, q.Axial)
	floats.Scale(inv, q.Tangential)
	floats.Scale(inv, q.Shear)
	floats.Scale(inv, q.MaxTangential)
	floats.Scale(inv, q.MinTangential)
	return q
}

// Angles returns start, start+step, ... strictly below stop. Values are
// computed by index so 0..360 at 0.1 gives exactly 3600 samples.
func Angles(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
