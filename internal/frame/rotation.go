// Package frame builds the rotation matrices that carry stresses between the
// principal-stress frame, the geographic frame and the borehole frame.
//
// All angles are in degrees. No range checks are applied: the trigonometric
// functions make every angle periodic, so out-of-range input yields the
// equivalent in-range rotation.
package frame

import "math"

// Matrix is a 3×3 matrix stored row-major. Value type, no heap allocation.
type Matrix [3][3]float64

// Identity returns the 3×3 identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Diag returns a diagonal matrix with the given entries
func Diag(a, b, c float64) Matrix {
	return Matrix{
		{a, 0, 0},
		{0, b, 0},
		{0, 0, c},
	}
}

// FromEuler returns the rotation of the principal-stress frame relative to
// the geographic frame. α, β and γ rotate about the original x, y and z
// axes, composed in that fixed order.
//
// Global to local uses the transpose of this matrix, local to global uses
// the matrix itself.
func FromEuler(α, β, γ float64) Matrix {
	sa, ca := math.Sincos(toRad(α))
	sb, cb := math.Sincos(toRad(β))
	sg, cg := math.Sincos(toRad(γ))
	return Matrix{
		{ca * cb, sa * cb, -sb},
		{ca*sb*sg - sa*cg, sa*sb*sg + ca*cg, cb * sg},
		{ca*sb*cg + sa*sg, sa*sb*cg - ca*sg, cb * cg},
	}
}

// FromAzimuthInclination returns the rotation of the borehole frame
// relative to the geographic frame. Azimuth is measured clockwise from
// north and inclination from vertical.
//
// The zero at [1][2] keeps the borehole x-axis horizontal; it is part of
// the convention, not a simplification.
func FromAzimuthInclination(azimuth, inclination float64) Matrix {
	saz, caz := math.Sincos(toRad(azimuth))
	sinc, cinc := math.Sincos(toRad(inclination))
	return Matrix{
		{-caz * cinc, -saz * cinc, sinc},
		{saz, -caz, 0},
		{caz * sinc, saz * sinc, cinc},
	}
}

// Mul returns m × other
func (m Matrix) Mul(other Matrix) Matrix {
	var result Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// Transpose returns mᵗ
func (m Matrix) Transpose() Matrix {
	return Matrix{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Det returns the determinant of m
func (m Matrix) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Trace returns the sum of the diagonal entries
func (m Matrix) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// IsOrthonormal reports whether ‖m·mᵗ − I‖∞ < tol and det(m) is within tol
// of +1.
func (m Matrix) IsOrthonormal(tol float64) bool {
	p := m.Mul(m.Transpose())
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(p[i][j]-id[i][j]) >= tol {
				return false
			}
		}
	}
	return math.Abs(m.Det()-1) < tol
}

// IsSymmetric reports whether |m[i][j] − m[j][i]| < tol for all i, j.
func (m Matrix) IsSymmetric(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[i][j]-m[j][i]) >= tol {
				return false
			}
		}
	}
	return true
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
