// Package stress assembles stress tensors, rotates them into the borehole
// frame and evaluates the closed-form stress field at the borehole wall.
package stress

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gowst/internal/frame"
)

// Tensor is a symmetric 3×3 stress tensor (MPa)
type Tensor = frame.Matrix

// Principal returns the diagonal principal-stress tensor
func Principal(s1, s2, s3 float64) Tensor {
	return frame.Diag(s1, s2, s3)
}

// Transform re-expresses Σ in the basis rotated by R: Rᵗ·Σ·R
func Transform(Σ Tensor, R frame.Matrix) Tensor {
	var out mat.Dense
	out.Product(dense(R).T(), dense(Σ), dense(R))
	return fromDense(&out)
}

// Geographic rotates the principal tensor into the geographic frame
// using the Euler rotation: Reᵗ·Σ·Re
func Geographic(Σ Tensor, Re frame.Matrix) Tensor {
	return Transform(Σ, Re)
}

// Borehole returns the stress tensor in borehole coordinates:
//
//	Rbh · (Reᵗ · Σ · Re) · Rbhᵗ
//
// The order is fixed. Swapping the rotations gives a different, physically
// wrong tensor without any error.
func Borehole(Σ Tensor, Re, Rbh frame.Matrix) Tensor {
	return Transform(Geographic(Σ, Re), Rbh.Transpose())
}

func dense(m frame.Matrix) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

func fromDense(d *mat.Dense) Tensor {
	var t Tensor
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = d.At(i, j)
		}
	}
	return t
}
