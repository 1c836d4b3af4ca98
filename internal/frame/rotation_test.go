package frame

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestFromEuler_ZeroIsIdentity(t *testing.T) {
	R := FromEuler(0, 0, 0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, Identity()[i][j], R[i][j], 1e-15, "entry (%d,%d)", i, j)
		}
	}
}

func TestFromEuler_IsOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		α := rng.Float64()*720 - 360
		β := rng.Float64()*720 - 360
		γ := rng.Float64()*720 - 360
		R := FromEuler(α, β, γ)
		require.Truef(t, R.IsOrthonormal(tol), "α=%g β=%g γ=%g: %v", α, β, γ, R)
		assert.InDelta(t, 1.0, R.Det(), tol)
	}
}

func TestFromAzimuthInclination_IsOrthonormal(t *testing.T) {
	for az := 0.0; az < 360; az += 7.5 {
		for inc := 0.0; inc <= 90; inc += 5 {
			R := FromAzimuthInclination(az, inc)
			require.Truef(t, R.IsOrthonormal(tol), "az=%g inc=%g: %v", az, inc, R)
		}
	}
}

func TestFromAzimuthInclination_Entries(t *testing.T) {
	// vertical well pointing north: x flips onto -north, y onto -east
	R := FromAzimuthInclination(0, 0)
	want := Matrix{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, 1},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], R[i][j], 1e-15, "entry (%d,%d)", i, j)
		}
	}

	// horizontal well towards east
	R = FromAzimuthInclination(90, 90)
	assert.InDelta(t, 1.0, R[0][2], 1e-15)
	assert.InDelta(t, 1.0, R[1][0], 1e-15)
	assert.InDelta(t, 1.0, R[2][1], 1e-15)
	assert.Equal(t, 0.0, R[1][2], "[1][2] is structurally zero")
}

func TestAnglesArePeriodic(t *testing.T) {
	a := FromEuler(10, 20, 30)
	b := FromEuler(370, -340, 390)
	c := FromAzimuthInclination(45, 60)
	d := FromAzimuthInclination(405, 420)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, a[i][j], b[i][j], tol)
			assert.InDelta(t, c[i][j], d[i][j], tol)
		}
	}
}

func TestMulTransposeDet(t *testing.T) {
	m := Matrix{
		{2, 0, 1},
		{1, 3, 0},
		{0, 1, 4},
	}
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
	assert.Equal(t, m, m.Transpose().Transpose())
	assert.InDelta(t, 25.0, m.Det(), 1e-12)
	assert.InDelta(t, 9.0, m.Trace(), 1e-12)
	assert.False(t, m.IsSymmetric(tol))
	assert.True(t, Diag(1, 2, 3).IsSymmetric(tol))
	assert.False(t, Diag(1, 2, 3).IsOrthonormal(tol))
}

func TestToRad(t *testing.T) {
	assert.InDelta(t, math.Pi, toRad(180), 1e-15)
}
