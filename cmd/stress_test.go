package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiusacademia/gowst/internal/wellbore"
)

func TestDisplayProfile(t *testing.T) {
	a := wellbore.Evaluate(wellbore.DefaultParams())

	p, unit, normalized := displayProfile(a, false)
	assert.Same(t, a.Profile, p)
	assert.Equal(t, "MPa", unit)
	assert.False(t, normalized)

	p, unit, normalized = displayProfile(a, true)
	assert.NotSame(t, a.Profile, p)
	assert.Equal(t, "× S1'", unit)
	assert.True(t, normalized)

	// zero effective S1 leaves the profile in MPa
	zp := wellbore.DefaultParams()
	zp.PorePressure = zp.S1
	z := wellbore.Evaluate(zp)
	p, unit, normalized = displayProfile(z, true)
	assert.Same(t, z.Profile, p)
	assert.Equal(t, "MPa", unit)
	assert.False(t, normalized)
}
