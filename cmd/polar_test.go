package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiusacademia/gowst/internal/sweep"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

func TestWellCell(t *testing.T) {
	p := wellbore.DefaultParams()
	g := &sweep.Grid{
		Azimuths:     []float64{0, 90, 180, 270},
		Inclinations: []float64{0, 45, 90},
		Values: [][]float64{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
		},
	}

	// az 90, inc 85 falls in the horizontal row
	c, ok := wellCell(g, p)
	assert.True(t, ok)
	assert.Equal(t, sweep.Cell{Azimuth: 90, Inclination: 90, Value: 10}, c)

	_, ok = wellCell(&sweep.Grid{}, p)
	assert.False(t, ok)
}
