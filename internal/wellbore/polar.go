package wellbore

import (
	"context"

	"github.com/alexiusacademia/gowst/internal/sweep"
)

// SweepInput converts the parameters into the orientation-independent
// input of a grid sweep. Azimuth and inclination are ignored.
func (p Params) SweepInput() sweep.Input {
	s1, s2, s3 := p.EffectiveStresses()
	return sweep.Input{
		S1:                   s1,
		S2:                   s2,
		S3:                   s3,
		Alpha:                p.Alpha,
		Beta:                 p.Beta,
		Gamma:                p.Gamma,
		PoissonRatio:         p.PoissonRatio,
		PressureDifferential: p.PressureDifferential(),
		PorePressure:         p.PorePressure,
		TensileStrength:      p.TensileStrength,
		Friction:             p.FrictionCoefficient,
	}
}

// Polar validates p and sweeps every orientation of the grid described by spec
func Polar(ctx context.Context, p Params, spec sweep.Spec) (*sweep.Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return sweep.Run(ctx, p.SweepInput(), spec)
}
