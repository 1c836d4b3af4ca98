package wellbore

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowst/internal/failure"
)

func TestDefaultParamsValidate(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())
	assert.Empty(t, p.Warnings())
	assert.Equal(t, 0.0, p.PressureDifferential())

	s1, s2, s3 := p.EffectiveStresses()
	assert.Equal(t, 38.0, s1)
	assert.Equal(t, 35.0, s2)
	assert.Equal(t, 13.0, s3)
}

func TestValidate_RejectsEachField(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		field  string
	}{
		{"s1 equal to s2", func(p *Params) { p.S1 = p.S2 }, "s1"},
		{"s2 below s3", func(p *Params) { p.S2 = 40 }, "s2"},
		{"poisson too high", func(p *Params) { p.PoissonRatio = 0.6 }, "poisson_ratio"},
		{"poisson too low", func(p *Params) { p.PoissonRatio = -1.5 }, "poisson_ratio"},
		{"negative azimuth", func(p *Params) { p.Azimuth = -1 }, "azimuth"},
		{"azimuth above 360", func(p *Params) { p.Azimuth = 361 }, "azimuth"},
		{"inclination above 90", func(p *Params) { p.Inclination = 91 }, "inclination"},
		{"negative friction", func(p *Params) { p.FrictionCoefficient = -0.1 }, "friction_coefficient"},
		{"negative tensile strength", func(p *Params) { p.TensileStrength = -2 }, "tensile_strength"},
		{"NaN mud pressure", func(p *Params) { p.MudPressure = math.NaN() }, "mud_pressure"},
		{"infinite gamma", func(p *Params) { p.Gamma = math.Inf(-1) }, "gamma"},
		{"overflowing s1", func(p *Params) { p.S1 = 1e308 }, "s1"},
		{"huge negative mud pressure", func(p *Params) { p.MudPressure = -2 * MaxMagnitude }, "mud_pressure"},
		{"huge friction", func(p *Params) { p.FrictionCoefficient = 1e200 }, "friction_coefficient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParams))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestAnalyze_RejectsOverflowingStresses(t *testing.T) {
	p := DefaultParams()
	p.S1, p.S2, p.S3 = 1e308, 1e307, 0

	a, err := Analyze(p)
	assert.Nil(t, a)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "s1", verr.Fields[0].Field)
	assert.Equal(t, "s2", verr.Fields[1].Field)

	// the largest accepted stresses still give finite results
	p.S1, p.S2, p.S3 = MaxMagnitude, MaxMagnitude/2, 0
	a, err = Analyze(p)
	require.NoError(t, err)
	assert.False(t, math.IsInf(a.Envelope.UCS, 0) || math.IsNaN(a.Envelope.UCS))
	assert.False(t, math.IsInf(a.TensileFailurePressure, 0) || math.IsNaN(a.TensileFailurePressure))
}

func TestValidate_ListsEveryField(t *testing.T) {
	p := DefaultParams()
	p.S1 = 10
	p.Inclination = 120
	p.TensileStrength = -1

	var verr *ValidationError
	require.ErrorAs(t, p.Validate(), &verr)
	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.Equal(t, []string{"s1", "inclination", "tensile_strength"}, fields)
}

func TestValidate_Boundaries(t *testing.T) {
	p := DefaultParams()
	p.Azimuth, p.Inclination, p.PoissonRatio = 360, 90, 0.5
	assert.NoError(t, p.Validate())

	p.Azimuth, p.Inclination, p.PoissonRatio = 0, 0, -1
	assert.NoError(t, p.Validate())
}

func TestWarnings(t *testing.T) {
	p := DefaultParams()
	p.MudPressure = 30
	w := p.Warnings()
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "underbalanced")

	p = DefaultParams()
	p.S3 = 30
	assert.Len(t, p.Warnings(), 1)
}

func TestAnalyze_ReferenceScenario(t *testing.T) {
	a, err := Analyze(DefaultParams())
	require.NoError(t, err)

	assert.InDelta(t, 13.167114716865711, a.Borehole[0][0], 1e-9)
	assert.InDelta(t, 38.0, a.Borehole[1][1], 1e-9)
	assert.InDelta(t, -1.9101299543362331, a.Borehole[0][2], 1e-9)

	require.Equal(t, 3600, a.Profile.Len())
	s := a.Profile.At(900)
	assert.InDelta(t, 90.0, s.Theta, 1e-9)
	assert.InDelta(t, 1.501344150597, s.Tangential, 1e-9)

	assert.InDelta(t, 100.832885283134, a.Envelope.MaxStress, 1e-9)
	assert.InDelta(t, 42.282750868075, a.Envelope.IntermediateStress, 1e-9)
	assert.Equal(t, 0.0, a.Envelope.MinStress)
	assert.InDelta(t, 20.883174308742, a.Envelope.Intercept, 1e-9)
	assert.InDelta(t, 100.832885283134, a.Envelope.UCS, 1e-9)

	assert.InDelta(t, 33.501344150597, a.TensileFailurePressure, 1e-9)
	assert.InDelta(t, a.Envelope.UCS, a.BreakoutUCS, 1e-12)
	assert.Empty(t, a.Warnings)
}

func TestAnalyze_Invalid(t *testing.T) {
	p := DefaultParams()
	p.S2 = 80
	a, err := Analyze(p)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestAnalyze_Idempotent(t *testing.T) {
	p := DefaultParams()
	p.Alpha, p.Beta, p.Gamma = 10, 25, 5
	p.MudPressure = 35

	a1, err := Analyze(p)
	require.NoError(t, err)
	a2, err := Analyze(p)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestAnalyze_NegativeInterceptWarning(t *testing.T) {
	p := DefaultParams()
	p.MudPressure = 400
	a := Evaluate(p)
	assert.Less(t, a.Envelope.Intercept, 0.0)
	assert.Contains(t, a.Warnings, "failure envelope intercept is negative; the envelope is not physical")
}

func TestNormalized(t *testing.T) {
	a := Evaluate(DefaultParams())
	n := a.Normalized()
	require.Equal(t, a.Profile.Len(), n.Len())
	assert.InDelta(t, a.Profile.Tangential[0]/38, n.Tangential[0], 1e-12)
	assert.Equal(t, a.Profile.Theta, n.Theta)

	p := DefaultParams()
	p.PorePressure = p.S1
	z := Evaluate(p)
	assert.False(t, z.CanNormalize())
	assert.Same(t, z.Profile, z.Normalized())
	assert.True(t, a.CanNormalize())
}

func TestEnvelopeLineAndCircles(t *testing.T) {
	a := Evaluate(DefaultParams())
	σn, τ := a.EnvelopeLine(failure.DefaultEnvelopePoints)
	require.Len(t, σn, failure.DefaultEnvelopePoints)
	assert.InDelta(t, 1.5*a.Envelope.MaxStress, σn[len(σn)-1], 1e-9)
	assert.InDelta(t, a.Envelope.Intercept, τ[0], 1e-12)

	cs := a.Circles(failure.DefaultCirclePoints)
	assert.InDelta(t, a.Envelope.MaxStress/2, cs[0].Center, 1e-9)
}

func TestSweepInput(t *testing.T) {
	p := DefaultParams()
	p.MudPressure = 35
	p.TensileStrength = 4
	in := p.SweepInput()
	assert.Equal(t, 38.0, in.S1)
	assert.Equal(t, 13.0, in.S3)
	assert.Equal(t, 3.0, in.PressureDifferential)
	assert.Equal(t, 32.0, in.PorePressure)
	assert.Equal(t, 4.0, in.TensileStrength)
	assert.Equal(t, 1.0, in.Friction)
}
