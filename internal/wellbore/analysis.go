package wellbore

import (
	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/frame"
	"github.com/alexiusacademia/gowst/internal/stress"
)

// Angular sampling of the wall stress profile (deg)
const (
	ProfileStart = 0.0
	ProfileStop  = 360.0
	ProfileStep  = 0.1
)

// Analysis holds the results for one borehole orientation
type Analysis struct {
	Params Params

	// Effective principal stresses (MPa)
	EffectiveS1 float64
	EffectiveS2 float64
	EffectiveS3 float64

	// Δp = mud − pore (MPa)
	PressureDifferential float64

	// Tensors in geographic and borehole coordinates
	Geographic stress.Tensor
	Borehole   stress.Tensor

	// Stresses around the wall, 0 ≤ θ < 360
	Profile *stress.WallProfile

	// Mohr-Coulomb evaluation of the profile extrema
	Envelope failure.Envelope

	// Mud pressure that initiates tensile fracturing at this orientation
	TensileFailurePressure float64

	// Strength required to prevent breakout at this orientation
	BreakoutUCS float64

	Warnings []string
}

// Analyze validates p and evaluates it
func Analyze(p Params) (*Analysis, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return Evaluate(p), nil
}

// Evaluate runs the single-orientation pipeline without validating p:
// effective stresses → Euler and borehole rotations → borehole tensor →
// wall profile → failure evaluators.
func Evaluate(p Params) *Analysis {
	a := &Analysis{Params: p}
	a.EffectiveS1, a.EffectiveS2, a.EffectiveS3 = p.EffectiveStresses()
	a.PressureDifferential = p.PressureDifferential()

	Σ := stress.Principal(a.EffectiveS1, a.EffectiveS2, a.EffectiveS3)
	Re := frame.FromEuler(p.Alpha, p.Beta, p.Gamma)
	Rbh := frame.FromAzimuthInclination(p.Azimuth, p.Inclination)

	a.Geographic = stress.Geographic(Σ, Re)
	a.Borehole = stress.Borehole(Σ, Re, Rbh)

	θs := stress.Angles(ProfileStart, ProfileStop, ProfileStep)
	a.Profile = stress.Profile(a.Borehole, θs, p.PoissonRatio, a.PressureDifferential)

	σmax := a.Profile.MaxOfMax()
	σint := a.Profile.MaxOfMin()
	a.Envelope = failure.MohrCoulomb(σmax, σint, a.PressureDifferential, p.FrictionCoefficient)
	a.TensileFailurePressure = failure.TensilePressure(a.Profile.MinTangentialStress(), p.TensileStrength, p.PorePressure)
	a.BreakoutUCS = failure.BreakoutUCS(σmax, a.PressureDifferential, p.FrictionCoefficient)

	a.Warnings = append(p.Warnings(), a.envelopeWarnings()...)
	return a
}

func (a *Analysis) envelopeWarnings() []string {
	var w []string
	if a.Envelope.Intercept < 0 {
		w = append(w, "failure envelope intercept is negative; the envelope is not physical")
	}
	if a.Envelope.UCS < 0 {
		w = append(w, "UCS is negative; the stress state is not physical")
	}
	return w
}

// Normalized returns the wall profile divided by the effective maximum
// principal stress. The profile is returned unchanged when that stress is
// zero.
func (a *Analysis) Normalized() *stress.WallProfile {
	if !a.CanNormalize() {
		return a.Profile
	}
	return a.Profile.Scaled(a.EffectiveS1)
}

// CanNormalize reports whether Normalized actually scales the profile
func (a *Analysis) CanNormalize() bool {
	return a.EffectiveS1 != 0
}

// Circles returns the three Mohr circles of the envelope
func (a *Analysis) Circles(n int) [3]failure.Circle {
	return a.Envelope.Circles(n)
}

// EnvelopeLine returns the envelope over [0, 1.5·σmax]
func (a *Analysis) EnvelopeLine(n int) (σn, τ []float64) {
	return a.Envelope.Line(1.5*a.Envelope.MaxStress, n)
}
