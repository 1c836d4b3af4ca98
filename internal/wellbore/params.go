// Package wellbore is the boundary between callers and the stress and
// failure engine: it holds the flat parameter set, validates it, resolves
// defaults and runs the single-orientation analysis.
package wellbore

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Reference configuration. These are the values the tool starts with.
const (
	DefaultS1                  = 70.0 // MPa
	DefaultS2                  = 67.0 // MPa
	DefaultS3                  = 45.0 // MPa
	DefaultPorePressure        = 32.0 // MPa
	DefaultMudPressure         = 32.0 // MPa
	DefaultPoissonRatio        = 0.15
	DefaultAzimuth             = 90.0 // deg
	DefaultInclination         = 85.0 // deg
	DefaultFrictionCoefficient = 1.0
	DefaultTensileStrength     = 0.0 // MPa
)

// Physically meaningful input ranges checked at the boundary
const (
	MinPoissonRatio = -1.0
	MaxPoissonRatio = 0.5
	MaxAzimuth      = 360.0
	MaxInclination  = 90.0

	// Largest accepted |stress|, |pressure| or T0 (MPa) and friction
	// coefficient. Beyond these the wall stresses overflow float64.
	MaxMagnitude           = 1e6
	MaxFrictionCoefficient = 100.0
)

// ErrInvalidParams is matched by every *ValidationError
var ErrInvalidParams = errors.New("wellbore: invalid parameters")

// Params is the complete, resolved input of an analysis. Stresses and
// pressures are total values in MPa, angles are in degrees.
type Params struct {
	// Principal in-situ stresses, ordered max/intermediate/min
	S1 float64 `json:"s1" yaml:"s1"`
	S2 float64 `json:"s2" yaml:"s2"`
	S3 float64 `json:"s3" yaml:"s3"`

	PorePressure float64 `json:"pore_pressure" yaml:"pore_pressure"`
	MudPressure  float64 `json:"mud_pressure" yaml:"mud_pressure"`

	PoissonRatio float64 `json:"poisson_ratio" yaml:"poisson_ratio"`

	// Borehole trajectory
	Azimuth     float64 `json:"azimuth" yaml:"azimuth"`
	Inclination float64 `json:"inclination" yaml:"inclination"`

	FrictionCoefficient float64 `json:"friction_coefficient" yaml:"friction_coefficient"`

	// Euler angles of the principal stress frame
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Beta  float64 `json:"beta" yaml:"beta"`
	Gamma float64 `json:"gamma" yaml:"gamma"`

	TensileStrength float64 `json:"tensile_strength" yaml:"tensile_strength"`
}

// DefaultParams returns the reference configuration
func DefaultParams() Params {
	return Params{
		S1:                  DefaultS1,
		S2:                  DefaultS2,
		S3:                  DefaultS3,
		PorePressure:        DefaultPorePressure,
		MudPressure:         DefaultMudPressure,
		PoissonRatio:        DefaultPoissonRatio,
		Azimuth:             DefaultAzimuth,
		Inclination:         DefaultInclination,
		FrictionCoefficient: DefaultFrictionCoefficient,
		TensileStrength:     DefaultTensileStrength,
	}
}

// PressureDifferential returns Δp = mud − pore. The same sign convention
// is used for the wall stress profile and for the orientation sweeps.
func (p Params) PressureDifferential() float64 {
	return p.MudPressure - p.PorePressure
}

// EffectiveStresses returns the principal stresses minus pore pressure
func (p Params) EffectiveStresses() (s1, s2, s3 float64) {
	return p.S1 - p.PorePressure, p.S2 - p.PorePressure, p.S3 - p.PorePressure
}

// FieldError describes one rejected parameter
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected parameter
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// fields pairs each parameter with its external name
func (p Params) fields() []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{"s1", p.S1}, {"s2", p.S2}, {"s3", p.S3},
		{"pore_pressure", p.PorePressure}, {"mud_pressure", p.MudPressure},
		{"poisson_ratio", p.PoissonRatio},
		{"azimuth", p.Azimuth}, {"inclination", p.Inclination},
		{"friction_coefficient", p.FrictionCoefficient},
		{"alpha", p.Alpha}, {"beta", p.Beta}, {"gamma", p.Gamma},
		{"tensile_strength", p.TensileStrength},
	}
}

// Validate rejects non-finite values, unordered principal stresses and
// values outside their physical range. The engine itself never checks its
// inputs, so every caller goes through here first.
func (p Params) Validate() error {
	verr := &ValidationError{}

	finite := true
	for _, f := range p.fields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			verr.add(f.name, "must be a finite number")
			finite = false
		}
	}
	if !finite {
		return verr
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"s1", p.S1}, {"s2", p.S2}, {"s3", p.S3},
		{"pore_pressure", p.PorePressure}, {"mud_pressure", p.MudPressure},
		{"tensile_strength", p.TensileStrength},
	} {
		if math.Abs(f.value) > MaxMagnitude {
			verr.add(f.name, "magnitude must not exceed %g MPa", MaxMagnitude)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	if p.S1 <= p.S2 {
		verr.add("s1", "must be greater than s2 (%.2f)", p.S2)
	}
	if p.S2 <= p.S3 {
		verr.add("s2", "must be greater than s3 (%.2f)", p.S3)
	}
	if p.PoissonRatio < MinPoissonRatio || p.PoissonRatio > MaxPoissonRatio {
		verr.add("poisson_ratio", "must be between %.1f and %.1f", MinPoissonRatio, MaxPoissonRatio)
	}
	if p.Azimuth < 0 || p.Azimuth > MaxAzimuth {
		verr.add("azimuth", "must be between 0 and %.0f degrees", MaxAzimuth)
	}
	if p.Inclination < 0 || p.Inclination > MaxInclination {
		verr.add("inclination", "must be between 0 and %.0f degrees", MaxInclination)
	}
	if p.FrictionCoefficient < 0 || p.FrictionCoefficient > MaxFrictionCoefficient {
		verr.add("friction_coefficient", "must be between 0 and %.0f", MaxFrictionCoefficient)
	}
	if p.TensileStrength < 0 {
		verr.add("tensile_strength", "must not be negative")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Warnings returns non-fatal remarks about physically unusual input
func (p Params) Warnings() []string {
	var w []string
	if p.MudPressure < p.PorePressure {
		w = append(w, fmt.Sprintf("mud pressure %.2f MPa is below pore pressure %.2f MPa (underbalanced)", p.MudPressure, p.PorePressure))
	}
	if p.S3 < p.PorePressure {
		w = append(w, "minimum principal stress is below pore pressure; effective s3 is tensile")
	}
	return w
}
