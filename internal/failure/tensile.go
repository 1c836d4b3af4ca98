package failure

// TensilePressure returns the mud pressure at which tensile fracturing
// initiates, given the minimum hoop stress around the wall, the tensile
// strength T0 (a non-negative magnitude) and the pore pressure:
//
//	Pm = min(σθθ) − T0 + Pp
func TensilePressure(minTangential, T0, porePressure float64) float64 {
	return minTangential - T0 + porePressure
}

// BreakoutUCS returns the rock strength needed to prevent shear breakout
// for the peak tangential stress σmax with radial stress Δp at the wall.
// It is the UCS of the (σmax, Δp) Mohr circle.
func BreakoutUCS(σmax, Δp, μ float64) float64 {
	q := Factor(μ)
	return σmax - Δp*q*q
}
