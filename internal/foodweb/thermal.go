package foodweb

import "math"

// ThermalCurve is the shape of one habitat's attack-rate response to
// temperature.
type ThermalCurve struct {
	Peak  float64
	Topt  float64
	Tmax  float64
	Sigma float64
}

// At evaluates the curve at temperature t.
func (c ThermalCurve) At(t float64) float64 {
	return AttackRate(t, c.Topt, c.Tmax, c.Peak, c.Sigma)
}

// AttackRate is a two-piece thermal performance curve: a Gaussian rise of
// width 2*sigma below topt and a downward parabola above it that reaches zero
// at |topt-tmax| past the optimum. Both pieces equal aT at topt.
//
// The parabola is not clamped. Far past the critical temperature the result
// is negative, and callers see that value as is.
func AttackRate(t, topt, tmax, aT, sigma float64) float64 {
	if t < topt {
		z := (t - topt) / (2 * sigma)
		return aT * math.Exp(-z*z)
	}
	z := (t - topt) / (topt - tmax)
	return aT * (1 - z*z)
}

func (p *Params) LittoralCurve() ThermalCurve {
	return ThermalCurve{Peak: p.ATLitt, Topt: p.ToptLitt, Tmax: p.TmaxLitt, Sigma: p.Sigma}
}

func (p *Params) PelagicCurve() ThermalCurve {
	return ThermalCurve{Peak: p.ATPel, Topt: p.ToptPel, Tmax: p.TmaxPel, Sigma: p.Sigma}
}

// AttackRates returns the predator's attack rates on the littoral and pelagic
// consumers at the parameter set's temperature.
func (p *Params) AttackRates() (aLitt, aPel float64) {
	return p.LittoralCurve().At(p.T), p.PelagicCurve().At(p.T)
}
