package foodweb

// DietShare is the predator's realised biomass gain split by prey flow. Each
// field is one term of dP/dt before mortality, so the four sum to the
// predator's total gain.
type DietShare struct {
	ResourceLitt float64
	ResourcePel  float64
	ConsumerLitt float64
	ConsumerPel  float64
}

// Diet decomposes the predator gain at state x. The pelagic-resource flow
// uses R_litt, matching the gain term in Rates.
func Diet(x []float64, p *Params) DietShare {
	aLitt, aPel := p.AttackRates()
	d := Denominator(x, p, aLitt, aPel)
	pr := x[Pred]
	return DietShare{
		ResourceLitt: p.EPR * p.APRLitt * x[RLitt] * pr / d,
		ResourcePel:  p.EPR * p.APRPel * x[RLitt] * pr / d,
		ConsumerLitt: p.EPC * aLitt * x[CLitt] * pr / d,
		ConsumerPel:  p.EPC * aPel * x[CPel] * pr / d,
	}
}

func (s DietShare) Total() float64 {
	return s.ResourceLitt + s.ResourcePel + s.ConsumerLitt + s.ConsumerPel
}

// LittoralFraction is the share of the gain coming from the littoral
// compartments, or 0 when the predator gains nothing. Past a critical
// temperature an attack rate goes negative and the matching flow becomes a
// loss, so the result can fall outside [0, 1].
func (s DietShare) LittoralFraction() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return (s.ResourceLitt + s.ConsumerLitt) / total
}
