package foodweb

// Compartment indices of the state vector.
const (
	RLitt = iota
	RPel
	CLitt
	CPel
	Pred

	Dim
)

var stateNames = [Dim]string{"R_litt", "R_pel", "C_litt", "C_pel", "P"}

// StateNames returns the compartment labels in state-vector order.
func StateNames() []string {
	names := make([]string, Dim)
	copy(names, stateNames[:])
	return names
}

// Denominator is the shared Type II interference term of the predator: its
// attack capacity split across both resources and both consumers.
func Denominator(x []float64, p *Params, aLitt, aPel float64) float64 {
	return 1 +
		p.APRLitt*p.HPR*x[RLitt] +
		p.APRPel*p.HPR*x[RPel] +
		aLitt*p.HPC*x[CLitt] +
		aPel*p.HPC*x[CPel]
}

// Rates writes dX/dt of the food web at state x into dst. Time is accepted
// for solver compatibility; the dynamics are autonomous.
//
// Nothing is clamped or checked. Negative densities and negative attack
// rates (far past Tmax) flow through the arithmetic unchanged.
//
// Two terms are kept exactly as the model was published even though they
// break littoral/pelagic symmetry: the pelagic competition term is
// alpha_litt*R_pel, and the predator's gain from the pelagic resource is
// e_pr*a_pr_pel*R_litt*P.
func Rates(dst, x []float64, p *Params, _ float64) {
	rl, rp := x[RLitt], x[RPel]
	cl, cp := x[CLitt], x[CPel]
	pr := x[Pred]

	aLitt, aPel := p.AttackRates()
	d := Denominator(x, p, aLitt, aPel)

	// Consumer intake, each with its own handling-time denominator.
	eatLitt := p.ACRLitt * rl * cl / (1 + p.ACRLitt*p.HCR*rl)
	eatPel := p.ACRPel * rp * cp / (1 + p.ACRPel*p.HCR*rp)

	dst[RLitt] = p.RLitt*rl*(1-(rl+p.AlphaPel*rp)/p.KLitt) - eatLitt - p.APRLitt*rl*pr/d
	dst[RPel] = p.RPel*rp*(1-(rp+p.AlphaLitt*rp)/p.KPel) - eatPel - p.APRPel*rp*pr/d

	dst[CLitt] = p.ECR*eatLitt - aLitt*cl*pr/d - p.MC*cl
	dst[CPel] = p.ECR*eatPel - aPel*cp*pr/d - p.MC*cp

	gain := p.EPR*p.APRLitt*rl*pr +
		p.EPR*p.APRPel*rl*pr +
		p.EPC*aLitt*cl*pr +
		p.EPC*aPel*cp*pr
	dst[Pred] = gain/d - p.MP*pr
}
