package foodweb_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/foodweb/internal/foodweb"
)

func rates(x []float64, p foodweb.Params) []float64 {
	dst := make([]float64, foodweb.Dim)
	foodweb.Rates(dst, x, &p, 0)
	return dst
}

// swapHabitats exchanges every littoral parameter with its pelagic twin.
func swapHabitats(p foodweb.Params) foodweb.Params {
	p.RLitt, p.RPel = p.RPel, p.RLitt
	p.KLitt, p.KPel = p.KPel, p.KLitt
	p.AlphaLitt, p.AlphaPel = p.AlphaPel, p.AlphaLitt
	p.ACRLitt, p.ACRPel = p.ACRPel, p.ACRLitt
	p.APRLitt, p.APRPel = p.APRPel, p.APRLitt
	p.ATLitt, p.ATPel = p.ATPel, p.ATLitt
	p.ToptLitt, p.ToptPel = p.ToptPel, p.ToptLitt
	p.TmaxLitt, p.TmaxPel = p.TmaxPel, p.TmaxLitt
	return p
}

func swapState(x []float64) []float64 {
	return []float64{x[foodweb.RPel], x[foodweb.RLitt], x[foodweb.CPel], x[foodweb.CLitt], x[foodweb.Pred]}
}

var _ = Describe("Rates", func() {
	var p foodweb.Params

	BeforeEach(func() {
		p = foodweb.DefaultParams()
	})

	It("matches reference values at the default state", func() {
		got := rates([]float64{0.5, 0.4, 0.6, 0.7, 0.1}, p)
		want := []float64{
			-0.10987810725073134,
			-0.08923581913391844,
			0.07188321388535385,
			0.041588903838480296,
			0.025960610755436223,
		}
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-12), "compartment %d", i)
		}
	})

	It("matches reference values at the pelagic optimum", func() {
		got := rates([]float64{0.5, 0.4, 0.6, 0.7, 0.1}, p.WithTemperature(25))
		want := []float64{
			-0.09579318509143549,
			-0.07796788140648174,
			0.04231964168820401,
			-0.06687976112546937,
			0.11385052502944243,
		}
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-12), "compartment %d", i)
		}
	})

	It("is exactly zero at zero density for any temperature", func() {
		zero := make([]float64, foodweb.Dim)
		for _, temp := range []float64{-20, 0, 25, 32, 100} {
			Expect(rates(zero, p.WithTemperature(temp))).To(Equal([]float64{0, 0, 0, 0, 0}))
		}
	})

	It("drops every predation term when the predator is absent", func() {
		x := []float64{0.5, 0.4, 0.6, 0.7, 0}
		got := rates(x, p)

		rl, rp, cl, cp := x[0], x[1], x[2], x[3]
		eatLitt := p.ACRLitt * rl * cl / (1 + p.ACRLitt*p.HCR*rl)
		eatPel := p.ACRPel * rp * cp / (1 + p.ACRPel*p.HCR*rp)

		Expect(got[foodweb.RLitt]).To(Equal(p.RLitt*rl*(1-(rl+p.AlphaPel*rp)/p.KLitt) - eatLitt - 0))
		Expect(got[foodweb.RPel]).To(Equal(p.RPel*rp*(1-(rp+p.AlphaLitt*rp)/p.KPel) - eatPel - 0))
		Expect(got[foodweb.CLitt]).To(Equal(p.ECR*eatLitt - 0 - p.MC*cl))
		Expect(got[foodweb.CPel]).To(Equal(p.ECR*eatPel - 0 - p.MC*cp))
		Expect(got[foodweb.Pred]).To(BeZero())
	})

	It("ignores the time argument", func() {
		x := []float64{0.5, 0.4, 0.6, 0.7, 0.1}
		a := make([]float64, foodweb.Dim)
		b := make([]float64, foodweb.Dim)
		foodweb.Rates(a, x, &p, 0)
		foodweb.Rates(b, x, &p, 1e6)
		Expect(a).To(Equal(b))
	})

	It("overwrites whatever the caller left in dst", func() {
		dst := []float64{9, 9, 9, 9, 9}
		foodweb.Rates(dst, make([]float64, foodweb.Dim), &p, 0)
		Expect(dst).To(Equal([]float64{0, 0, 0, 0, 0}))
	})

	Describe("habitat symmetry", func() {
		It("holds for the habitat-local structure", func() {
			// With no cross-habitat competition and equal resources, every
			// term that mixes habitats drops out or coincides.
			p.AlphaLitt, p.AlphaPel = 0, 0
			p.RPel, p.KPel = 1.3, 0.8
			p.ACRPel, p.APRPel = 0.7, 0.3
			p.T = 20
			x := []float64{0.45, 0.45, 0.3, 0.9, 0.2}

			direct := rates(x, p)
			swapped := rates(swapState(x), swapHabitats(p))

			Expect(swapped[foodweb.RLitt]).To(BeNumerically("~", direct[foodweb.RPel], 1e-14))
			Expect(swapped[foodweb.RPel]).To(BeNumerically("~", direct[foodweb.RLitt], 1e-14))
			Expect(swapped[foodweb.CLitt]).To(BeNumerically("~", direct[foodweb.CPel], 1e-14))
			Expect(swapped[foodweb.CPel]).To(BeNumerically("~", direct[foodweb.CLitt], 1e-14))
			Expect(swapped[foodweb.Pred]).To(BeNumerically("~", direct[foodweb.Pred], 1e-14))
		})

		It("breaks on the pelagic competition term as published", func() {
			// Regression: the pelagic resource competes with itself through
			// alpha_litt, so R_litt has no effect on dR_pel without a predator.
			x := []float64{0.5, 0.4, 0.6, 0.7, 0}
			y := []float64{0.9, 0.4, 0.6, 0.7, 0}
			Expect(rates(x, p)[foodweb.RPel]).To(Equal(rates(y, p)[foodweb.RPel]))

			rp := x[foodweb.RPel]
			want := p.RPel*rp*(1-(rp+p.AlphaLitt*rp)/p.KPel) -
				p.ACRPel*rp*x[foodweb.CPel]/(1+p.ACRPel*p.HCR*rp)
			Expect(rates(x, p)[foodweb.RPel]).To(Equal(want))
		})

		It("breaks on the predator's pelagic-resource gain as published", func() {
			// Regression: the pelagic-resource gain is driven by R_litt.
			p.T = 20
			x := []float64{0.6, 0.2, 0.3, 0.3, 0.2}
			direct := rates(x, p)
			swapped := rates(swapState(x), swapHabitats(p))
			Expect(swapped[foodweb.Pred]).NotTo(BeNumerically("~", direct[foodweb.Pred], 1e-9))

			noPelResource := []float64{0.6, 0, 0.3, 0.3, 0.2}
			Expect(foodweb.Diet(noPelResource, &p).ResourcePel).To(BeNumerically(">", 0))
		})
	})

	It("lets negative attack rates through past Tmax", func() {
		x := []float64{0.5, 0.4, 0.6, 0.7, 0.1}
		hot := p.WithTemperature(100)
		aLitt, _ := hot.AttackRates()
		Expect(aLitt).To(BeNumerically("<", 0))

		got := rates(x, hot)
		for _, v := range got {
			Expect(math.IsNaN(v)).To(BeFalse())
		}
	})
})

var _ = Describe("Diet", func() {
	It("sums to the predator's gain", func() {
		p := foodweb.DefaultParams().WithTemperature(28)
		x := []float64{0.5, 0.4, 0.6, 0.7, 0.1}
		d := foodweb.Diet(x, &p)

		got := rates(x, p)
		Expect(d.Total() - p.MP*x[foodweb.Pred]).To(BeNumerically("~", got[foodweb.Pred], 1e-14))
		Expect(d.LittoralFraction()).To(BeNumerically(">", 0))
		Expect(d.LittoralFraction()).To(BeNumerically("<", 1))
	})

	It("reports no littoral fraction without a predator", func() {
		p := foodweb.DefaultParams()
		d := foodweb.Diet([]float64{0.5, 0.4, 0.6, 0.7, 0}, &p)
		Expect(d.Total()).To(BeZero())
		Expect(d.LittoralFraction()).To(BeZero())
	})
})
