package foodweb_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/foodweb/internal/foodweb"
)

var _ = Describe("AttackRate", func() {
	p := foodweb.DefaultParams()
	litt := p.LittoralCurve()
	pel := p.PelagicCurve()

	It("peaks at the optimum temperature", func() {
		Expect(litt.At(litt.Topt)).To(Equal(litt.Peak))
		Expect(pel.At(pel.Topt)).To(Equal(pel.Peak))

		for _, dT := range []float64{0.5, 1, 3, 7, 15} {
			Expect(litt.At(litt.Topt - dT)).To(BeNumerically("<", litt.Peak))
			Expect(litt.At(litt.Topt + dT)).To(BeNumerically("<", litt.Peak))
		}
	})

	DescribeTable("is continuous across the optimum",
		func(c foodweb.ThermalCurve) {
			for _, eps := range []float64{1e-3, 1e-6, 1e-9} {
				below := c.At(c.Topt - eps)
				above := c.At(c.Topt + eps)
				Expect(below).To(BeNumerically("~", c.Peak, 1e-4))
				Expect(above).To(BeNumerically("~", c.Peak, 1e-4))
				Expect(math.Abs(below - above)).To(BeNumerically("<", 10*eps))
			}
		},
		Entry("littoral", litt),
		Entry("pelagic", pel),
	)

	It("uses a Gaussian of width 2*sigma below the optimum", func() {
		// One 2*sigma below the optimum the rise is exp(-1) of the peak.
		Expect(litt.At(litt.Topt - 2*litt.Sigma)).To(BeNumerically("~", litt.Peak*math.Exp(-1), 1e-12))
	})

	It("reaches zero one |Topt-Tmax| past the optimum", func() {
		Expect(litt.At(40)).To(BeNumerically("~", 0, 1e-12))
		Expect(pel.At(32)).To(BeNumerically("~", 0, 1e-12))
		Expect(litt.At(24)).To(BeNumerically(">", 0))
	})

	It("goes negative far beyond Tmax without clamping", func() {
		got := foodweb.AttackRate(100, p.ToptLitt, p.TmaxLitt, p.ATLitt, p.Sigma)
		Expect(got).To(BeNumerically("<", 0))
		Expect(got).To(BeNumerically("~", -213.75, 1e-9))
	})

	It("evaluates both habitats at the parameter temperature", func() {
		aLitt, aPel := p.AttackRates()
		Expect(aLitt).To(BeNumerically("~", 0.0024479635052164447, 1e-15))
		Expect(aPel).To(BeNumerically("~", 0.09123035213956542, 1e-15))

		warm := p.WithTemperature(25)
		_, aPel = warm.AttackRates()
		Expect(aPel).To(Equal(7.0))
		Expect(p.T).To(Equal(0.0), "WithTemperature must not mutate the receiver")
	})
})
