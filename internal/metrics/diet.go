package metrics

import (
	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/foodweb"
)

// LittoralDiet averages the littoral share of the predator's intake over the
// samples in which the predator gains anything at all.
type LittoralDiet struct {
	params  foodweb.Params
	sum     float64
	samples int
}

func NewLittoralDiet(p foodweb.Params) *LittoralDiet {
	return &LittoralDiet{params: p}
}

func (d *LittoralDiet) Name() string { return "littoral_diet" }

func (d *LittoralDiet) Observe(x dynamo.State, t float64) {
	share := foodweb.Diet(x, &d.params)
	if share.Total() == 0 {
		return
	}
	d.sum += share.LittoralFraction()
	d.samples++
}

func (d *LittoralDiet) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *LittoralDiet) Reset() {
	d.sum = 0
	d.samples = 0
}
