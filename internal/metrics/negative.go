package metrics

import "github.com/san-kum/foodweb/internal/dynamo"

// NegativeDensity counts samples with any compartment below zero. The model
// never clamps, so this is how a non-physical trajectory shows up.
type NegativeDensity struct {
	count int
	first float64
}

func NewNegativeDensity() *NegativeDensity {
	return &NegativeDensity{first: -1}
}

func (n *NegativeDensity) Name() string { return "negative_samples" }

func (n *NegativeDensity) Observe(x dynamo.State, t float64) {
	if x.HasNegative() {
		if n.count == 0 {
			n.first = t
		}
		n.count++
	}
}

func (n *NegativeDensity) Value() float64 { return float64(n.count) }

// FirstTime is the time of the first negative sample, or -1 if none.
func (n *NegativeDensity) FirstTime() float64 { return n.first }

func (n *NegativeDensity) Reset() {
	n.count = 0
	n.first = -1
}
