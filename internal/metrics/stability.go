package metrics

import (
	"math"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// Stability is the share of samples whose densities all stay inside
// [-limit, limit]. A sample holding NaN counts as outside and does not move
// the peak.
type Stability struct {
	limit   float64
	inside  int
	samples int
	peak    float64
}

func NewStability(limit float64) *Stability {
	return &Stability{limit: limit}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, _ float64) {
	s.samples++

	worst, finite := 0.0, true
	for _, v := range x {
		if math.IsNaN(v) {
			finite = false
			continue
		}
		worst = max(worst, math.Abs(v))
	}
	s.peak = max(s.peak, worst)

	if finite && worst <= s.limit {
		s.inside++
	}
}

// Value is 1 when nothing has been observed.
func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.inside) / float64(s.samples)
}

// Peak is the largest magnitude of any compartment seen so far.
func (s *Stability) Peak() float64 { return s.peak }

func (s *Stability) Reset() {
	*s = Stability{limit: s.limit}
}
