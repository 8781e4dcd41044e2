package integrators

import "github.com/san-kum/foodweb/internal/dynamo"

// tableau is an explicit Runge-Kutta scheme. Row i of a holds the weights of
// stages 0..i-1 used to build stage i; a[0] is empty.
type tableau struct {
	c []float64
	a [][]float64
	b []float64
}

// stages holds per-stage derivative buffers. They are reused between calls,
// so a stepper must not be shared by concurrent runs.
type stages struct {
	k       []dynamo.State
	scratch dynamo.State
}

func (s *stages) resize(count, n int) {
	if len(s.k) == count && len(s.scratch) == n {
		return
	}
	s.k = make([]dynamo.State, count)
	for i := range s.k {
		s.k[i] = make(dynamo.State, n)
	}
	s.scratch = make(dynamo.State, n)
}

// combine writes x + dt·Σ w[j]·k[j] into dst, skipping zero weights.
func (s *stages) combine(dst, x dynamo.State, dt float64, w []float64) {
	for i := range x {
		acc := 0.0
		for j, wj := range w {
			if wj != 0 {
				acc += wj * s.k[j][i]
			}
		}
		dst[i] = x[i] + dt*acc
	}
}

// advance evaluates every stage of tab at (x, t) and returns the new state
// x + dt·Σ b[j]·k[j]. The stage derivatives stay in s.k.
func (s *stages) advance(sys dynamo.System, tab *tableau, x dynamo.State, t, dt float64) dynamo.State {
	s.resize(len(tab.c), len(x))

	sys.Derive(s.k[0], x, t)
	for i := 1; i < len(tab.c); i++ {
		s.combine(s.scratch, x, dt, tab.a[i])
		sys.Derive(s.k[i], s.scratch, t+tab.c[i]*dt)
	}

	next := make(dynamo.State, len(x))
	s.combine(next, x, dt, tab.b)
	return next
}
