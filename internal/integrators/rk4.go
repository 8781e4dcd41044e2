package integrators

import "github.com/san-kum/foodweb/internal/dynamo"

var rk4Tableau = tableau{
	c: []float64{0, 0.5, 0.5, 1},
	a: [][]float64{
		{},
		{0.5},
		{0, 0.5},
		{0, 0, 1},
	},
	b: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
}

// RK4 is the classical fourth-order Runge-Kutta method with a fixed step.
type RK4 struct {
	stages
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return r.advance(sys, &rk4Tableau, x, t, dt)
}
