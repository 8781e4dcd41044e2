package integrators

import "github.com/san-kum/foodweb/internal/dynamo"

var eulerTableau = tableau{
	c: []float64{0},
	a: [][]float64{{}},
	b: []float64{1},
}

// Euler is the explicit first-order method. It is here as a baseline for
// comparing against the higher-order schemes.
type Euler struct {
	stages
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return e.advance(sys, &eulerTableau, x, t, dt)
}
