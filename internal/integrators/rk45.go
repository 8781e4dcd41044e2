package integrators

import (
	"math"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// Dormand-Prince 5(4). The seventh stage is evaluated at the new state
// (first same as last) and only feeds the error estimate.
var dopriTableau = tableau{
	c: []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
	a: [][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	},
	b: []float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
}

// dopriError is b minus the embedded fourth-order weights.
var dopriError = []float64{
	35.0/384.0 - 5179.0/57600.0,
	0,
	500.0/1113.0 - 7571.0/16695.0,
	125.0/192.0 - 393.0/640.0,
	-2187.0/6784.0 + 92097.0/339200.0,
	11.0/84.0 - 187.0/2100.0,
	-1.0 / 40.0,
}

// RK45 is the Dormand-Prince 5(4) pair with a scaled RMS error norm:
// sc_i = Abs + Rel·max(|x_i|, |x_new_i|). A step is acceptable when the
// norm is at most 1.
type RK45 struct {
	stages
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step takes one fifth-order step of exactly dt, ignoring the error estimate.
func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return r.advance(sys, &dopriTableau, x, t, dt)
}

func (r *RK45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt float64, tol dynamo.Tolerance) (dynamo.State, float64, float64) {
	xNew := r.advance(sys, &dopriTableau, x, t, dt)
	n := len(x)

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := 0.0
		for j, e := range dopriError {
			errEst += e * r.k[j][i]
		}
		errEst *= dt
		scale := tol.Abs + tol.Rel*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		e := errEst / scale
		sum += e * e
	}
	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sum / float64(n))
	}

	var dtNew float64
	switch {
	case math.IsNaN(errNorm) || math.IsInf(errNorm, 0):
		dtNew = dt * r.minScale
	case errNorm > 1:
		dtNew = dt * math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.25))
	case errNorm > 0:
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	default:
		dtNew = dt * r.maxScale
	}

	return xNew, dtNew, errNorm
}
