package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following a
// reference trajectory and a neighbour displaced by d0 in the first
// compartment, renormalising the separation back to d0 after every step
// (Benettin). A positive value means nearby states diverge.
//
// The integrator is used with a fixed step dt.
func LyapunovExponent(ctx context.Context, sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt, duration, d0 float64) (float64, error) {
	if len(x0) == 0 || len(x0) != sys.StateDim() {
		return 0, fmt.Errorf("%w: state has %d entries, system expects %d", dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}
	if dt <= 0 || duration <= 0 || d0 <= 0 {
		return 0, fmt.Errorf("%w: dt, duration and perturbation must be positive", dynamo.ErrInvalidConfig)
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	sumLog := 0.0
	counted := 0
	steps := int(math.Round(duration / dt))
	t := 0.0

	for step := 0; step < steps; step++ {
		if step%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		if !x.IsValid() || !xp.IsValid() {
			return 0, &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			// Trajectories merged; restart the neighbour.
			copy(xp, x)
			xp[0] += d0
			continue
		}

		sumLog += math.Log(sep / d0)
		counted++
		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if counted == 0 {
		return 0, nil
	}
	return sumLog / (float64(counted) * dt), nil
}
