package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// HasNegative reports whether any compartment has dropped below zero.
func (s State) HasNegative() bool {
	for _, v := range s {
		if v < 0 {
			return true
		}
	}
	return false
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a right-hand side dX/dt = f(X, t). Derive writes into dst, which
// the caller owns and which has length StateDim().
type System interface {
	Derive(dst, x State, t float64)
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Tolerance holds the absolute and relative error bounds of an adaptive step.
type Tolerance struct {
	Abs float64
	Rel float64
}

type AdaptiveIntegrator interface {
	Integrator
	// StepAdaptive attempts one step of size dt. It returns the candidate
	// state, the suggested next step size and the scaled error norm; the
	// step is acceptable when errNorm <= 1.
	StepAdaptive(sys System, x State, t, dt float64, tol Tolerance) (next State, dtNext, errNorm float64)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Configurable interface {
	Get(name string) (float64, error)
	Set(name string, value float64) error
}

type Config struct {
	Dt            float64
	T0            float64
	T1            float64
	AbsTol        float64
	RelTol        float64
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	SampleEvery   int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		T0:            0,
		T1:            500,
		AbsTol:        1e-8,
		RelTol:        1e-8,
		MaxDt:         10,
		MinDt:         1e-12,
		MaxSteps:      5_000_000,
		SampleEvery:   1,
		Adaptive:      true,
		ValidateState: true,
	}
}

// Stats mirrors the bookkeeping of a classic ODE driver.
type Stats struct {
	Steps       int
	Rejected    int
	Evaluations int
	LastDt      float64
}

type Result struct {
	States  []State
	Times   []float64
	Metrics map[string]float64
	Stats   Stats
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if r == nil || len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
