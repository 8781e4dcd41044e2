package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// Simulator drives one integrator over one system. It is not safe for
// concurrent use; parallel runs each build their own.
type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger
}

func New(sys dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// countingSystem tallies right-hand side evaluations for Stats.
type countingSystem struct {
	dynamo.System
	evals int
}

func (c *countingSystem) Derive(dst, x dynamo.State, t float64) {
	c.evals++
	c.System.Derive(dst, x, t)
}

// Run integrates from cfg.T0 to cfg.T1 starting at x0. The returned result
// holds every recorded sample up to the point of failure, so callers can
// inspect how a run diverged.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system expects %d",
			dynamo.ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, 1024),
		Times:   make([]float64, 0, 1024),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	sys := &countingSystem{System: s.sys}
	x := x0.Clone()
	t := cfg.T0
	dt := cfg.Dt
	if cfg.MaxDt > 0 {
		dt = math.Min(dt, cfg.MaxDt)
	}

	s.record(result, x, t)

	for t < cfg.T1 {
		select {
		case <-ctx.Done():
			s.finish(result, sys)
			return result, ctx.Err()
		default:
		}

		if cfg.MaxSteps > 0 && result.Stats.Steps >= cfg.MaxSteps {
			s.finish(result, sys)
			return result, &dynamo.SimulationError{Step: result.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrMaxSteps}
		}

		// Land exactly on T1, absorbing round-off left by accumulating t.
		last := false
		if t+dt >= cfg.T1 || cfg.T1-(t+dt) < 1e-9*dt {
			dt = cfg.T1 - t
			last = true
		}

		var newX dynamo.State
		dtNext := dt
		if cfg.Adaptive {
			var errNorm float64
			newX, dtNext, errNorm = s.adaptiveStep(sys, x, t, dt, cfg)
			if errNorm > 1 || math.IsNaN(errNorm) {
				result.Stats.Rejected++
				dt = dtNext
				if dt < cfg.MinDt {
					s.finish(result, sys)
					return result, &dynamo.SimulationError{Step: result.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}
				}
				continue
			}
		} else {
			newX = s.integrator.Step(sys, x, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			s.finish(result, sys)
			return result, &dynamo.SimulationError{Step: result.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}
		}

		x = newX
		if last {
			t = cfg.T1
		} else {
			t += dt
		}
		result.Stats.Steps++
		result.Stats.LastDt = dt

		if last || result.Stats.Steps%sampleEvery == 0 {
			s.record(result, x, t)
		}

		if cfg.Adaptive {
			dt = dtNext
			if cfg.MaxDt > 0 {
				dt = math.Min(dt, cfg.MaxDt)
			}
		}
	}

	s.finish(result, sys)
	s.logger.Debug("integration finished",
		"t_end", t,
		"steps", result.Stats.Steps,
		"rejected", result.Stats.Rejected,
		"evaluations", result.Stats.Evaluations)

	return result, nil
}

func (s *Simulator) record(result *dynamo.Result, x dynamo.State, t float64) {
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) finish(result *dynamo.Result, sys *countingSystem) {
	result.Stats.Evaluations = sys.evals
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.T1 <= cfg.T0 {
		return fmt.Errorf("%w: end time %f must be after start time %f", dynamo.ErrInvalidConfig, cfg.T1, cfg.T0)
	}
	if cfg.Adaptive && (cfg.AbsTol <= 0 || cfg.RelTol < 0) {
		return fmt.Errorf("%w: tolerances must be positive for adaptive stepping", dynamo.ErrInvalidConfig)
	}
	if cfg.Adaptive && cfg.MinDt <= 0 {
		return fmt.Errorf("%w: minimum dt must be positive for adaptive stepping", dynamo.ErrInvalidConfig)
	}
	return nil
}

// adaptiveStep uses the integrator's embedded error estimate when it has one
// and falls back to step doubling otherwise.
func (s *Simulator) adaptiveStep(sys dynamo.System, x dynamo.State, t, dt float64, cfg dynamo.Config) (dynamo.State, float64, float64) {
	tol := dynamo.Tolerance{Abs: cfg.AbsTol, Rel: cfg.RelTol}
	if adaptive, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(sys, x, t, dt, tol)
	}

	x1 := s.integrator.Step(sys, x, t, dt)
	xHalf := s.integrator.Step(sys, x, t, dt/2)
	x2 := s.integrator.Step(sys, xHalf, t+dt/2, dt/2)

	errNorm := x1.Sub(x2).Norm() / (tol.Abs + tol.Rel*x2.Norm())

	dtNext := dt
	switch {
	case errNorm > 1 || math.IsNaN(errNorm):
		dtNext = dt / 2
	case errNorm < 0.1:
		dtNext = dt * 2
	}

	return x2, dtNext, errNorm
}
