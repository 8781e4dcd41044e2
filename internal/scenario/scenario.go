package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/foodweb/internal/config"
	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/foodweb"
	"github.com/san-kum/foodweb/internal/metrics"
	"github.com/san-kum/foodweb/internal/sim"
)

// Config is everything one integration needs. It is a plain value: copying
// it gives an independent run.
type Config struct {
	Params     foodweb.Params
	Init       dynamo.State
	Integrator string
	Solver     dynamo.Config
}

// Default is the reference run: default parameters at T=0, the documented
// initial densities, t in [0, 500] and tolerances of 1e-8.
func Default() Config {
	return Config{
		Params:     foodweb.DefaultParams(),
		Init:       foodweb.DefaultState(),
		Integrator: config.DefaultIntegrator,
		Solver:     dynamo.DefaultConfig(),
	}
}

// FromConfig translates a loaded configuration file into a run.
func FromConfig(c *config.Config) Config {
	solver := dynamo.DefaultConfig()
	solver.T0 = c.T0
	solver.T1 = c.T1
	solver.Dt = c.Dt
	solver.AbsTol = c.AbsTol
	solver.RelTol = c.RelTol
	solver.MaxSteps = c.MaxSteps
	solver.SampleEvery = c.SampleEvery
	solver.Adaptive = NewRegistry().Adaptive(c.Integrator)

	return Config{
		Params:     c.Params,
		Init:       dynamo.State(c.InitState).Clone(),
		Integrator: c.Integrator,
		Solver:     solver,
	}
}

// Run integrates one scenario. The result is returned even on failure so the
// caller can see where the trajectory went wrong.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*dynamo.Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	model := foodweb.NewModel(cfg.Params)
	s := sim.New(model, integ)
	s.SetLogger(logger)
	for _, m := range DefaultMetrics(cfg.Params) {
		s.AddMetric(m)
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		s.AddObserver(&progress{logger: logger, t0: cfg.Solver.T0, span: cfg.Solver.T1 - cfg.Solver.T0})
	}

	aLitt, aPel := cfg.Params.AttackRates()
	logger.Debug("run starting",
		"temperature", cfg.Params.T,
		"a_litt", aLitt,
		"a_pel", aPel,
		"integrator", cfg.Integrator,
		"t1", cfg.Solver.T1)

	result, err := s.Run(ctx, cfg.Init, cfg.Solver)
	if err != nil {
		logger.Warn("run failed", "temperature", cfg.Params.T, "error", err)
		return result, fmt.Errorf("integrate at T=%g: %w", cfg.Params.T, err)
	}

	if result.Metrics["negative_samples"] > 0 {
		logger.Warn("trajectory left the non-negative orthant",
			"temperature", cfg.Params.T,
			"samples", result.Metrics["negative_samples"])
	}
	logger.Info("run complete",
		"temperature", cfg.Params.T,
		"steps", result.Stats.Steps,
		"rejected", result.Stats.Rejected,
		"samples", len(result.States))

	return result, nil
}

// DefaultMetrics are the observers attached to every run.
func DefaultMetrics(p foodweb.Params) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewStability(10.0),
		metrics.NewNegativeDensity(),
		metrics.NewLittoralDiet(p),
	}
}

// progress logs at debug level each time a run crosses another tenth of its
// time span.
type progress struct {
	logger   *slog.Logger
	t0, span float64
	next     int
}

func (p *progress) OnStep(x dynamo.State, t float64) {
	tenths := (t - p.t0) / p.span * 10
	if tenths < float64(p.next) {
		return
	}
	p.next = int(tenths) + 1
	p.logger.Debug("progress",
		"t", t,
		"percent", min(100, 10*(p.next-1)),
		"predator", x[foodweb.Pred])
}
