// Package sweep runs one independent integration per temperature across a
// gradient. Runs share nothing mutable: each gets its own parameter copy,
// initial state, integrator and simulator.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/scenario"
)

// Point is the outcome of one run of the gradient.
type Point struct {
	T            float64
	ALitt        float64
	APel         float64
	Final        dynamo.State
	LittoralDiet float64
	Steps        int
	// Summary holds whatever Options.Summarize extracted from the run.
	Summary []float64
	Err     error
}

type Options struct {
	// Workers bounds concurrent runs; <= 0 means GOMAXPROCS.
	Workers int
	// FailFast aborts the whole sweep on the first failed run instead of
	// recording the error in that run's Point.
	FailFast bool
	// Summarize, when set, reduces each trajectory before it is dropped.
	// It is called from worker goroutines and must not share state.
	Summarize func(*dynamo.Result) []float64
	Logger    *slog.Logger
}

// Linspace returns n evenly spaced values from from to to inclusive.
func Linspace(from, to float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to
	return out
}

// Run integrates base once per temperature. Points come back in the order
// of temps regardless of completion order.
func Run(ctx context.Context, base scenario.Config, temps []float64, opts Options) ([]Point, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]Point, len(temps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, temp := range temps {
		g.Go(func() error {
			cfg := base
			cfg.Params = base.Params.WithTemperature(temp)
			cfg.Init = base.Init.Clone()

			pt := Point{T: temp}
			pt.ALitt, pt.APel = cfg.Params.AttackRates()

			result, err := scenario.Run(gctx, cfg, logger.With("temperature", temp))
			if result != nil {
				pt.Final = result.Final()
				pt.LittoralDiet = result.Metrics["littoral_diet"]
				pt.Steps = result.Stats.Steps
				if opts.Summarize != nil && err == nil {
					pt.Summary = opts.Summarize(result)
				}
			}
			pt.Err = err
			points[i] = pt

			if err != nil && opts.FailFast {
				return fmt.Errorf("sweep at T=%g: %w", temp, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return points, err
	}
	if err := ctx.Err(); err != nil {
		return points, err
	}

	failed := 0
	for _, pt := range points {
		if pt.Err != nil {
			failed++
		}
	}
	logger.Info("sweep complete", "runs", len(points), "failed", failed, "workers", workers)

	return points, nil
}
