package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/foodweb/internal/config"
	"github.com/san-kum/foodweb/internal/dynamo"
)

// runFlags are the per-run overrides shared by every command that integrates.
type runFlags struct {
	temp       float64
	tEnd       float64
	integrator string
	dt         float64
	rtol       float64
	atol       float64
	maxSteps   int
	init       []float64
	sets       []string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.temp, "temp", 0, "ambient temperature T")
	cmd.Flags().Float64Var(&f.tEnd, "t-end", config.DefaultT1, "end of the integration interval")
	cmd.Flags().StringVar(&f.integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")
	cmd.Flags().Float64Var(&f.dt, "dt", config.DefaultDt, "step size (initial step for rk45)")
	cmd.Flags().Float64Var(&f.rtol, "rtol", config.DefaultTolerance, "relative tolerance (rk45)")
	cmd.Flags().Float64Var(&f.atol, "atol", config.DefaultTolerance, "absolute tolerance (rk45)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", config.DefaultMaxSteps, "accepted step budget")
	cmd.Flags().Float64SliceVar(&f.init, "init", nil, "initial densities R_litt,R_pel,C_litt,C_pel,P")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override a parameter, e.g. --set a_pr_pel=0.3 (repeatable)")
}

// apply copies explicitly given flags into cfg and validates the result.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("temp") {
		cfg.Params.T = f.temp
	}
	if flags.Changed("t-end") {
		cfg.T1 = f.tEnd
	}
	if flags.Changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = f.dt
	}
	if flags.Changed("rtol") {
		cfg.RelTol = f.rtol
	}
	if flags.Changed("atol") {
		cfg.AbsTol = f.atol
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}
	if flags.Changed("init") {
		cfg.InitState = append([]float64(nil), f.init...)
	}

	if err := applySets(&cfg.Params, f.sets); err != nil {
		return err
	}

	return cfg.Validate()
}

// applySets parses name=value pairs into target.
func applySets(target dynamo.Configurable, sets []string) error {
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("--set %q: %w", kv, err)
		}
		if err := target.Set(strings.TrimSpace(name), v); err != nil {
			return err
		}
	}
	return nil
}

type sweepFlags struct {
	from    float64
	to      float64
	steps   int
	workers int
}

func (f *sweepFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.from, "from", config.DefaultSweepFrom, "lowest temperature")
	cmd.Flags().Float64Var(&f.to, "to", config.DefaultSweepTo, "highest temperature")
	cmd.Flags().IntVar(&f.steps, "steps", config.DefaultSweepSteps, "number of temperatures, ends included")
	cmd.Flags().IntVar(&f.workers, "workers", config.DefaultSweepWorker, "concurrent runs (0 = GOMAXPROCS)")
}

// apply copies explicitly given sweep bounds into cfg. A sweep sets T for
// every run, so --temp is rejected rather than ignored.
func (f *sweepFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("temp") {
		return fmt.Errorf("--temp has no effect on %s, use --from and --to", cmd.Name())
	}
	if flags.Changed("from") {
		cfg.Sweep.From = f.from
	}
	if flags.Changed("to") {
		cfg.Sweep.To = f.to
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = f.steps
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = f.workers
	}
	return nil
}
