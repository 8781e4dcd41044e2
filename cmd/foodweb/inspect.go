package main

import (
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/foodweb/internal/analysis"
	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/export"
	"github.com/san-kum/foodweb/internal/foodweb"
	"github.com/san-kum/foodweb/internal/scenario"
)

func newRatesCmd() *cobra.Command {
	var rf runFlags

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "evaluate the rate function once at the initial state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			p := cfg.Params
			x := cfg.InitState
			dx := make([]float64, foodweb.Dim)
			foodweb.Rates(dx, x, &p, cfg.T0)
			aLitt, aPel := p.AttackRates()

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COMPARTMENT\tX\tDX/DT")
			for i, name := range foodweb.StateNames() {
				fmt.Fprintf(tw, "%s\t%.6f\t%+.6f\n", name, x[i], dx[i])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nT=%g  a_litt=%.6f  a_pel=%.6f  D=%.6f\n", p.T, aLitt, aPel, foodweb.Denominator(x, &p, aLitt, aPel))
			diet := foodweb.Diet(x, &p)
			fmt.Fprintf(out, "predator intake: %.6f (littoral share %.3f)\n", diet.Total(), diet.LittoralFraction())
			return nil
		},
	}

	rf.register(cmd)
	return cmd
}

func newThermalCmd() *cobra.Command {
	var (
		rf       runFlags
		from, to float64
		points   int
		width    int
		height   int
	)

	cmd := &cobra.Command{
		Use:   "thermal",
		Short: "plot both attack-rate curves over a temperature range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 2 || to <= from {
				return fmt.Errorf("need --points >= 2 and --to > --from")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			litt, pel := cfg.Params.LittoralCurve(), cfg.Params.PelagicCurve()
			series := [][]float64{make([]float64, points), make([]float64, points)}
			step := (to - from) / float64(points-1)
			for i := 0; i < points; i++ {
				t := from + float64(i)*step
				series[0][i] = litt.At(t)
				series[1][i] = pel.At(t)
			}

			out := cmd.OutOrStdout()
			caption := fmt.Sprintf("attack rate vs T in [%g, %g]: littoral (green), pelagic (blue)", from, to)
			fmt.Fprintln(out, export.PlotCurves(caption, series, width, height))
			fmt.Fprintln(out)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "HABITAT\tPEAK\tTOPT\tTMAX\tAT(T)")
			fmt.Fprintf(tw, "littoral\t%g\t%g\t%g\t%.6f\n", litt.Peak, litt.Topt, litt.Tmax, litt.At(cfg.Params.T))
			fmt.Fprintf(tw, "pelagic\t%g\t%g\t%g\t%.6f\n", pel.Peak, pel.Topt, pel.Tmax, pel.At(cfg.Params.T))
			return tw.Flush()
		},
	}

	rf.register(cmd)
	cmd.Flags().Float64Var(&from, "from", -5, "lowest temperature")
	cmd.Flags().Float64Var(&to, "to", 45, "highest temperature")
	cmd.Flags().IntVar(&points, "points", 101, "samples per curve")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 15, "plot height")

	return cmd
}

func newPhaseCmd() *cobra.Command {
	var (
		rf     runFlags
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "phase [x] [y]",
		Short: "phase portrait of two compartments (default C_litt vs P)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			axes := []string{"C_litt", "P"}
			copy(axes, args)
			xIdx, err := compartmentIndex(axes[0])
			if err != nil {
				return err
			}
			yIdx, err := compartmentIndex(axes[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			result, err := scenario.Run(cmd.Context(), scenario.FromConfig(cfg), logger)
			if err != nil {
				return err
			}
			portrait, err := analysis.NewPortrait(result, xIdx, yIdx)
			if err != nil {
				return err
			}

			names := foodweb.StateNames()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (horizontal) vs %s (vertical), T=%g, o=start *=end\n\n", names[xIdx], names[yIdx], cfg.Params.T)
			fmt.Fprint(out, portrait.ASCII(width, height))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().IntVar(&width, "width", 70, "plot width")
	cmd.Flags().IntVar(&height, "height", 25, "plot height")

	return cmd
}

func newLyapunovCmd() *cobra.Command {
	var (
		rf           runFlags
		perturbation float64
	)

	cmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent at fixed step dt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			integ, err := scenario.NewRegistry().GetIntegrator(cfg.Integrator)
			if err != nil {
				return err
			}

			lambda, err := analysis.LyapunovExponent(cmd.Context(), foodweb.NewModel(cfg.Params), integ,
				dynamo.State(cfg.InitState), cfg.Dt, cfg.T1-cfg.T0, perturbation)
			if err != nil {
				return err
			}

			verdict := "nearby states converge"
			switch {
			case math.Abs(lambda) < 1e-3:
				verdict = "neutral, consistent with a limit cycle"
			case lambda > 0:
				verdict = "nearby states diverge"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "T=%g  integrator=%s  dt=%g  lambda=%.6g (%s)\n",
				cfg.Params.T, cfg.Integrator, cfg.Dt, lambda, verdict)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation in R_litt")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var rf runFlags

	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the same scenario with several integrators",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			registry := scenario.NewRegistry()
			names := args
			if len(names) == 0 {
				names = registry.ListIntegrators()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "T=%g  dt=%g  t=[%g, %g]\n\n", cfg.Params.T, cfg.Dt, cfg.T0, cfg.T1)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "INTEGRATOR\tSTEPS\tREJECTED\tEVALS\tFINAL P\tMAX |DIFF|\tTIME")

			var reference dynamo.State
			for _, name := range names {
				cfg.Integrator = name
				start := time.Now()
				result, err := scenario.Run(cmd.Context(), scenario.FromConfig(cfg), logger)
				elapsed := time.Since(start)
				if err != nil {
					fmt.Fprintf(tw, "%s\terror: %v\n", name, err)
					continue
				}

				final := result.Final()
				diff := "-"
				if reference == nil {
					reference = final
				} else {
					maxDiff := 0.0
					for i := range final {
						maxDiff = max(maxDiff, math.Abs(final[i]-reference[i]))
					}
					diff = fmt.Sprintf("%.3e", maxDiff)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.6f\t%s\t%s\n", name, result.Stats.Steps, result.Stats.Rejected,
					result.Stats.Evaluations, final[foodweb.Pred], diff, elapsed.Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}

	rf.register(cmd)
	return cmd
}
