package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/foodweb/internal/analysis"
	"github.com/san-kum/foodweb/internal/export"
	"github.com/san-kum/foodweb/internal/foodweb"
	"github.com/san-kum/foodweb/internal/scenario"
	"github.com/san-kum/foodweb/internal/sweep"
)

func newRunCmd() *cobra.Command {
	var (
		rf     runFlags
		format string
		plot   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the food web at one temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			sc := scenario.FromConfig(cfg)
			result, err := scenario.Run(cmd.Context(), sc, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := foodweb.StateNames()
			switch format {
			case "csv":
				return export.WriteCSV(out, names, result)
			case "json":
				return export.WriteJSON(out, sc.Integrator, sc.Params, result)
			case "table":
				aLitt, aPel := sc.Params.AttackRates()
				fmt.Fprintf(out, "T=%g  integrator=%s  t=[%g, %g]  a_litt=%.4f  a_pel=%.4f\n\n",
					sc.Params.T, sc.Integrator, sc.Solver.T0, sc.Solver.T1, aLitt, aPel)
				if err := export.WriteSummary(out, names, result); err != nil {
					return err
				}
				if plot {
					fmt.Fprintln(out)
					fmt.Fprint(out, export.PlotSeries(names, result, 70, 10))
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (table, csv, json)", format)
			}
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv or json")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot every compartment against time (table format)")

	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		rf     runFlags
		sf     sweepFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run independent integrations across a temperature gradient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := sf.apply(cmd, cfg); err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			temps := sweep.Linspace(cfg.Sweep.From, cfg.Sweep.To, cfg.Sweep.Steps)
			points, err := sweep.Run(cmd.Context(), scenario.FromConfig(cfg), temps, sweep.Options{
				Workers: cfg.Sweep.Workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := foodweb.StateNames()
			switch format {
			case "csv":
				return export.WriteSweepCSV(out, names, points)
			case "json":
				return export.WriteSweepJSON(out, points)
			case "table":
				return export.WriteSweepTable(out, names, points)
			default:
				return fmt.Errorf("unknown format %q (table, csv, json)", format)
			}
		},
	}

	rf.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv or json")

	return cmd
}

func newBifurcationCmd() *cobra.Command {
	var (
		rf        runFlags
		sf        sweepFlags
		transient float64
		width     int
		height    int
	)

	cmd := &cobra.Command{
		Use:   "bifurcation [compartment]",
		Short: "long-run extrema of one compartment across a temperature gradient",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compartment := "P"
			if len(args) == 1 {
				compartment = args[0]
			}
			idx, err := compartmentIndex(compartment)
			if err != nil {
				return err
			}
			if transient < 0 || transient >= 1 {
				return fmt.Errorf("--transient must be in [0, 1), got %g", transient)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := sf.apply(cmd, cfg); err != nil {
				return err
			}
			if err := rf.apply(cmd, cfg); err != nil {
				return err
			}

			temps := sweep.Linspace(cfg.Sweep.From, cfg.Sweep.To, cfg.Sweep.Steps)
			points, err := sweep.Run(cmd.Context(), scenario.FromConfig(cfg), temps, sweep.Options{
				Workers:   cfg.Sweep.Workers,
				Summarize: analysis.ExtremaOf(idx, transient),
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			data := make([]analysis.BifurcationPoint, 0, len(points))
			out := cmd.OutOrStdout()
			for _, pt := range points {
				if pt.Err != nil {
					fmt.Fprintf(out, "T=%-8.3g failed: %v\n", pt.T, pt.Err)
					continue
				}
				data = append(data, analysis.BifurcationPoint{Param: pt.T, Values: pt.Summary})
			}

			name := foodweb.StateNames()[idx]
			fmt.Fprintf(out, "%s extrema for T in [%g, %g], last %.0f%% of each run\n\n",
				name, cfg.Sweep.From, cfg.Sweep.To, (1-transient)*100)
			fmt.Fprint(out, analysis.BifurcationASCII(data, width, height))
			fmt.Fprintln(out)
			for _, d := range data {
				fmt.Fprintf(out, "T=%-8.3g %d value(s): %v\n", d.Param, len(d.Values), formatValues(d.Values))
			}
			return nil
		},
	}

	rf.register(cmd)
	sf.register(cmd)
	cmd.Flags().Float64Var(&transient, "transient", 0.5, "fraction of each run discarded before looking for extrema")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 20, "plot height")

	return cmd
}

func formatValues(vals []float64) string {
	const maxShown = 6
	s := "["
	for i, v := range vals {
		if i == maxShown {
			s += fmt.Sprintf(" ... +%d", len(vals)-maxShown)
			break
		}
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.4g", v)
	}
	return s + "]"
}
