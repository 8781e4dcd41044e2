package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/sweep"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Column headers stay unstyled: escape codes would throw off tabwriter widths.
func header(cols ...string) string {
	return strings.Join(cols, "\t")
}

// WriteSummary prints the final state and run statistics of one run.
func WriteSummary(w io.Writer, names []string, result *dynamo.Result) error {
	fmt.Fprintln(w, titleStyle.Render("final state"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header("COMPARTMENT", "INITIAL", "FINAL"))

	first, final := result.States[0], result.Final()
	for i := range final {
		name := fmt.Sprintf("x%d", i)
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\n", name, first[i], final[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nsteps: %d  rejected: %d  evaluations: %d  samples: %d\n",
		result.Stats.Steps, result.Stats.Rejected, result.Stats.Evaluations, len(result.States))
	fmt.Fprintln(w, "metrics:")
	for _, name := range []string{"stability", "negative_samples", "littoral_diet"} {
		if v, ok := result.Metrics[name]; ok {
			fmt.Fprintf(w, "  %s: %.6f\n", name, v)
		}
	}
	return nil
}

// WriteSweepTable prints one line per temperature.
func WriteSweepTable(w io.Writer, names []string, points []sweep.Point) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("temperature sweep (%d runs)", len(points))))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cols := []string{"T", "A_LITT", "A_PEL"}
	for _, n := range names {
		cols = append(cols, strings.ToUpper(n))
	}
	cols = append(cols, "DIET_LITT", "STEPS")
	fmt.Fprintln(tw, header(cols...))

	for _, pt := range points {
		fmt.Fprintf(tw, "%.2f\t%.4f\t%.4f", pt.T, pt.ALitt, pt.APel)
		if pt.Err != nil {
			fmt.Fprintf(tw, "\tfailed: %v\n", pt.Err)
			continue
		}
		for i := range names {
			if i < len(pt.Final) {
				fmt.Fprintf(tw, "\t%.5f", pt.Final[i])
			} else {
				fmt.Fprint(tw, "\t-")
			}
		}
		fmt.Fprintf(tw, "\t%.3f\t%d\n", pt.LittoralDiet, pt.Steps)
	}

	return tw.Flush()
}
