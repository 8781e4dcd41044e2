package export

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// maxPlotPoints caps each series so long adaptive runs still render quickly.
const maxPlotPoints = 400

// PlotSeries renders one terminal chart per compartment.
func PlotSeries(names []string, result *dynamo.Result, width, height int) string {
	if result == nil || len(result.States) == 0 {
		return ""
	}

	var sb strings.Builder
	for idx := range result.States[0] {
		data := make([]float64, len(result.States))
		for i, s := range result.States {
			data[i] = s[idx]
		}

		caption := fmt.Sprintf("x%d vs time", idx)
		if idx < len(names) {
			caption = fmt.Sprintf("%s vs time (t=%.4g..%.4g)", names[idx], result.Times[0], result.Times[len(result.Times)-1])
		}

		sb.WriteString(asciigraph.Plot(Downsample(data, maxPlotPoints),
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// PlotCurves renders several series on one chart, e.g. both attack rates over
// a temperature range.
func PlotCurves(caption string, series [][]float64, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
	)
}

// Downsample keeps at most n evenly spaced points, always including the last.
func Downsample(data []float64, n int) []float64 {
	if n <= 1 || len(data) <= n {
		return data
	}
	out := make([]float64, n)
	stride := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(float64(i)*stride)]
	}
	out[n-1] = data[len(data)-1]
	return out
}
