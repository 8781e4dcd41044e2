package analysis

import (
	"math"
	"slices"
	"strings"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// BifurcationPoint holds the long-run values of one compartment at one
// parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Extrema returns the distinct local maxima and minima of compartment idx
// among samples with t >= after. A trajectory without turning points, i.e.
// one that has settled, yields its final value alone. Values closer than
// 1e-4 are merged.
func Extrema(result *dynamo.Result, idx int, after float64) []float64 {
	if result == nil || len(result.States) == 0 || idx < 0 || idx >= len(result.States[0]) {
		return nil
	}

	series := make([]float64, 0, len(result.States))
	for i, x := range result.States {
		if result.Times[i] >= after {
			series = append(series, x[idx])
		}
	}
	if len(series) == 0 {
		return nil
	}

	values := make([]float64, 0, 16)
	seen := make(map[int64]bool)
	add := func(v float64) {
		key := int64(math.Round(v * 1e4))
		if !seen[key] {
			seen[key] = true
			values = append(values, v)
		}
	}

	for i := 1; i < len(series)-1; i++ {
		prev, cur, next := series[i-1], series[i], series[i+1]
		if (cur > prev && cur >= next) || (cur < prev && cur <= next) {
			add(cur)
		}
	}
	if len(values) == 0 {
		add(series[len(series)-1])
	}

	slices.Sort(values)
	return values
}

// ExtremaOf adapts Extrema for sweep.Options.Summarize. transient is the
// fraction of the run's time span discarded before looking for extrema.
func ExtremaOf(idx int, transient float64) func(*dynamo.Result) []float64 {
	return func(r *dynamo.Result) []float64 {
		if r == nil || len(r.Times) == 0 {
			return nil
		}
		t0, t1 := r.Times[0], r.Times[len(r.Times)-1]
		return Extrema(r, idx, t0+transient*(t1-t0))
	}
}

// BifurcationASCII plots one column per parameter value, lowest value at the
// bottom.
func BifurcationASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
