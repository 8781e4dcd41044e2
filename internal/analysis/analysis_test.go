package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/integrators"
)

func seriesResult(t0, t1, dt float64, f func(t float64) float64) *dynamo.Result {
	r := &dynamo.Result{}
	n := int(math.Round((t1 - t0) / dt))
	for i := 0; i <= n; i++ {
		t := t0 + float64(i)*dt
		r.Times = append(r.Times, t)
		r.States = append(r.States, dynamo.State{f(t), 0})
	}
	return r
}

func TestNewPortrait(t *testing.T) {
	r := &dynamo.Result{
		Times:  []float64{0, 1, 2},
		States: []dynamo.State{{0, 0, 9}, {1, 1, 9}, {2, 4, 9}},
	}

	p, err := NewPortrait(r, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {1, 1}, {2, 4}}, p.Points)

	_, err = NewPortrait(r, 0, 3)
	assert.ErrorIs(t, err, dynamo.ErrDimensionMismatch)

	_, err = NewPortrait(&dynamo.Result{}, 0, 1)
	assert.Error(t, err)
}

func TestPortraitASCII(t *testing.T) {
	r := &dynamo.Result{
		Times:  []float64{0, 1, 2},
		States: []dynamo.State{{0, 0}, {1, 1}, {2, 4}},
	}
	p, err := NewPortrait(r, 0, 1)
	require.NoError(t, err)

	out := p.ASCII(30, 10)
	assert.Equal(t, 10, strings.Count(out, "\n"))
	assert.Contains(t, out, "o")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "•")

	assert.Empty(t, (*Portrait)(nil).ASCII(30, 10))
	assert.Empty(t, p.ASCII(1, 1))
}

func TestExtremaOfCycle(t *testing.T) {
	r := seriesResult(0, 20, 0.01, math.Sin)

	ext := Extrema(r, 0, 0)
	require.Len(t, ext, 2)
	assert.InDelta(t, -1, ext[0], 1e-4)
	assert.InDelta(t, 1, ext[1], 1e-4)
}

func TestExtremaOfSettledRun(t *testing.T) {
	r := seriesResult(0, 10, 0.1, func(t float64) float64 { return math.Exp(-t) })

	ext := Extrema(r, 0, 5)
	require.Len(t, ext, 1)
	assert.InDelta(t, math.Exp(-10), ext[0], 1e-12)
}

func TestExtremaEdgeCases(t *testing.T) {
	r := seriesResult(0, 1, 0.1, math.Sin)

	assert.Nil(t, Extrema(r, 0, 2))
	assert.Nil(t, Extrema(r, 5, 0))
	assert.Nil(t, Extrema(nil, 0, 0))
}

func TestExtremaOfDiscardsTransient(t *testing.T) {
	// A spike in the first half only.
	r := seriesResult(0, 10, 0.1, func(t float64) float64 {
		if t > 1 && t < 2 {
			return 5
		}
		return 1
	})

	assert.Equal(t, []float64{1}, ExtremaOf(0, 0.5)(r))
	assert.Nil(t, ExtremaOf(0, 0.5)(&dynamo.Result{}))
}

func TestBifurcationASCII(t *testing.T) {
	data := []BifurcationPoint{
		{Param: 0, Values: []float64{1}},
		{Param: 1, Values: []float64{0.5, 1.5}},
		{Param: 2, Values: []float64{0.2, 1.8}},
	}

	out := BifurcationASCII(data, 12, 6)
	assert.Equal(t, 6, strings.Count(out, "\n"))
	assert.Equal(t, 5, strings.Count(out, "•"))

	assert.Empty(t, BifurcationASCII(nil, 12, 6))
	assert.Empty(t, BifurcationASCII([]BifurcationPoint{{Param: 0}}, 12, 6))
}

type decay struct{ k float64 }

func (d decay) StateDim() int { return 2 }

func (d decay) Derive(dst, x dynamo.State, t float64) {
	for i := range x {
		dst[i] = -d.k * x[i]
	}
}

func TestLyapunovExponentOfLinearDecay(t *testing.T) {
	lambda, err := LyapunovExponent(context.Background(), decay{k: 0.5}, integrators.NewRK4(), dynamo.State{1, 1}, 0.01, 10, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, lambda, 1e-4)
}

func TestLyapunovExponentErrors(t *testing.T) {
	ctx := context.Background()
	rk4 := integrators.NewRK4()

	_, err := LyapunovExponent(ctx, decay{k: 1}, rk4, dynamo.State{1}, 0.01, 1, 1e-6)
	assert.ErrorIs(t, err, dynamo.ErrDimensionMismatch)

	_, err = LyapunovExponent(ctx, decay{k: 1}, rk4, dynamo.State{1, 1}, 0, 1, 1e-6)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = LyapunovExponent(canceled, decay{k: 1}, rk4, dynamo.State{1, 1}, 0.01, 1, 1e-6)
	assert.ErrorIs(t, err, context.Canceled)
}
