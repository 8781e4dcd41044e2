package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/foodweb/internal/config"
	"github.com/san-kum/foodweb/internal/dynamo"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{config.EnvTemperature, config.EnvIntegrator, config.EnvWorkers, config.EnvLogLevel} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRatesAtReferenceState(t *testing.T) {
	out, err := execute(t, "rates")
	require.NoError(t, err)

	assert.Contains(t, out, "-0.109878")
	assert.Contains(t, out, "+0.025961")
	assert.Contains(t, out, "a_litt=0.002448")
	assert.Contains(t, out, "a_pel=0.091230")
	assert.Contains(t, out, "D=1.257665")
}

func TestRatesWithTemperature(t *testing.T) {
	out, err := execute(t, "rates", "--temp", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "+0.113851")
}

func TestRatesRejectsBadSet(t *testing.T) {
	_, err := execute(t, "rates", "--set", "bogus=1")
	assert.ErrorIs(t, err, dynamo.ErrUnknownParam)

	_, err = execute(t, "rates", "--set", "a_pr_pel")
	assert.ErrorContains(t, err, "expected name=value")

	_, err = execute(t, "rates", "--set", "sigma=0")
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)

	_, err = execute(t, "run", "--set", "k_litt=0", "--t-end", "1")
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)
}

func TestEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FOODWEB_TEMPERATURE=25\n"), 0644))

	cmd := newRootCmd()
	t.Setenv(config.EnvTemperature, "")
	require.NoError(t, os.Unsetenv(config.EnvTemperature))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"rates", "--env-file", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "T=25")
}

func TestRunCSV(t *testing.T) {
	out, err := execute(t, "run", "--t-end", "1", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "time,R_litt,R_pel,C_litt,C_pel,P", lines[0])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "1,"))
}

func TestRunTable(t *testing.T) {
	out, err := execute(t, "run", "--t-end", "2", "--integrator", "rk4", "--plot")
	require.NoError(t, err)
	assert.Contains(t, out, "integrator=rk4")
	assert.Contains(t, out, "final state")
	assert.Contains(t, out, "P vs time")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "--t-end", "1", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "run", "--preset", "nope")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = execute(t, "run", "--init", "1,2")
	assert.ErrorIs(t, err, dynamo.ErrDimensionMismatch)

	_, err = execute(t, "run", "--t-end", "1", "--integrator", "leapfrog")
	assert.Error(t, err)
}

func TestSweepCSV(t *testing.T) {
	out, err := execute(t, "sweep", "--from", "0", "--to", "10", "--steps", "3", "--t-end", "1", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "0,"))
	assert.True(t, strings.HasPrefix(lines[3], "10,"))
}

func TestSweepRejectsTemp(t *testing.T) {
	for _, name := range []string{"sweep", "bifurcation"} {
		_, err := execute(t, name, "--temp", "20", "--steps", "2", "--t-end", "1")
		assert.ErrorContains(t, err, "--temp has no effect on "+name)
	}
}

func TestBifurcation(t *testing.T) {
	out, err := execute(t, "bifurcation", "P", "--steps", "2", "--t-end", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "P extrema for T in [0, 40]")

	_, err = execute(t, "bifurcation", "Z")
	assert.ErrorContains(t, err, "unknown compartment")
}

func TestPhase(t *testing.T) {
	out, err := execute(t, "phase", "r_litt", "4", "--t-end", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "R_litt (horizontal) vs P (vertical)")
}

func TestLyapunov(t *testing.T) {
	out, err := execute(t, "lyapunov", "--t-end", "1", "--integrator", "rk4")
	require.NoError(t, err)
	assert.Contains(t, out, "lambda=")
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--t-end", "1")
	require.NoError(t, err)
	for _, name := range []string{"euler", "rk4", "rk45"} {
		assert.Contains(t, out, name)
	}
}

func TestThermal(t *testing.T) {
	out, err := execute(t, "thermal", "--points", "41")
	require.NoError(t, err)
	assert.Contains(t, out, "littoral")
	assert.Contains(t, out, "pelagic")
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodweb.yaml")

	_, err := execute(t, "config", "init", path, "--preset", "heatwave")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 38.0, cfg.Params.T)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", path, "--force")
	assert.NoError(t, err)
}

func TestCompartmentIndex(t *testing.T) {
	idx, err := compartmentIndex("c_pel")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	idx, err = compartmentIndex("0")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = compartmentIndex("5")
	assert.Error(t, err)
}
