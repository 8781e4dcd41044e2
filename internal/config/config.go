package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/foodweb/internal/dynamo"
	"github.com/san-kum/foodweb/internal/foodweb"
)

const (
	DefaultT0          = 0.0
	DefaultT1          = 500.0
	DefaultDt          = 0.01
	DefaultTolerance   = 1e-8
	DefaultIntegrator  = "rk45"
	DefaultMaxSteps    = 5_000_000
	DefaultSweepFrom   = 0.0
	DefaultSweepTo     = 40.0
	DefaultSweepSteps  = 41
	DefaultSweepWorker = 4
	DefaultLogLevel    = "info"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvTemperature = "FOODWEB_TEMPERATURE"
	EnvIntegrator  = "FOODWEB_INTEGRATOR"
	EnvWorkers     = "FOODWEB_WORKERS"
	EnvLogLevel    = "FOODWEB_LOG_LEVEL"
)

type Config struct {
	Params      foodweb.Params `yaml:"params"`
	InitState   []float64      `yaml:"init_state"`
	T0          float64        `yaml:"t0"`
	T1          float64        `yaml:"t1"`
	Integrator  string         `yaml:"integrator"`
	Dt          float64        `yaml:"dt"`
	AbsTol      float64        `yaml:"abs_tol"`
	RelTol      float64        `yaml:"rel_tol"`
	MaxSteps    int            `yaml:"max_steps"`
	SampleEvery int            `yaml:"sample_every"`
	Sweep       SweepConfig    `yaml:"sweep"`
	LogLevel    string         `yaml:"log_level"`
}

// SweepConfig describes a temperature gradient of independent runs.
type SweepConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:      foodweb.DefaultParams(),
		InitState:   foodweb.DefaultState(),
		T0:          DefaultT0,
		T1:          DefaultT1,
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		AbsTol:      DefaultTolerance,
		RelTol:      DefaultTolerance,
		MaxSteps:    DefaultMaxSteps,
		SampleEvery: 1,
		Sweep: SweepConfig{
			From:    DefaultSweepFrom,
			To:      DefaultSweepTo,
			Steps:   DefaultSweepSteps,
			Workers: DefaultSweepWorker,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults, so a file only needs the fields
// it changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a YAML file over cfg. Fields absent from the file keep
// their current values.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from FOODWEB_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTemperature); ok && v != "" {
		temp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		c.Params.T = temp
	}
	if v, ok := lookup(EnvIntegrator); ok && v != "" {
		c.Integrator = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Sweep.Workers = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks everything a run needs before it starts. Biological
// plausibility is not checked; see foodweb.Params.Validate.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if len(c.InitState) != foodweb.Dim {
		return fmt.Errorf("%w: init_state needs %d values, got %d", dynamo.ErrDimensionMismatch, foodweb.Dim, len(c.InitState))
	}
	if !dynamo.State(c.InitState).IsValid() {
		return fmt.Errorf("init_state: %w", dynamo.ErrInvalidState)
	}
	if dynamo.State(c.InitState).HasNegative() {
		return fmt.Errorf("init_state %v: %w: densities must be non-negative", c.InitState, dynamo.ErrInvalidState)
	}
	if c.T1 <= c.T0 {
		return fmt.Errorf("%w: t1 (%g) must be after t0 (%g)", dynamo.ErrInvalidConfig, c.T1, c.T0)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.AbsTol <= 0 || c.RelTol < 0 {
		return fmt.Errorf("%w: tolerances must be positive (abs=%g rel=%g)", dynamo.ErrInvalidConfig, c.AbsTol, c.RelTol)
	}
	if c.Sweep.Steps < 1 {
		return fmt.Errorf("%w: sweep steps must be at least 1, got %d", dynamo.ErrInvalidConfig, c.Sweep.Steps)
	}
	return nil
}
