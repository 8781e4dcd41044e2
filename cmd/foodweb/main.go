package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/foodweb/internal/config"
	"github.com/san-kum/foodweb/internal/foodweb"
	"github.com/san-kum/foodweb/internal/logging"
)

var (
	configFile string
	envFile    string
	logLevel   string
	preset     string

	logger = logging.Discard()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "foodweb",
		Short:             "temperature-dependent littoral/pelagic food web",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with FOODWEB_* overrides (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset (see presets)")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newBifurcationCmd(),
		newRatesCmd(),
		newThermalCmd(),
		newPhaseCmd(),
		newLyapunovCmd(),
		newCompareCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if err := loadDotEnv(".env"); err != nil {
		return err
	}

	logger = logging.NewLogger(logLevel, cmd.ErrOrStderr())
	return nil
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// loadConfig layers defaults, preset, config file and environment, in that
// order. Command-line flags are applied on top by the caller.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if !cmd.Flags().Changed("log-level") {
		logger = logging.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	}
	logger.Debug("configuration loaded", slog.String("preset", preset), slog.String("file", configFile), slog.Float64("temperature", cfg.Params.T))

	return cfg, nil
}

// compartmentIndex accepts a compartment name (any case) or its index.
func compartmentIndex(s string) (int, error) {
	for i, name := range foodweb.StateNames() {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < foodweb.Dim {
		return i, nil
	}
	return 0, fmt.Errorf("unknown compartment %q (available: %s)", s, strings.Join(foodweb.StateNames(), ", "))
}
