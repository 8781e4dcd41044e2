package config

import "sort"

// Preset is a named starting point for a run. Presets only move the ambient
// temperature and the time span; every other setting keeps its default.
type Preset struct {
	Description string
	Temperature float64
	T1          float64
}

var Presets = map[string]Preset{
	"cold": {
		Description: "documented reference run, T=0",
		Temperature: 0, T1: 500,
	},
	"optimum_pelagic": {
		Description: "pelagic attack rate at its peak",
		Temperature: 25, T1: 500,
	},
	"optimum_littoral": {
		Description: "littoral attack rate at its peak, pelagic at zero",
		Temperature: 32, T1: 500,
	},
	"heatwave": {
		Description: "warmest temperature the default web survives; from 34 on the pelagic rate turns negative fast enough to stall the run",
		Temperature: 33, T1: 500,
	},
}

// GetPreset returns a fresh default config with the preset applied, or nil
// for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params.T = p.Temperature
	cfg.T1 = p.T1
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
