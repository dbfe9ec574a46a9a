package config

import "sort"

// Presets are named overrides applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"reference": func(c *Config) {},
	"fine": func(c *Config) {
		c.Dt = 0.001
	},
	"coarse": func(c *Config) {
		c.Dt = 0.05
		c.Optimal.DragStep = 1.0
	},
	"heavy": func(c *Config) {
		c.Mass = 50.0
		c.Optimal.MaxDrag = 50.0
		c.Optimal.DragStep = 1.0
	},
	"rk4": func(c *Config) {
		c.Integrator = "rk4"
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
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
