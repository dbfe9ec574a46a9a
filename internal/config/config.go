package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/flight"
	"github.com/san-kum/projsim/internal/optim"
	"github.com/san-kum/projsim/internal/physics"
)

const (
	DefaultIntegrator = "euler"
	DefaultOutputDir  = "."
	DefaultDataDir    = ".projsim"
)

type Config struct {
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Mass       float64       `yaml:"mass"`
	Gravity    float64       `yaml:"gravity"`
	Speed      float64       `yaml:"speed"`
	Angle      float64       `yaml:"angle"`
	Angles     []float64     `yaml:"angles"`
	Velocities []float64     `yaml:"velocities"`
	Optimal    OptimalConfig `yaml:"optimal"`
	OutputDir  string        `yaml:"output_dir"`
	DataDir    string        `yaml:"data_dir"`
}

type OptimalConfig struct {
	MaxDrag  float64   `yaml:"max_drag"`
	DragStep float64   `yaml:"drag_step"`
	Angles   []float64 `yaml:"angles"`
	Workers  int       `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         flight.DefaultDt,
		Mass:       physics.DefaultMass,
		Gravity:    physics.DefaultGravity,
		Speed:      flight.DefaultSpeed,
		Angle:      flight.DefaultAngle,
		Angles:     append([]float64(nil), experiment.DefaultAngles...),
		Velocities: append([]float64(nil), experiment.DefaultSpeeds...),
		Optimal: OptimalConfig{
			MaxDrag:  optim.DefaultMaxDrag,
			DragStep: optim.DefaultDragStep,
			Angles:   optim.AngleRange(1, 90, 1),
			Workers:  1,
		},
		OutputDir: DefaultOutputDir,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values that would make every run fail or never finish.
func (c *Config) Validate() error {
	p := c.Params(0)
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := optim.DragValues(c.Optimal.MaxDrag, c.Optimal.DragStep); err != nil {
		return err
	}
	if c.Optimal.Workers < 0 {
		return dynamo.Invalid("workers must not be negative, got %d", c.Optimal.Workers)
	}
	return nil
}

// Params returns the single-run parameters for drag coefficient drag.
func (c *Config) Params(drag float64) flight.Params {
	return flight.Params{
		Speed:   c.Speed,
		Angle:   c.Angle,
		Drag:    drag,
		Dt:      c.Dt,
		Mass:    c.Mass,
		Gravity: c.Gravity,
	}
}

// SweepOptions converts the fixed parameters into experiment options.
// integ may be nil to keep the default integrator.
func (c *Config) SweepOptions(integ func() dynamo.Integrator) []experiment.Option {
	return []experiment.Option{
		experiment.WithSpeed(c.Speed),
		experiment.WithAngle(c.Angle),
		experiment.WithMass(c.Mass),
		experiment.WithGravity(c.Gravity),
		experiment.WithTimeStep(c.Dt),
		experiment.WithIntegrator(integ),
	}
}

func (c *Config) OptimConfig(integ func() dynamo.Integrator) optim.Config {
	return optim.Config{
		MaxDrag:  c.Optimal.MaxDrag,
		DragStep: c.Optimal.DragStep,
		Angles:   c.Optimal.Angles,
		Workers:  c.Optimal.Workers,
		Options:  c.SweepOptions(integ),
	}
}
