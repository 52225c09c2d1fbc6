package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/physics"
	"github.com/ecodyn/lotkasim/internal/sim"
)

const (
	DefaultAlpha     = 1.1
	DefaultBeta      = 0.4
	DefaultGamma     = 0.4
	DefaultDelta     = 0.1
	DefaultPrey      = 10.0
	DefaultPredator  = 10.0
	DefaultTMax      = 50.0
	DefaultNumPoints = 1000
)

// Config mirrors the YAML parameter file: the four model coefficients,
// the initial populations, the sampling spec, and solver settings.
type Config struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Delta float64 `yaml:"delta"`

	X0 float64 `yaml:"x0"`
	Y0 float64 `yaml:"y0"`

	TMax      float64 `yaml:"t_max"`
	NumPoints int     `yaml:"num_points"`

	Integrator string  `yaml:"integrator"`
	Tolerance  float64 `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Alpha:      DefaultAlpha,
		Beta:       DefaultBeta,
		Gamma:      DefaultGamma,
		Delta:      DefaultDelta,
		X0:         DefaultPrey,
		Y0:         DefaultPredator,
		TMax:       DefaultTMax,
		NumPoints:  DefaultNumPoints,
		Integrator: "rk45",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Model builds the dynamical system described by the config.
func (c *Config) Model() *physics.LotkaVolterra {
	return physics.NewLotkaVolterra(c.Alpha, c.Beta, c.Gamma, c.Delta)
}

func (c *Config) InitState() dynamo.State {
	return dynamo.State{c.X0, c.Y0}
}

func (c *Config) SimConfig() sim.Config {
	solver := dynamo.DefaultConfig()
	if c.Tolerance > 0 {
		solver.Tolerance = c.Tolerance
	}
	return sim.Config{
		TMax:      c.TMax,
		NumPoints: c.NumPoints,
		Solver:    solver,
	}
}

// Validate surfaces malformed files before any simulation starts. The
// same checks run again inside sim.Simulate; failing here gives the
// user a file-level message instead of a solver-level one.
func (c *Config) Validate() error {
	if err := c.Model().Validate(); err != nil {
		return err
	}
	if c.TMax <= 0 {
		return fmt.Errorf("%w: t_max must be positive, got %v", dynamo.ErrInvalidParameters, c.TMax)
	}
	if c.NumPoints < 2 {
		return fmt.Errorf("%w: num_points must be at least 2, got %d", dynamo.ErrInvalidParameters, c.NumPoints)
	}
	if c.X0 < 0 || c.Y0 < 0 {
		return fmt.Errorf("%w: initial populations must be non-negative", dynamo.ErrInvalidParameters)
	}
	return nil
}
