package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/validation"
)

// Config is the server configuration, loadable from a YAML file. Zero
// fields fall back to defaults.
type Config struct {
	Port         int           `yaml:"port"`
	StreamAddr   string        `yaml:"stream_addr"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`

	Mode     string `yaml:"mode"`
	Strategy string `yaml:"strategy"`

	Nodes struct {
		Count      int      `yaml:"count"`
		Attributes int      `yaml:"attributes"`
		Seed       int64    `yaml:"seed"`
		TraitNames []string `yaml:"trait_names"`
	} `yaml:"nodes"`

	Physics galaxy.PhysicsConfig `yaml:"physics"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	cfg := Config{
		Port:         8080,
		TickInterval: 16 * time.Millisecond,
		LogLevel:     "info",
		Mode:         string(galaxy.ModeContinuous),
		Strategy:     string(galaxy.StrategyEquilibrium),
		Physics:      galaxy.DefaultPhysicsConfig(),
	}
	cfg.Nodes.Count = 60
	cfg.Nodes.Attributes = 5
	cfg.Nodes.Seed = 1
	return cfg
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before startup.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		RangeInt("Port", c.Port, 1, 65535).
		RangeDuration("TickInterval", c.TickInterval, time.Millisecond, time.Second).
		OneOf("Mode", c.Mode, []string{string(galaxy.ModeContinuous), string(galaxy.ModeStatic)}).
		OneOf("Strategy", c.Strategy, []string{string(galaxy.StrategyEquilibrium), string(galaxy.StrategyCluster)}).
		RangeInt("Nodes.Count", c.Nodes.Count, validation.MinNodes, validation.MaxNodes).
		RangeInt("Nodes.Attributes", c.Nodes.Attributes, validation.MinAttributes, validation.MaxAttributes).
		NonNegativeFloat("Physics.Attraction", c.Physics.Attraction).
		NonNegativeFloat("Physics.Repulsion", c.Physics.Repulsion).
		PositiveFloat("Physics.Damping", c.Physics.Damping).
		PositiveFloat("Physics.MaxDistance", c.Physics.MaxDistance).
		PositiveFloat("Physics.MinDistance", c.Physics.MinDistance).
		Custom("Nodes.TraitNames", func() error {
			if len(c.Nodes.TraitNames) == 0 {
				return nil
			}
			if len(c.Nodes.TraitNames) != c.Nodes.Attributes {
				return fmt.Errorf("got %d names for %d attributes", len(c.Nodes.TraitNames), c.Nodes.Attributes)
			}
			return validation.ValidateTraitNames(c.Nodes.TraitNames)
		}).
		Validate()
}
