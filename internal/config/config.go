// Package config handles YAML configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"poolburn/internal/collector"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Target     string                `yaml:"target"`
	Users      int                   `yaml:"users"`
	SpawnRate  float64               `yaml:"spawn_rate"`
	Duration   time.Duration         `yaml:"duration"`
	RPS        int                   `yaml:"rps"`
	Profiles   []string              `yaml:"profiles,omitempty"`
	Thresholds *collector.Thresholds `yaml:"thresholds,omitempty"`
	Execution  ExecutionConfig       `yaml:"execution,omitempty"`
}

// ExecutionConfig controls iteration-level execution behavior.
type ExecutionConfig struct {
	MaxIterations    int `yaml:"max_iterations"`
	WarmupIterations int `yaml:"warmup_iterations"`
}

// Default values applied by Load when the file leaves them unset.
const (
	DefaultUsers     = 60
	DefaultSpawnRate = 10.0
	DefaultDuration  = 5 * time.Minute
)

// Load reads and parses a YAML configuration file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Users == 0 {
		c.Users = DefaultUsers
	}
	if c.SpawnRate == 0 {
		c.SpawnRate = DefaultSpawnRate
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
}

// Validate rejects configurations that cannot describe a runnable test.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("config: target is required")
	}
	if c.Users < 0 {
		return fmt.Errorf("config: users must be non-negative, got %d", c.Users)
	}
	if c.SpawnRate < 0 {
		return fmt.Errorf("config: spawn_rate must be non-negative, got %g", c.SpawnRate)
	}
	if c.Duration < 0 {
		return fmt.Errorf("config: duration must be non-negative, got %v", c.Duration)
	}
	if c.RPS < 0 {
		return fmt.Errorf("config: rps must be non-negative, got %d", c.RPS)
	}
	if c.Execution.MaxIterations < 0 {
		return fmt.Errorf("config: max_iterations must be non-negative, got %d", c.Execution.MaxIterations)
	}
	if c.Execution.WarmupIterations < 0 {
		return fmt.Errorf("config: warmup_iterations must be non-negative, got %d", c.Execution.WarmupIterations)
	}
	return nil
}
