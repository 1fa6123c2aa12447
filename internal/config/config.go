// Package config provides unified configuration loading for relmesh.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is the per-root state directory holding the config file, the mesh
// snapshot database, and trace logs.
const Dir = ".relmesh"

// Config contains all relmesh configuration settings.
type Config struct {
	// Dynamics tunes the update rules and their CLI defaults.
	Dynamics DynamicsConfig `json:"dynamics" yaml:"dynamics"`

	// Driver configures the background update cycle.
	Driver DriverConfig `json:"driver" yaml:"driver"`

	// Logging configures operational and pulse-trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DynamicsConfig tunes the dynamics engine and the default rule inputs
// used when a caller does not supply its own.
type DynamicsConfig struct {
	// PulseFrequency is the fixed angular frequency for the soliton nudge.
	PulseFrequency float64 `json:"pulse_frequency" yaml:"pulse_frequency"`

	// ReinforcementGain scales the consensus reinforcement bonus.
	ReinforcementGain float64 `json:"reinforcement_gain" yaml:"reinforcement_gain"`

	// Strength is the default pulse strength.
	Strength float64 `json:"strength" yaml:"strength"`

	// InputStrength is the default consensus input signal.
	InputStrength float64 `json:"input_strength" yaml:"input_strength"`

	// Stubbornness is the default consensus adoption weight, in [0, 1].
	// Higher values adopt the input signal faster (historical naming).
	Stubbornness float64 `json:"stubbornness" yaml:"stubbornness"`
}

// DriverConfig configures the interval-driven update cycle.
type DriverConfig struct {
	// Interval between update cycles.
	Interval time.Duration `json:"interval" yaml:"interval"`

	// Source is the agent to pulse and debate each cycle. Empty means
	// every agent in the mesh, in sorted order.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// LoggingConfig configures relmesh's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" additionally enables pulse tracing to .relmesh/pulses.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the shipped defaults.
func Default() *Config {
	return &Config{
		Dynamics: DynamicsConfig{
			PulseFrequency:    79.79,
			ReinforcementGain: 0.05,
			Strength:          1.0,
			InputStrength:     1.0,
			Stubbornness:      0.3,
		},
		Driver: DriverConfig{
			Interval: 12 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration for the given root directory.
// Order: defaults -> <root>/.relmesh/config.yaml -> environment variables.
func Load(root string) (*Config, error) {
	config := Default()

	path := filepath.Join(root, Dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		fileConfig, loadErr := LoadFromFile(path)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file, layered
// over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Dynamics.Stubbornness < 0 || c.Dynamics.Stubbornness > 1 {
		return fmt.Errorf("stubbornness must be between 0 and 1, got %f", c.Dynamics.Stubbornness)
	}

	if c.Dynamics.Strength < 0 {
		return fmt.Errorf("strength must be non-negative, got %f", c.Dynamics.Strength)
	}

	if c.Dynamics.InputStrength < 0 {
		return fmt.Errorf("input_strength must be non-negative, got %f", c.Dynamics.InputStrength)
	}

	if c.Driver.Interval <= 0 {
		return fmt.Errorf("driver interval must be positive, got %v", c.Driver.Interval)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RELMESH_PULSE_FREQUENCY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Dynamics.PulseFrequency = f
		}
	}

	if v := os.Getenv("RELMESH_STUBBORNNESS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Dynamics.Stubbornness = f
		}
	}

	if v := os.Getenv("RELMESH_DRIVER_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Driver.Interval = d
		}
	}

	if v := os.Getenv("RELMESH_DRIVER_SOURCE"); v != "" {
		config.Driver.Source = v
	}

	if v := os.Getenv("RELMESH_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
