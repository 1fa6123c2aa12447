package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Dynamics.PulseFrequency != 79.79 {
		t.Errorf("expected PulseFrequency 79.79, got %f", config.Dynamics.PulseFrequency)
	}
	if config.Dynamics.ReinforcementGain != 0.05 {
		t.Errorf("expected ReinforcementGain 0.05, got %f", config.Dynamics.ReinforcementGain)
	}
	if config.Dynamics.Strength != 1.0 {
		t.Errorf("expected Strength 1.0, got %f", config.Dynamics.Strength)
	}
	if config.Dynamics.Stubbornness != 0.3 {
		t.Errorf("expected Stubbornness 0.3, got %f", config.Dynamics.Stubbornness)
	}
	if config.Driver.Interval != 12*time.Second {
		t.Errorf("expected Driver.Interval 12s, got %v", config.Driver.Interval)
	}
	if config.Driver.Source != "" {
		t.Errorf("expected empty Driver.Source, got '%s'", config.Driver.Source)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
dynamics:
  pulse_frequency: 42.0
  reinforcement_gain: 0.1
  stubbornness: 0.5

driver:
  interval: 3s
  source: hunter

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Dynamics.PulseFrequency != 42.0 {
		t.Errorf("expected PulseFrequency 42.0, got %f", config.Dynamics.PulseFrequency)
	}
	if config.Dynamics.ReinforcementGain != 0.1 {
		t.Errorf("expected ReinforcementGain 0.1, got %f", config.Dynamics.ReinforcementGain)
	}
	if config.Dynamics.Stubbornness != 0.5 {
		t.Errorf("expected Stubbornness 0.5, got %f", config.Dynamics.Stubbornness)
	}
	if config.Driver.Interval != 3*time.Second {
		t.Errorf("expected Driver.Interval 3s, got %v", config.Driver.Interval)
	}
	if config.Driver.Source != "hunter" {
		t.Errorf("expected Driver.Source 'hunter', got '%s'", config.Driver.Source)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile_PartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
driver:
  source: caribou
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Driver.Source != "caribou" {
		t.Errorf("expected Driver.Source 'caribou', got '%s'", config.Driver.Source)
	}
	// Untouched sections stay at defaults.
	if config.Dynamics.PulseFrequency != 79.79 {
		t.Errorf("expected default PulseFrequency, got %f", config.Dynamics.PulseFrequency)
	}
	if config.Driver.Interval != 12*time.Second {
		t.Errorf("expected default Driver.Interval, got %v", config.Driver.Interval)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RELMESH_PULSE_FREQUENCY", "13.37")
	t.Setenv("RELMESH_STUBBORNNESS", "0.8")
	t.Setenv("RELMESH_DRIVER_INTERVAL", "500ms")
	t.Setenv("RELMESH_DRIVER_SOURCE", "land")
	t.Setenv("RELMESH_LOG_LEVEL", "trace")

	config := Default()
	applyEnvOverrides(config)

	if config.Dynamics.PulseFrequency != 13.37 {
		t.Errorf("expected PulseFrequency 13.37, got %f", config.Dynamics.PulseFrequency)
	}
	if config.Dynamics.Stubbornness != 0.8 {
		t.Errorf("expected Stubbornness 0.8, got %f", config.Dynamics.Stubbornness)
	}
	if config.Driver.Interval != 500*time.Millisecond {
		t.Errorf("expected Driver.Interval 500ms, got %v", config.Driver.Interval)
	}
	if config.Driver.Source != "land" {
		t.Errorf("expected Driver.Source 'land', got '%s'", config.Driver.Source)
	}
	if config.Logging.Level != "trace" {
		t.Errorf("expected Logging.Level 'trace', got '%s'", config.Logging.Level)
	}
}

func TestEnvOverrides_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("RELMESH_PULSE_FREQUENCY", "not-a-number")
	t.Setenv("RELMESH_DRIVER_INTERVAL", "soon")

	config := Default()
	applyEnvOverrides(config)

	if config.Dynamics.PulseFrequency != 79.79 {
		t.Errorf("malformed override changed PulseFrequency to %f", config.Dynamics.PulseFrequency)
	}
	if config.Driver.Interval != 12*time.Second {
		t.Errorf("malformed override changed Driver.Interval to %v", config.Driver.Interval)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	config, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Dynamics.PulseFrequency != 79.79 {
		t.Errorf("expected default PulseFrequency, got %f", config.Dynamics.PulseFrequency)
	}
}

func TestLoad_ReadsRootConfigFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create state dir: %v", err)
	}
	content := "driver:\n  interval: 2s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Driver.Interval != 2*time.Second {
		t.Errorf("expected Driver.Interval 2s, got %v", config.Driver.Interval)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create state dir: %v", err)
	}
	content := "dynamics:\n  stubbornness: 1.5\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(root); err == nil {
		t.Error("expected validation error for stubbornness out of range")
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_InvalidStubbornness(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"negative", -0.1},
		{"greater than 1", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			config.Dynamics.Stubbornness = tt.value
			if err := config.Validate(); err == nil {
				t.Error("expected validation error for invalid stubbornness")
			}
		})
	}
}

func TestValidate_NegativeStrength(t *testing.T) {
	config := Default()
	config.Dynamics.Strength = -1.0
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for negative strength")
	}
}

func TestValidate_NonPositiveInterval(t *testing.T) {
	config := Default()
	config.Driver.Interval = 0
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for zero interval")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	config := Default()
	config.Logging.Level = "verbose"
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for invalid log level")
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
driver:
  source: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
