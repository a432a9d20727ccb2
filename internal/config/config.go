// Package config handles configuration loading from YAML files and
// environment variables. Precedence: CLI flags > environment variables >
// config file > defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is the sampling interval applied when none is configured
// or the configured value is below one second.
const DefaultInterval = 5 * time.Second

// DefaultTopN is the length of the fastest-growing metrics ranking.
const DefaultTopN = 10

// DefaultCSVPath is where the series is exported at shutdown.
const DefaultCSVPath = "slabsight_data.csv"

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "5s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all sampler configuration.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CollectionConfig holds sampling loop settings.
type CollectionConfig struct {
	Interval Duration `yaml:"interval"`
	TopN     int      `yaml:"top_metrics"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Interval: Duration{DefaultInterval},
			TopN:     DefaultTopN,
		},
		Output: OutputConfig{
			CSVPath: DefaultCSVPath,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CLIOverrides holds values from command-line flags. Zero values are
// treated as "not set" and skipped.
type CLIOverrides struct {
	Interval time.Duration
	CSVPath  string
	Debug    bool
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with
// defaults. Environment variables override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults. If
// path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults. The result is normalized.
func LoadLayered(cli CLIOverrides, path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cli.Interval != 0 {
		cfg.Collection.Interval = Duration{cli.Interval}
	}
	if cli.CSVPath != "" {
		cfg.Output.CSVPath = cli.CSVPath
	}
	if cli.Debug {
		cfg.Logging.Level = "debug"
	}

	cfg.Normalize()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("SLABSIGHT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if out := os.Getenv("SLABSIGHT_OUTPUT"); out != "" {
		cfg.Output.CSVPath = out
	}
	if interval := os.Getenv("SLABSIGHT_INTERVAL"); interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil {
			cfg.Collection.Interval = Duration{parsed}
		}
	}
}

// Normalize replaces invalid values with their defaults. A sampling
// interval below one second is silently replaced rather than rejected, and
// a non-positive ranking size falls back to the default.
func (c *Config) Normalize() {
	if c.Collection.Interval.Duration < time.Second {
		c.Collection.Interval = Duration{DefaultInterval}
	}
	if c.Collection.TopN <= 0 {
		c.Collection.TopN = DefaultTopN
	}
	if c.Output.CSVPath == "" {
		c.Output.CSVPath = DefaultCSVPath
	}
}
