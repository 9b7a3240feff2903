// Package config provides configuration loading for rebeam.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete rebeam configuration
type Config struct {
	Derive    DeriveConfig    `yaml:"derive"`
	Overrides OverridesConfig `yaml:"overrides"`
	Server    ServerConfig    `yaml:"server"`
	Output    OutputConfig    `yaml:"output"`
	LogLevel  string          `yaml:"log_level"`
}

// DeriveConfig tunes rule derivation
type DeriveConfig struct {
	// NumeratorDriven counts compound groups from the numerator
	NumeratorDriven bool `yaml:"numerator_driven"`
	// Narrow clips sub-treatments to the overall beam treatment
	Narrow bool `yaml:"narrow"`
	// Custom applies overrides and boundary injection to every measure
	Custom bool `yaml:"custom"`
}

// OverridesConfig locates custom beam rule definitions
type OverridesConfig struct {
	// File is a YAML overrides file (empty = none)
	File string `yaml:"file"`
	// Watch reloads File when it changes
	Watch bool `yaml:"watch"`
	// Debounce collapses bursts of file changes
	Debounce time.Duration `yaml:"debounce"`
	// DynamoTable enables the DynamoDB source (empty = disabled)
	DynamoTable    string `yaml:"dynamo_table"`
	DynamoRegion   string `yaml:"dynamo_region"`
	DynamoEndpoint string `yaml:"dynamo_endpoint"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// OutputConfig configures where rule tables are written
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Overrides: OverridesConfig{
			Debounce:     200 * time.Millisecond,
			DynamoRegion: "localhost",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Output: OutputConfig{
			Dir: "./out",
		},
		LogLevel: "info",
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Overrides.Debounce < 0 {
		return fmt.Errorf("overrides.debounce must not be negative")
	}
	if c.Overrides.Watch && c.Overrides.File == "" {
		return fmt.Errorf("overrides.watch needs overrides.file")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// relative paths are relative to the config file
	if config.Overrides.File != "" && !filepath.IsAbs(config.Overrides.File) {
		config.Overrides.File = filepath.Join(filepath.Dir(path), config.Overrides.File)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values; booleans can only be switched on)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Derive
	if other.Derive.NumeratorDriven {
		c.Derive.NumeratorDriven = true
	}
	if other.Derive.Narrow {
		c.Derive.Narrow = true
	}
	if other.Derive.Custom {
		c.Derive.Custom = true
	}

	// Overrides
	if other.Overrides.File != "" {
		c.Overrides.File = other.Overrides.File
	}
	if other.Overrides.Watch {
		c.Overrides.Watch = true
	}
	if other.Overrides.Debounce != 0 {
		c.Overrides.Debounce = other.Overrides.Debounce
	}
	if other.Overrides.DynamoTable != "" {
		c.Overrides.DynamoTable = other.Overrides.DynamoTable
	}
	if other.Overrides.DynamoRegion != "" {
		c.Overrides.DynamoRegion = other.Overrides.DynamoRegion
	}
	if other.Overrides.DynamoEndpoint != "" {
		c.Overrides.DynamoEndpoint = other.Overrides.DynamoEndpoint
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if len(other.Server.AllowedOrigins) > 0 {
		c.Server.AllowedOrigins = other.Server.AllowedOrigins
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}

	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// ParseLevel maps a log level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
