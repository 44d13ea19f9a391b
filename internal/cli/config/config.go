// Package config loads project configuration from strata.yml.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the project configuration for a Strata workspace.
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Build   BuildConfig   `mapstructure:"build"`
	Inspect InspectConfig `mapstructure:"inspect"`
}

// ProjectConfig identifies the project.
type ProjectConfig struct {
	Name string `mapstructure:"name"`
}

// BuildConfig controls source discovery and output placement.
type BuildConfig struct {
	SourceDir string `mapstructure:"source_dir"`
	OutputDir string `mapstructure:"output_dir"`
}

// InspectConfig controls the metadata inspection server.
type InspectConfig struct {
	Port int `mapstructure:"port"`
}

// Load reads strata.yml from the current directory, falling back to defaults
// when no config file exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("strata")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("project.name", "strata-project")
	v.SetDefault("build.source_dir", "src")
	v.SetDefault("build.output_dir", "build")
	v.SetDefault("inspect.port", 4000)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading strata.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing strata.yml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Build.SourceDir == "" {
		return fmt.Errorf("build.source_dir must not be empty")
	}
	if c.Build.OutputDir == "" {
		return fmt.Errorf("build.output_dir must not be empty")
	}
	if c.Inspect.Port < 1 || c.Inspect.Port > 65535 {
		return fmt.Errorf("inspect.port must be between 1 and 65535, got %d", c.Inspect.Port)
	}
	return nil
}

// EnsureOutputDir creates the output directory if it does not exist.
func (c *Config) EnsureOutputDir() error {
	return os.MkdirAll(c.Build.OutputDir, 0o755)
}
