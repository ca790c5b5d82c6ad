// Package config provides configuration loading for the storefront client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the config file searched for in the working directory.
	ProjectConfigFile = "storefront.yaml"
	// UserConfigDir is the per-user config directory, relative to the home dir.
	UserConfigDir = ".config/storefront"
	// UserConfigFile is the per-user config file name.
	UserConfigFile = "config.yaml"
)

// Config is the complete client configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	State StateConfig `yaml:"state"`
}

// APIConfig configures the remote storefront API.
type APIConfig struct {
	// BaseURL is the root of the storefront API.
	BaseURL string `yaml:"base_url"`
}

// StateConfig configures durable client-side state (cart snapshot, credential).
type StateConfig struct {
	// Dir is where snapshots live. Defaults to ~/.config/storefront/state.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL: %q", c.API.BaseURL)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Load loads configuration with layered precedence: an explicit path wins,
// then a project file in the working directory, then the user config, then
// defaults. The state directory is resolved to an absolute default when the
// file leaves it empty.
func Load(explicitPath string) (*Config, error) {
	config, err := loadFirst(explicitPath)
	if err != nil {
		return nil, err
	}

	if config.State.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		config.State.Dir = filepath.Join(home, UserConfigDir, "state")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFirst(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFromFile(explicitPath)
	}

	if _, err := os.Stat(ProjectConfigFile); err == nil {
		return LoadFromFile(ProjectConfigFile)
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, UserConfigDir, UserConfigFile)
		if _, err := os.Stat(userPath); err == nil {
			return LoadFromFile(userPath)
		}
	}

	return DefaultConfig(), nil
}
