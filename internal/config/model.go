// Package config loads and validates dirkit configuration files.
package config

import (
	"github.com/nickalie/dirkit/internal/core/target"
)

// Provider names accepted in configuration and on the command line.
const (
	ProviderModern = "modern"
	ProviderNaive  = "naive"
	ProviderSFTP   = "sftp"
)

// Config selects the file-system provider and its connection settings.
type Config struct {
	Provider string         `yaml:"provider,omitempty" json:"provider,omitempty" toml:"provider,omitempty" validate:"omitempty,oneof=modern naive sftp"` //nolint:lll // long struct tag needed for complete configuration
	Verbose  bool           `yaml:"verbose,omitempty" json:"verbose,omitempty" toml:"verbose,omitempty"`
	Remote   *target.Target `yaml:"remote,omitempty" json:"remote,omitempty" toml:"remote,omitempty" validate:"required_if=Provider sftp"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Provider: ProviderModern}
}

// GetProvider returns the configured provider, defaulting to modern.
func (c *Config) GetProvider() string {
	if c.Provider == "" {
		return ProviderModern
	}
	return c.Provider
}
