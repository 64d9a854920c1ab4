package config

import (
	"encoding/json"
	"fmt"

	"github.com/nickalie/dirkit/internal/core/target"
)

// Builder constructs a configuration in code. A Go configuration file
// builds one and calls Print so the loader can read it back.
type Builder struct {
	config *Config
}

// NewBuilder creates and returns a new Builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
	}
}

// WithProvider selects the provider by name.
func (b *Builder) WithProvider(name string) *Builder {
	b.config.Provider = name
	return b
}

// WithVerbose toggles verbose logging.
func (b *Builder) WithVerbose(verbose bool) *Builder {
	b.config.Verbose = verbose
	return b
}

// WithRemote sets the remote host and switches the provider to sftp.
func (b *Builder) WithRemote(tgt *target.Target) *Builder {
	b.config.Remote = tgt
	b.config.Provider = ProviderSFTP
	return b
}

// GetConfig returns the built configuration.
func (b *Builder) GetConfig() *Config {
	return b.config
}

// Print marshals the configuration to JSON and prints it to stdout.
// Returns an error if JSON marshaling fails.
func (b *Builder) Print() error {
	d, err := json.Marshal(b.config)
	if err != nil {
		return err
	}

	fmt.Println(string(d))
	return nil
}
