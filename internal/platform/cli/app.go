// Package cli wires configuration, environment loading and provider selection
// into a ready-to-use directory service for the dirkit command-line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nickalie/dirkit/internal/config"
	"github.com/nickalie/dirkit/internal/core/dirops"
	"github.com/nickalie/dirkit/internal/infrastructure/env"
	"github.com/nickalie/dirkit/internal/logging"
)

// DefaultConfigPath is the configuration file read when none is given explicitly.
const DefaultConfigPath = "dirkit.yaml"

// EnvLoader defines the interface for loading environment variables
type EnvLoader interface {
	Load(path, vaultPassword string) error
}

// ConfigLoader defines the interface for loading configuration
type ConfigLoader interface {
	Load(configPath string) (*config.Config, error)
}

// ProviderFactory builds the provider selected by a configuration. The
// returned closer, if not nil, must be closed once the provider is no longer used.
type ProviderFactory interface {
	NewProvider(cfg *config.Config) (dirops.FileSystemProvider, io.Closer, error)
}

// Options carries the command-line settings that shape a session.
type Options struct {
	ConfigPath string
	// ConfigRequired makes a missing configuration file an error.
	ConfigRequired bool
	EnvPaths       []string
	VaultPassword  string
	// Provider overrides the provider named in the configuration.
	Provider string
	Verbose  bool
}

// App loads the environment and configuration and opens sessions.
type App struct {
	envLoader       EnvLoader
	configLoader    ConfigLoader
	providerFactory ProviderFactory
	logOutput       io.Writer
}

// AppOption is a function that modifies an App
type AppOption func(*App)

// WithLogOutput redirects session logs, stderr by default.
func WithLogOutput(w io.Writer) AppOption {
	return func(app *App) {
		app.logOutput = w
	}
}

// NewApp creates and returns a new App instance with default implementations
// for all dependencies.
func NewApp(opts ...AppOption) *App {
	return NewAppWithDeps(env.NewLoader(), config.NewLoader(), NewProviderFactory(), opts...)
}

// NewAppWithDeps creates and returns a new App instance with custom dependencies
func NewAppWithDeps(envLoader EnvLoader, configLoader ConfigLoader, providerFactory ProviderFactory, opts ...AppOption) *App {
	app := &App{
		envLoader:       envLoader,
		configLoader:    configLoader,
		providerFactory: providerFactory,
		logOutput:       os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Open loads environment files and configuration, then connects the selected
// provider. The caller must Close the returned session.
func (a *App) Open(opts Options) (*Session, error) {
	if err := env.LoadAll(a.envLoader, opts.EnvPaths, opts.VaultPassword); err != nil {
		return nil, fmt.Errorf("environment loading failed: %w", err)
	}

	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("config loading failed: %w", err)
	}

	if opts.Provider != "" {
		cfg.Provider = opts.Provider
	}

	logger := logging.NewConsoleLogger(opts.Verbose || cfg.Verbose, logging.WithOutput(a.logOutput))

	provider, closer, err := a.providerFactory.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("provider setup failed: %w", err)
	}
	logger.Verbose("Using %s provider", cfg.GetProvider())

	return &Session{
		service: dirops.NewService(provider, dirops.WithLogger(logger)),
		closer:  closer,
		logger:  logger,
		local:   cfg.GetProvider() != config.ProviderSFTP,
	}, nil
}

// loadConfig reads the configuration file. A missing file falls back to
// defaults unless it was requested explicitly.
func (a *App) loadConfig(opts Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	if !opts.ConfigRequired {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}

	return a.configLoader.Load(path)
}

// GetConfigLoader returns the config loader for testing
func (a *App) GetConfigLoader() ConfigLoader {
	return a.configLoader
}

// GetEnvLoader returns the environment loader for testing
func (a *App) GetEnvLoader() EnvLoader {
	return a.envLoader
}
