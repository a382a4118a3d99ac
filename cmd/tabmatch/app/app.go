// Package app provides the application context and dependency management
// for the tabmatch CLI. It centralizes configuration, logging and the
// lifecycle of the shared tabmatch client.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/tabmatch"
	"github.com/agentstation/tabmatch/internal/cmd/application"
	"github.com/agentstation/tabmatch/internal/config"
)

// App represents the tabmatch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// settings are loaded once flags are parsed
	mu       sync.RWMutex
	settings *config.Settings
	client   tabmatch.Client
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, possibly empty for auto-detection.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns the matching defaults, or the built-in ones before
// configuration was loaded.
func (a *App) Settings() *config.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.settings == nil {
		return config.Defaults()
	}
	return a.settings
}

// Client returns the tabmatch client, creating it lazily from Settings.
func (a *App) Client() (tabmatch.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	settings := a.Settings()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := tabmatch.New(
		tabmatch.WithThreshold(settings.Threshold),
		tabmatch.WithDuplicatesThreshold(settings.DuplicatesThreshold),
		tabmatch.WithMode(settings.Mode),
		tabmatch.WithPreviewRows(settings.PreviewRows),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	a.client = c
	return c, nil
}

// Shutdown stops any task still running on the client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c != nil {
		c.Cancel()
	}
	return nil
}

// loadSettings validates the matching settings from viper.
func (a *App) loadSettings() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c tabmatch.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
