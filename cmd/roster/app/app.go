// Package app provides the application context and dependency management
// for the roster CLI. It centralizes configuration, logging, metrics and the
// lazily created roster instance that commands share.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/metrics"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconcile"
)

// App represents the roster application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config  *Config
	logger  *zerolog.Logger
	metrics *metrics.Run

	// Roster instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	roster roster.Roster
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config files and can
// be replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.New(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
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

// Metrics returns the run metrics shared by every roster the app creates.
func (a *App) Metrics() *metrics.Run {
	return a.metrics
}

// MetricsFile returns the configured Prometheus textfile path.
func (a *App) MetricsFile() string {
	return a.config.MetricsFile
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Roster returns the roster instance. Without options the shared instance
// is returned, created on first use. With options a fresh instance is built
// from the configured defaults followed by opts.
func (a *App) Roster(opts ...roster.Option) (roster.Roster, error) {
	if len(opts) > 0 {
		r, err := roster.New(append(a.buildRosterOptions(), opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "roster", "with custom options", err)
		}
		return r, nil
	}

	a.mu.RLock()
	if a.roster != nil {
		r := a.roster
		a.mu.RUnlock()
		return r, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.roster != nil {
		return a.roster, nil
	}

	r, err := roster.New(a.buildRosterOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "roster", "", err)
	}

	a.roster = r
	return r, nil
}

// Shutdown releases application resources. Metrics gathered so far are
// flushed to the configured textfile so failed runs are still visible.
func (a *App) Shutdown(_ context.Context) error {
	if a.config.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
		return errors.WrapIO("write", a.config.MetricsFile, err)
	}
	return nil
}

// buildRosterOptions constructs roster options from the app configuration.
func (a *App) buildRosterOptions() []roster.Option {
	opts := []roster.Option{
		roster.WithDataDir(a.config.DataDir),
		roster.WithOutputFile(a.config.OutputFile),
		roster.WithAdminRoles(a.config.AdminRoles...),
		roster.WithMetrics(a.metrics),
	}

	if a.config.Strategy != "" {
		if s, ok := reconcile.StrategyByName(a.config.Strategy); ok {
			opts = append(opts, roster.WithStrategy(s))
		}
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
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

// WithRoster sets a custom roster instance (useful for testing).
func WithRoster(r roster.Roster) Option {
	return func(a *App) error {
		a.roster = r
		return nil
	}
}
