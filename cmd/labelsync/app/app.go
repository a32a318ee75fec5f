// Package app provides the application context and dependency management
// for the labelsync CLI. It centralizes configuration, logging, and the
// construction of label stores and label document loaders.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/cmd/application"
	"github.com/agentstation/labelsync/internal/cmd/output"
	"github.com/agentstation/labelsync/internal/config"
	"github.com/agentstation/labelsync/internal/github"
	"github.com/agentstation/labelsync/internal/transport"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
	"github.com/agentstation/labelsync/pkg/store/memory"
)

// App represents the labelsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Label document loader (lazy-initialized, shared across repositories
	// so remote documents are downloaded once)
	mu     sync.Mutex
	loader *config.Loader
}

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
		return nil, errors.WrapResource("load", "config", "", err)
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

// OutputFormat returns the configured report format.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// UseColor reports whether reports written to stdout may be colored.
func (a *App) UseColor() bool {
	return output.UseColor(os.Stdout, a.config.NoColor)
}

// Settings returns the sync settings from configuration and environment.
func (a *App) Settings() application.Settings {
	return a.config.Settings()
}

// Store returns the label store described by settings.
func (a *App) Store(settings application.Settings) (store.Store, error) {
	switch settings.Store {
	case application.StoreMemory:
		a.logger.Warn().Msg("Using the in-memory store: changes are not sent to GitHub")
		return memory.New(), nil
	case application.StoreGitHub, "":
	default:
		return nil, &errors.ValidationError{
			Field:   "store",
			Value:   settings.Store,
			Message: "must be one of: github, memory",
		}
	}

	if settings.AccessToken == "" {
		a.logger.Warn().Msg("No access token configured; set GITHUB_ACCESS_TOKEN or pass --access-token")
	}

	client := transport.New(&transport.BearerAuth{}, settings.AccessToken,
		transport.WithBaseURL(settings.Endpoint),
		transport.WithUserAgent("labelsync/"+a.version),
		transport.WithLogger(a.logger),
	)
	var opts []github.Option
	if settings.PageSize > 0 {
		opts = append(opts, github.WithPageSize(settings.PageSize))
	}
	return github.New(client, opts...), nil
}

// LoadLabels reads and merges the label documents at sources.
func (a *App) LoadLabels(ctx context.Context, sources []string) ([]labels.ConfiguredLabel, error) {
	a.mu.Lock()
	if a.loader == nil {
		a.loader = config.NewLoader(config.WithLoaderLogger(a.logger))
	}
	loader := a.loader
	a.mu.Unlock()

	return loader.Load(ctx, sources...)
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		a.logger = logger
		return nil
	}
}

// WithLoader sets the label document loader (useful for testing).
func WithLoader(loader *config.Loader) Option {
	return func(a *App) error {
		a.loader = loader
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
