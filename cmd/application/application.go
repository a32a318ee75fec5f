// Package application provides the application interface for labelsync commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            settings := app.Settings()
//	            st, err := app.Store(settings)
//	            if err != nil {
//	                return err
//	            }
//	            // ... sync labels through st
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    StoreFunc: func(application.Settings) (store.Store, error) {
//	        return memory.New(), nil
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
)

// Settings are the resolved run settings: configuration file, environment
// and command flags merged in order of precedence.
type Settings struct {
	AccessToken      string
	Endpoint         string
	Labels           []string
	AllowAddedLabels bool
	DryRun           bool
	Concurrency      int
	Timeout          time.Duration
	PageSize         int
	Store            string
}

// Store backends selectable with --store.
const (
	StoreGitHub = "github"
	StoreMemory = "memory"
)

// Application provides the application interface that commands need.
// The App struct from cmd/labelsync/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Settings returns the run settings from configuration and environment.
	// Commands overlay the flags they define on top.
	Settings() Settings

	// Store returns the label store described by settings.
	Store(settings Settings) (store.Store, error)

	// LoadLabels reads and merges the label documents at sources.
	LoadLabels(ctx context.Context, sources []string) ([]labels.ConfiguredLabel, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format.
	OutputFormat() string

	// UseColor reports whether reports may be colored.
	UseColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
