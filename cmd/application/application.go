// Package application provides the application interface for roster commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            r, err := app.Roster()
//	            if err != nil {
//	                return err
//	            }
//	            result, err := r.Run(cmd.Context())
//	            // ... render result
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    RosterFunc: func(opts ...roster.Option) (roster.Roster, error) {
//	        return roster.New(append(opts, roster.WithFS(fixtures, "data"))...)
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/internal/metrics"
)

// Application provides the application interface that commands need.
// The App struct from cmd/roster/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Roster returns the roster instance with optional configuration.
	// When called without options, returns the default cached instance (lazy-initialized, thread-safe).
	// When called with options, creates a new instance from the configured
	// defaults plus opts (no caching).
	Roster(opts ...roster.Option) (roster.Roster, error)

	// Metrics returns the run metrics shared by every roster the app creates.
	Metrics() *metrics.Run

	// MetricsFile returns the configured Prometheus textfile path, or "".
	MetricsFile() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
