// Package application provides test doubles for the command application interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/metrics"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    RosterFunc: func(opts ...roster.Option) (roster.Roster, error) {
//	        return roster.New(append([]roster.Option{roster.WithFS(tree, "data")}, opts...)...)
//	    },
//	}
//	cmd := importcmd.NewCommand(mock)
type Mock struct {
	RosterFunc       func(opts ...roster.Option) (roster.Roster, error)
	MetricsFunc      func() *metrics.Run
	MetricsFileFunc  func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Roster returns a roster using the mock function or a default instance.
func (m *Mock) Roster(opts ...roster.Option) (roster.Roster, error) {
	if m.RosterFunc != nil {
		return m.RosterFunc(opts...)
	}
	return roster.New(opts...)
}

// Metrics returns run metrics using the mock function or nil.
func (m *Mock) Metrics() *metrics.Run {
	if m.MetricsFunc != nil {
		return m.MetricsFunc()
	}
	return nil
}

// MetricsFile returns the metrics path using the mock function or "".
func (m *Mock) MetricsFile() string {
	if m.MetricsFileFunc != nil {
		return m.MetricsFileFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ application.Application = (*Mock)(nil)
