package roster

import (
	"io/fs"

	"github.com/agentstation/roster/internal/metrics"
	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconcile"
	"github.com/agentstation/roster/pkg/sources"
)

// config holds the configuration of a Roster instance
type config struct {
	dataDir        string
	fsys           fs.FS
	root           string
	outputFile     string
	dryRun         bool
	adminRoles     []string
	strategy       reconcile.Strategy
	registry       *sources.Registry
	metrics        *metrics.Run
	initialDataset []accounts.Record
}

func defaultConfig() *config {
	return &config{
		dataDir:    constants.DefaultDataDir,
		outputFile: constants.DefaultOutputFile,
		adminRoles: []string{constants.DefaultAdminRole},
		strategy:   reconcile.MostRecent(),
		registry:   sources.Default(),
	}
}

// options applies the given options to the roster
func (r *roster) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(r.config); err != nil {
			return err
		}
	}
	return nil
}

// Option is a function that configures a Roster instance
type Option func(*config) error

// WithDataDir configures the directory tree to import from
func WithDataDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("data_dir", dir, "cannot be empty")
		}
		c.dataDir = dir
		return nil
	}
}

// WithFS imports from root inside fsys instead of the data directory
func WithFS(fsys fs.FS, root string) Option {
	return func(c *config) error {
		if fsys == nil {
			return errors.NewValidationError("fs", nil, "cannot be nil")
		}
		if root == "" {
			root = "."
		}
		c.fsys = fsys
		c.root = root
		return nil
	}
}

// WithOutputFile configures where Run persists the merged dataset
func WithOutputFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("output_file", path, "cannot be empty")
		}
		c.outputFile = path
		return nil
	}
}

// WithDryRun configures whether Run skips writing the output file
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithAdminRoles configures the roles granting elevated query access
func WithAdminRoles(roles ...string) Option {
	return func(c *config) error {
		if len(roles) == 0 {
			return errors.NewValidationError("admin_roles", roles, "at least one role is required")
		}
		c.adminRoles = roles
		return nil
	}
}

// WithStrategy configures how duplicate identities are resolved
func WithStrategy(s reconcile.Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewValidationError("strategy", nil, "cannot be nil")
		}
		c.strategy = s
		return nil
	}
}

// WithRegistry configures the parsers used for each file extension
func WithRegistry(registry *sources.Registry) Option {
	return func(c *config) error {
		if registry == nil {
			return errors.NewValidationError("registry", nil, "cannot be nil")
		}
		c.registry = registry
		return nil
	}
}

// WithMetrics configures a metrics collector observing each run
func WithMetrics(m *metrics.Run) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithInitialDataset configures the dataset available before the first run
func WithInitialDataset(records []accounts.Record) Option {
	return func(c *config) error {
		c.initialDataset = records
		return nil
	}
}
