package roster

import (
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/persistence"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*roster)(nil)

// Persistence handles dataset persistence operations.
type Persistence interface {
	// Save writes the current dataset to path
	Save(path string, opts ...persistence.Option) error
}

// Save persists the current dataset to path. An empty path means the
// configured output file.
func (r *roster) Save(path string, opts ...persistence.Option) error {
	if path == "" {
		path = r.config.outputFile
	}
	if path == "" {
		return &errors.ConfigError{
			Component: "roster",
			Message:   "no output file configured",
		}
	}
	return persistence.Save(path, r.Dataset(), opts...)
}
