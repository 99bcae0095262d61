// Package importer walks a directory tree and feeds every recognized file
// through its format parser into one shared, ordered accumulator.
//
// Files are visited in fs.WalkDir order: lexical within each directory,
// depth-first. That order defines which record is "first seen" when the
// reconciler later breaks ties.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/sources"
)

// FileStat summarizes one imported file.
type FileStat struct {
	Path     string                 `json:"path" yaml:"path"`
	Format   sources.Format         `json:"format" yaml:"format"`
	Admitted int                    `json:"admitted" yaml:"admitted"`
	Rejected map[sources.Reason]int `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// RejectedTotal returns the number of rows dropped from the file.
func (f FileStat) RejectedTotal() int {
	total := 0
	for _, n := range f.Rejected {
		total += n
	}
	return total
}

// Result is the outcome of an import run.
type Result struct {
	// Records holds every admitted record in walk order, duplicates included.
	Records []accounts.Record
	// Files lists the parsed files in walk order.
	Files []FileStat
}

// Admitted returns the total number of admitted records.
func (r *Result) Admitted() int {
	return len(r.Records)
}

// Rejected returns the total number of dropped rows across all files.
func (r *Result) Rejected() int {
	total := 0
	for _, f := range r.Files {
		total += f.RejectedTotal()
	}
	return total
}

// Importer walks trees of source files.
type Importer struct {
	registry *sources.Registry
	options  *options
}

// New creates an importer dispatching through registry.
// A nil registry means sources.Default().
func New(registry *sources.Registry, opts ...Option) *Importer {
	if registry == nil {
		registry = sources.Default()
	}
	return &Importer{
		registry: registry,
		options:  newOptions().apply(opts...),
	}
}

// ImportDir imports the tree rooted at the OS directory dir.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*Result, error) {
	return i.Import(ctx, os.DirFS(dir), ".")
}

// Import walks root inside fsys and parses every file with a registered
// extension. It stops at the first structural failure; no partial result
// is returned in that case. A missing root yields an empty result.
func (i *Importer) Import(ctx context.Context, fsys fs.FS, root string) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := &Result{Records: []accounts.Record{}}

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				logger.Warn().Str("root", root).Msg("Data directory does not exist, nothing to import")
				return fs.SkipAll
			}
			return errors.WrapIO("walk", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		parser, ok := i.registry.Lookup(path)
		if !ok {
			logger.Debug().Str("file", path).Msg("Skipping unsupported file")
			return nil
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		batch, err := sources.ParseFile(ctx, fsys, path, parser, &result.Records)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}

		stat := FileStat{
			Path:     path,
			Format:   parser.Format(),
			Admitted: len(batch.Records),
			Rejected: batch.Rejected,
		}
		result.Files = append(result.Files, stat)

		logger.Info().
			Str("file", path).
			Str("format", stat.Format.String()).
			Int("admitted", stat.Admitted).
			Int("rejected", stat.RejectedTotal()).
			Msg("Imported file")

		if i.options.onFile != nil {
			i.options.onFile(stat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
