// Package roster merges user records from CSV, XML and JSON files into one
// deduplicated dataset and serves authenticated queries over it.
//
// Example usage:
//
//	r, err := roster.New(roster.WithDataDir("data"), roster.WithOutputFile("Result.json"))
//	if err != nil {
//	    return err
//	}
//	r.OnRecordReplaced(func(rep reconcile.Replacement) {
//	    log.Printf("%s superseded by %s", rep.Old.Source, rep.New.Source)
//	})
//	result, err := r.Run(ctx)
package roster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/persistence"
	"github.com/agentstation/roster/pkg/reconcile"
	"github.com/agentstation/roster/pkg/session"
)

// Roster manages the merged dataset and the event hooks around building it.
type Roster interface {
	// Run imports the data tree, deduplicates, persists and replaces the dataset
	Run(ctx context.Context) (*Result, error)

	// Load replaces the dataset with a previously persisted one
	Load(ctx context.Context, path string) error

	// Dataset returns a copy of the current dataset
	Dataset() []accounts.Record

	// Authenticate opens a query session against the current dataset
	Authenticate(login, password string) (*session.Session, error)

	// OnFileImported registers a callback for each parsed source file
	OnFileImported(FileImportedHook)

	// OnRecordReplaced registers a callback for records displaced during deduplication
	OnRecordReplaced(RecordReplacedHook)

	// OnDatasetUpdated registers a callback for dataset replacement
	OnDatasetUpdated(DatasetUpdatedHook)

	Persistence
}

// Result describes one pipeline run.
type Result struct {
	RunID      string
	Import     *importer.Result
	Reconcile  *reconcile.Result
	OutputFile string // empty on dry runs
	Started    time.Time
	Finished   time.Time
}

// Records returns the merged dataset produced by the run.
func (r *Result) Records() []accounts.Record {
	return r.Reconcile.Records
}

// roster is the internal implementation of the Roster interface
type roster struct {
	mu      sync.RWMutex
	dataset []accounts.Record
	config  *config

	// Event hooks
	hooks *hooks
}

// New creates a new Roster instance with the given options
func New(opts ...Option) (Roster, error) {
	r := &roster{
		config:  defaultConfig(),
		dataset: []accounts.Record{},
		hooks:   newHooks(),
	}

	if err := r.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	if r.config.initialDataset != nil {
		r.dataset = accounts.CloneAll(r.config.initialDataset)
	}

	return r, nil
}

// Run executes the full pipeline: walk and parse every source file,
// deduplicate, persist, then swap in the new dataset. Nothing is written and
// the dataset is unchanged when any stage fails.
func (r *roster) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx)

	imp := importer.New(r.config.registry, importer.WithFileHook(func(stat importer.FileStat) {
		if r.config.metrics != nil {
			r.config.metrics.ObserveFile(stat)
		}
		r.hooks.triggerFileImported(stat)
	}))

	var err error
	source := r.config.dataDir
	if r.config.fsys != nil {
		source = r.config.root
		result.Import, err = imp.Import(ctx, r.config.fsys, r.config.root)
	} else {
		result.Import, err = imp.ImportDir(ctx, r.config.dataDir)
	}
	if err != nil {
		return nil, errors.WrapResource("import", "dataset", source, err)
	}

	result.Reconcile = reconcile.Deduplicate(result.Import.Records,
		reconcile.WithStrategy(r.config.strategy),
		reconcile.WithReplaceHook(r.hooks.triggerRecordReplaced),
	)
	if r.config.metrics != nil {
		r.config.metrics.ObserveReconcile(result.Reconcile)
	}

	logger.Info().
		Int("files", len(result.Import.Files)).
		Int("admitted", result.Import.Admitted()).
		Int("rejected", result.Import.Rejected()).
		Int("duplicates", result.Reconcile.Duplicates).
		Int("records", len(result.Reconcile.Records)).
		Str("strategy", result.Reconcile.Strategy).
		Msg("Reconciled dataset")

	if !r.config.dryRun {
		if err := persistence.Save(r.config.outputFile, result.Reconcile.Records); err != nil {
			return nil, err
		}
		result.OutputFile = r.config.outputFile
		logger.Info().Str("file", r.config.outputFile).Msg("Saved dataset")
	}

	r.setDataset(result.Reconcile.Records)

	result.Finished = time.Now()
	if r.config.metrics != nil {
		r.config.metrics.ObserveSuccess(result.Started, result.Finished)
	}
	return result, nil
}

// Load replaces the dataset with the records persisted at path.
func (r *roster) Load(ctx context.Context, path string) error {
	records, err := persistence.Load(path)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("Loaded dataset")
	r.setDataset(records)
	return nil
}

// Dataset returns a copy of the current dataset
func (r *roster) Dataset() []accounts.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return accounts.CloneAll(r.dataset)
}

// Authenticate opens a query session against a snapshot of the dataset.
func (r *roster) Authenticate(login, password string) (*session.Session, error) {
	svc := session.New(r.Dataset(), session.WithAdminRoles(r.config.adminRoles...))
	return svc.Authenticate(login, password)
}

// setDataset updates the dataset and triggers the dataset hooks
func (r *roster) setDataset(records []accounts.Record) {
	r.mu.Lock()
	old := r.dataset
	r.dataset = records
	r.mu.Unlock()

	r.hooks.triggerDatasetUpdated(old, records)
}
