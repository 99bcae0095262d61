package roster

import (
	"sync"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/reconcile"
)

// Hook function types for pipeline events
type (
	// FileImportedHook is called after a source file has been parsed
	FileImportedHook func(stat importer.FileStat)

	// RecordReplacedHook is called when deduplication displaces a kept record
	RecordReplacedHook func(replacement reconcile.Replacement)

	// DatasetUpdatedHook is called after the dataset has been replaced
	DatasetUpdatedHook func(old, new []accounts.Record)
)

// hooks manages event callbacks for pipeline runs
type hooks struct {
	mu               sync.RWMutex
	onFileImported   []FileImportedHook
	onRecordReplaced []RecordReplacedHook
	onDatasetUpdated []DatasetUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileImported registers a callback for each parsed source file
func (h *hooks) OnFileImported(fn FileImportedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFileImported = append(h.onFileImported, fn)
}

// OnRecordReplaced registers a callback for displaced records
func (h *hooks) OnRecordReplaced(fn RecordReplacedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordReplaced = append(h.onRecordReplaced, fn)
}

// OnDatasetUpdated registers a callback for dataset replacement
func (h *hooks) OnDatasetUpdated(fn DatasetUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDatasetUpdated = append(h.onDatasetUpdated, fn)
}

func (h *hooks) triggerFileImported(stat importer.FileStat) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFileImported {
		hook(stat)
	}
}

func (h *hooks) triggerRecordReplaced(replacement reconcile.Replacement) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRecordReplaced {
		hook(replacement)
	}
}

// triggerDatasetUpdated passes copies so hooks cannot alias the live dataset
func (h *hooks) triggerDatasetUpdated(old, new []accounts.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onDatasetUpdated {
		hook(accounts.CloneAll(old), accounts.CloneAll(new))
	}
}

// OnFileImported registers a callback for each parsed source file
func (r *roster) OnFileImported(fn FileImportedHook) {
	r.hooks.OnFileImported(fn)
}

// OnRecordReplaced registers a callback for displaced records
func (r *roster) OnRecordReplaced(fn RecordReplacedHook) {
	r.hooks.OnRecordReplaced(fn)
}

// OnDatasetUpdated registers a callback for dataset replacement
func (r *roster) OnDatasetUpdated(fn DatasetUpdatedHook) {
	r.hooks.OnDatasetUpdated(fn)
}
