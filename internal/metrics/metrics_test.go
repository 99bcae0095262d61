package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/internal/metrics"
	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/reconcile"
	"github.com/agentstation/roster/pkg/sources"
)

func TestObserveFile(t *testing.T) {
	m := metrics.New()
	m.ObserveFile(importer.FileStat{
		Path:     "a.csv",
		Format:   sources.FormatCSV,
		Admitted: 3,
		Rejected: map[sources.Reason]int{sources.ReasonInvalidEmail: 2, sources.ReasonInvalidPhone: 1},
	})
	m.ObserveFile(importer.FileStat{Path: "b.csv", Format: sources.FormatCSV, Admitted: 1})

	count, err := testutil.GatherAndCount(m.Registry(), "roster_import_files_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range metric.GetLabel() {
				key += "/" + l.GetValue()
			}
			if c := metric.GetCounter(); c != nil {
				values[key] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["roster_import_files_total/csv"])
	assert.Equal(t, 4.0, values["roster_import_records_admitted_total/csv"])
	assert.Equal(t, 2.0, values["roster_import_records_rejected_total/csv/invalid_email"])
	assert.Equal(t, 1.0, values["roster_import_records_rejected_total/csv/invalid_phone"])
}

func TestObserveReconcileAndWrite(t *testing.T) {
	m := metrics.New()
	phone := accounts.StringPtr("600700800")
	result := reconcile.Deduplicate([]accounts.Record{
		{Phone: phone, CreatedAt: accounts.MustParseTimestamp("2023-01-01 00:00:00")},
		{Phone: phone, CreatedAt: accounts.MustParseTimestamp("2023-02-01 00:00:00")},
	})
	m.ObserveReconcile(result)

	started := time.Unix(1700000000, 0)
	m.ObserveSuccess(started, started.Add(1500*time.Millisecond))

	path := filepath.Join(t.TempDir(), "roster.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "roster_reconcile_duplicates_total 1")
	assert.Contains(t, text, "roster_reconcile_replaced_total 1")
	assert.Contains(t, text, "roster_dataset_records 1")
	assert.Contains(t, text, "roster_run_duration_seconds 1.5")
	assert.Contains(t, text, "roster_last_success_timestamp_seconds 1.700000001e+09")
}
