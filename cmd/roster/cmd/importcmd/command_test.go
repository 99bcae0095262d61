package importcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster"
	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/metrics"
)

var tree = fstest.MapFS{
	"data/a.csv": {Data: []byte("firstname;telephone_number;email;password;role;created_at;children\n" +
		"Anna;600700800;anna@example.com;pw;admin;2022-01-01 00:00:00;\n" +
		"Anna;+48600700800;anna@example.com;pw2;admin;2023-01-01 00:00:00;\n" +
		"Eve;12345;eve@example.com;pw;user;2023-01-01 00:00:00;\n")},
}

func TestExecute(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.yaml")
	m := metrics.New()
	app := &application.Mock{
		RosterFunc: func(opts ...roster.Option) (roster.Roster, error) {
			return roster.New(append(opts, roster.WithFS(tree, "data"), roster.WithMetrics(m))...)
		},
		MetricsFunc: func() *metrics.Run { return m },
	}

	metricsFile := filepath.Join(t.TempDir(), "roster.prom")
	flags := &globals.DataFlags{OutputFile: out, MetricsFile: metricsFile}

	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), app, flags, &buf))

	assert.Equal(t, "Imported 2 records from 1 files (1 rejected, 1 duplicates)\n"+
		"Wrote 1 records to "+out+"\n", buf.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "password: pw2")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `roster_records_rejected_total{format="csv",reason="invalid_phone"} 1`)
}

func TestExecuteDryRunTable(t *testing.T) {
	app := &application.Mock{
		RosterFunc: func(opts ...roster.Option) (roster.Roster, error) {
			return roster.New(append(opts, roster.WithFS(tree, "data"))...)
		},
		OutputFormatFunc: func() string { return "table" },
	}

	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), app, &globals.DataFlags{DryRun: true}, &buf))

	assert.Contains(t, buf.String(), "data/a.csv")
	assert.NoFileExists(t, "Result.json")
}
