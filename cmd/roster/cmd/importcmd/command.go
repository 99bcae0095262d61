// Package importcmd provides the import command implementation.
package importcmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/logging"
)

// NewCommand creates the import command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.DataFlags

	cmd := &cobra.Command{
		Use:     "import",
		GroupID: "core",
		Short:   "Import, merge and save the data tree",
		Args:    cobra.NoArgs,
		Long: `Import walks the data directory, parses every .csv, .xml and .json file
and merges the admitted records into one dataset.

The command will:
• Drop records whose email or phone number is invalid
• Normalize phone numbers to their last 9 digits
• Keep only the most recently created record per phone number
• Write the merged dataset to the output file (.json or .yaml)

Any malformed file aborts the run and nothing is written.`,
		Example: `  roster import                                  # Import ./data into Result.json
  roster import --data-dir exports               # Import another tree
  roster import --output-file merged.yaml        # Save as YAML
  roster import --dry-run -o table               # Show per-file counts only
  roster import --metrics-file roster.prom       # Export Prometheus metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	flags = globals.AddDataFlags(cmd)

	return cmd
}

// Execute runs the import pipeline and writes its summary to w.
func Execute(ctx context.Context, app application.Application, flags *globals.DataFlags, w io.Writer) error {
	r, err := app.Roster(flags.Options()...)
	if err != nil {
		return err
	}

	result, err := r.Run(ctx)
	writeMetrics(ctx, app, flags.MetricsFile)
	if err != nil {
		return err
	}

	summary := output.ImportSummary{
		RunID:      result.RunID,
		OutputFile: result.OutputFile,
		Admitted:   result.Import.Admitted(),
		Rejected:   result.Import.Rejected(),
		Duplicates: result.Reconcile.Duplicates,
		Records:    len(result.Records()),
		Files:      result.Import.Files,
	}

	return output.FormatImport(w, summary, &globals.Flags{Output: app.OutputFormat()})
}

// writeMetrics exports the run metrics when a textfile was requested.
// Failures are logged so they never mask the run outcome.
func writeMetrics(ctx context.Context, app application.Application, path string) {
	m := app.Metrics()
	if path == "" || m == nil {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("file", path).Msg("Failed to write metrics")
		return
	}
	logging.FromContext(ctx).Debug().Str("file", path).Msg("Wrote metrics")
}
