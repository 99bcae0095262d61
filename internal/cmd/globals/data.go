package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster"
)

// DataFlags holds the pipeline flags shared by commands that build a dataset.
type DataFlags struct {
	DataDir     string
	OutputFile  string
	MetricsFile string
	DryRun      bool
}

// AddDataFlags adds dataset flags to a command. Empty values fall back to
// the configured defaults.
func AddDataFlags(cmd *cobra.Command) *DataFlags {
	flags := &DataFlags{}

	cmd.Flags().StringVarP(&flags.DataDir, "data-dir", "d", "",
		"Directory tree to import (default from config, \"data\")")
	cmd.Flags().StringVar(&flags.OutputFile, "output-file", "",
		"File the merged dataset is written to (default from config, \"Result.json\")")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "",
		"Write Prometheus metrics for the run to this textfile")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Import and reconcile without writing the output file")

	return flags
}

// Options converts the set flags into roster options.
func (f *DataFlags) Options() []roster.Option {
	var opts []roster.Option
	if f.DataDir != "" {
		opts = append(opts, roster.WithDataDir(f.DataDir))
	}
	if f.OutputFile != "" {
		opts = append(opts, roster.WithOutputFile(f.OutputFile))
	}
	if f.DryRun {
		opts = append(opts, roster.WithDryRun(true))
	}
	return opts
}
