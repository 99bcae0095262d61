package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/cmd/roster/cmd/importcmd"
	"github.com/agentstation/roster/cmd/roster/cmd/query"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/session"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(importcmd.NewCommand(a))
	rootCmd.AddCommand(query.NewCommand(a))
	rootCmd.AddCommand(a.CreateQueriesCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateQueriesCommand creates the command listing the available queries.
func (a *App) CreateQueriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "queries",
		GroupID: "core",
		Short:   "List the queries accepted by the query command",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.DetectFormat(a.config.Format)
			if format == output.FormatText {
				format = output.FormatTable
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), session.Queries())
		},
	}
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("roster %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
