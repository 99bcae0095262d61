package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// Execute runs the roster CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Command failed")
	}
	return err
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "roster",
		Short:   "Merge user records and query the result",
		Version: a.version,
		Long: `Roster walks a directory tree of CSV, XML and JSON user exports,
drops records with an invalid email or phone number, merges duplicates
that share a phone number (the most recently created record wins) and
writes the merged dataset to a single JSON or YAML file.

Authenticated users can then run a fixed set of queries over the dataset.
Some queries require an elevated role (admin by default).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.roster.yaml or ./.roster.yaml)")
	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("roster {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config names a file, applies the global flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	configFile := mustGetString(cmd, "config")
	logLevel := mustGetString(cmd, "log-level")
	flags := globals.Parse(cmd)

	if configFile != "" {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return errors.WrapResource("load", "config", configFile, err)
		}
		*a.config = *config
	}

	if _, err := output.ParseFormat(flags.Output); err != nil {
		return errors.WrapValidation("format", err)
	}

	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
