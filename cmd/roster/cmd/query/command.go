// Package query provides the query command implementation.
package query

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/session"
)

// Flags holds the query command flags.
type Flags struct {
	Login    string
	Password string
	FromFile string
	Data     *globals.DataFlags
}

// NewCommand creates the query command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "query [query-name]",
		GroupID: "core",
		Short:   "Run a query as an authenticated user",
		Args:    cobra.ArbitraryArgs,
		Long: `Query builds the dataset (or loads it with --from-file), signs in with
--login (email or phone number) and --password, and runs one query:

` + queryHelp() + `
Queries marked * require an elevated role (admin by default).
Failed sign-ins, denied queries and unknown query names are reported
on standard output.`,
		Example: `  roster query --login admin@example.com --password secret print-all-accounts
  roster query --login 600700800 --password secret print-children
  roster query --login a@b.com --password x --from-file Result.json group-by-age -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, flags, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.Login, "login", "l", "", "Email address or phone number")
	cmd.Flags().StringVarP(&flags.Password, "password", "p", "", "Account password")
	cmd.Flags().StringVar(&flags.FromFile, "from-file", "", "Query a previously saved dataset instead of importing")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
	flags.Data = globals.AddDataFlags(cmd)

	return cmd
}

// Execute prepares the dataset, authenticates and runs the named query.
// Authentication and authorization outcomes are printed, not returned.
func Execute(ctx context.Context, app application.Application, flags *Flags, args []string, w io.Writer) error {
	r, err := app.Roster(flags.Data.Options()...)
	if err != nil {
		return err
	}

	if flags.FromFile != "" {
		err = r.Load(ctx, flags.FromFile)
	} else {
		_, err = r.Run(ctx)
	}
	if err != nil {
		return err
	}

	sess, err := r.Authenticate(flags.Login, flags.Password)
	if err != nil {
		if errors.IsInvalidLogin(err) {
			return writeLine(w, constants.MsgInvalidLogin)
		}
		return err
	}

	if len(args) == 0 {
		return writeLine(w, constants.MsgNoCommand)
	}

	// Only the first name is dispatched; any further arguments are ignored.
	name := args[0]
	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	err = sess.Run(ctx, name, w, formatter)
	switch {
	case err == nil:
		return nil
	case errors.IsAccessDenied(err):
		return writeLine(w, constants.MsgAccessDenied)
	case errors.IsUnknownQuery(err):
		return writeLine(w, fmt.Sprintf(constants.MsgInvalidCommand, name))
	default:
		return err
	}
}

func writeLine(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

// queryHelp lists the registered queries for the long help text.
func queryHelp() string {
	var b strings.Builder
	for _, q := range session.Queries() {
		marker := " "
		if q.Elevated {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %-30s %s\n", marker, q.Name, q.Description)
	}
	return b.String()
}
