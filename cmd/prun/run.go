// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run [--verbose] [--config <file>] [--runtime <mode>] [--profile <name>] [command [args...]] [--param value]...",
		Short: "Run a command of the active profile",
		Long: `Run a command of the active profile.

Without a command the commands of the active profile are listed. Anything
after the command name of the form --name value, --name=value or --flag is
passed to the command as a parameter; everything else is a positional
argument. Use -- to pass the rest of the line as positional arguments.

Add --help after a command name to show its help.`,
		Example: `  prun run
  prun run deploy prod --region eu-west-1
  prun run --profile git push --remote origin
  prun run deploy --help`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ra, err := parseRunArgs(args)
			if err != nil {
				return err
			}

			s, err := app.newSession(cmd.Context(), SessionOptions{
				ConfigPath: ra.ConfigPath,
				Runtime:    ra.Runtime,
				Profile:    ra.Profile,
				Verbose:    ra.Verbose,
			})
			if err != nil {
				return fail(cmd, app, err, ra.Verbose)
			}

			if err := s.executor.Execute(cmd.Context(), ra.Args, ra.Params); err != nil {
				s.logger.Debug("execution failed", "err", err)
				return fail(cmd, app, err, s.verbose)
			}
			return nil
		},
	}
}

// fail renders err and returns the ExitError carrying its exit status.
func fail(cmd *cobra.Command, app *App, err error, verbose bool) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	renderError(app.stderr, err, verbose)
	return &ExitError{Code: exitCode(err), Err: err}
}
