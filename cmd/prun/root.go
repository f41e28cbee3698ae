// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the prun command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "prun",
		Short: "A profile-based command runner",
		Long: TitleStyle.Render("prun") + SubtitleStyle.Render(" - A profile-based command runner") + `

prun runs named commands grouped into profiles. Commands are lists of shell
actions defined in prun.cue, prun.toml, prun.yaml or prun.json files; an
action of the form profile:<name> switches to another profile and runs the
same command line there.

` + SubtitleStyle.Render("Examples:") + `
  prun run                  List the commands of the active profile
  prun run build            Run the 'build' command
  prun run deploy --help    Show the help of 'deploy'
  prun profiles             List the defined profiles
  prun config show          Show the current configuration`,
		SilenceUsage: true,
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.AddCommand(newRunCommand(app))
	root.AddCommand(newEncryptCommand(app))
	root.AddCommand(newProfilesCommand(app))
	root.AddCommand(newConfigCommand(app))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the prun version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(app.stdout, getVersionString())
		},
	})
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Main runs prun with the process arguments and returns the exit status.
func Main() int {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// Execute runs prun and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}
