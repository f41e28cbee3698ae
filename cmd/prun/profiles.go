// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/prun/pkg/profile"
)

func newProfilesCommand(app *App) *cobra.Command {
	var opts SessionOptions
	c := &cobra.Command{
		Use:   "profiles",
		Short: "List the defined profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printProfiles(app.stdout, s.executor.Profiles(), s.executor.CurrentProfile())
			return nil
		},
	}
	c.Flags().StringVar(&opts.ConfigPath, "config", "", "config file to load")
	c.Flags().StringVar(&opts.Profile, "profile", "", "profile to mark as active")
	return c
}

// printProfiles writes one line per profile, marking the active one.
func printProfiles(w io.Writer, profiles []*profile.Profile, current string) {
	fmt.Fprintln(w, TitleStyle.Render("Profiles"))

	width := 0
	for _, p := range profiles {
		width = max(width, len(p.Name))
	}

	for _, p := range profiles {
		marker := " "
		if p.Name == current {
			marker = SuccessStyle.Render("*")
		}
		name := CmdStyle.Render(p.Name + strings.Repeat(" ", width-len(p.Name)))
		fmt.Fprintf(w, "%s %s  %s\n", marker, name, SubtitleStyle.Render(countCommands(len(p.Commands))))
	}
}

func countCommands(n int) string {
	if n == 1 {
		return "1 command"
	}
	return fmt.Sprintf("%d commands", n)
}
