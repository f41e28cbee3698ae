// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/prun/internal/config"
)

// newConfigCommand creates the `prun config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	var configPath string

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage prun configuration",
		Long: `Manage prun configuration.

Configuration is stored in:
  - Linux: ~/.config/prun/config.cue
  - macOS: ~/Library/Application Support/prun/config.cue
  - Windows: %APPDATA%\prun\config.cue

Every setting can be overridden with a PRUN_ environment variable, for
example PRUN_DEFAULT_RUNTIME=virtual or PRUN_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cfgCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file to load")

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), configPath)
			if err != nil {
				return err
			}

			source := SubtitleStyle.Render("(using defaults)")
			if cfg.Path != "" {
				source = cfg.Path
			}
			fmt.Fprintf(app.stdout, "%s: %s\n\n", CmdStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg.Config))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configPath != "" {
				fmt.Fprintln(app.stdout, configPath)
				return nil
			}
			path, err := config.ConfigFilePath("")
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created config file:"), path)
			return nil
		},
	})

	return cfgCmd
}
