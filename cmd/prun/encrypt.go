// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/internal/secret"
)

func newEncryptCommand(app *App) *cobra.Command {
	var (
		configPath string
		sec        string
		name       string
	)
	c := &cobra.Command{
		Use:   "encrypt --secret <secret> <value>",
		Short: "Encrypt a value for an encrypted parameter",
		Long: `Encrypt a value so it can be passed as an encrypted parameter.

A variable "token" can then be supplied as --encryptedToken <output>
together with --secret <secret>; prun decrypts it when the command asks
for "token".`,
		Example: `  prun encrypt --secret s3cr3t hunter2
  prun encrypt --secret s3cr3t --name token hunter2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), configPath)
			if err != nil {
				return err
			}

			crypto := secret.New(secret.WithCost(uint8(cfg.Encryption.Cost)))
			out, err := crypto.Encrypt(args[0], sec)
			if err != nil {
				return err
			}

			if name != "" {
				fmt.Fprintf(app.stdout, "--%s=%s\n", params.EncryptedName(name), out)
				return nil
			}
			fmt.Fprintln(app.stdout, out)
			return nil
		},
	}
	c.Flags().StringVar(&configPath, "config", "", "config file to load")
	c.Flags().StringVar(&sec, "secret", "", "secret to encrypt the value with")
	c.Flags().StringVar(&name, "name", "", "variable name; prints a ready-to-use --encrypted<Name> parameter")
	_ = c.MarkFlagRequired("secret")
	return c
}
