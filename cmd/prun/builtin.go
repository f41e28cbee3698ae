// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/invowk/prun/pkg/profile"
)

// BuiltinProfile is the profile holding the commands prun implements itself.
const BuiltinProfile = "prun"

// ErrMissingValue is returned when a built-in command lacks a required
// parameter.
var ErrMissingValue = errors.New("missing required parameter")

// MissingValueError names the missing parameter of a built-in command.
type MissingValueError struct {
	Command string
	Name    string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s: --%s is required", e.Command, e.Name)
}

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// addBuiltins puts the built-in commands into the prun profile. Commands a
// profile file already defines there are kept.
func (s *session) addBuiltins(set *profile.Set) {
	p := set.Ensure(BuiltinProfile)
	for _, cmd := range s.builtinCommands() {
		if p.Command(cmd.Name) == nil {
			p.Put(cmd)
		}
	}
}

func (s *session) builtinCommands() []*profile.Command {
	return []*profile.Command{
		{
			Name: "version",
			Help: &profile.Help{Text: "Print the prun version"},
			Func: func(context.Context, profile.Resolver, []string, *profile.Command, profile.Interpreter) error {
				_, err := fmt.Fprintln(s.app.stdout, getVersionString())
				return err
			},
		},
		{
			Name: "encrypt",
			Help: &profile.Help{
				Text: "Encrypt a value for use as an encrypted<Name> parameter",
				Variables: []profile.Variable{
					{Name: "value", Text: "plaintext to encrypt", Arg: true},
					{Name: "secret", Text: "secret the value is encrypted with"},
				},
			},
			Func: s.encryptFunc,
		},
		{
			Name: "profiles",
			Help: &profile.Help{Text: "List the defined profiles"},
			Func: func(context.Context, profile.Resolver, []string, *profile.Command, profile.Interpreter) error {
				printProfiles(s.app.stdout, s.executor.Profiles(), s.executor.CurrentProfile())
				return nil
			},
		},
	}
}

func (s *session) encryptFunc(ctx context.Context, r profile.Resolver, _ []string, cmd *profile.Command, _ profile.Interpreter) error {
	value, err := required(ctx, r, cmd, "value")
	if err != nil {
		return err
	}
	sec, err := required(ctx, r, cmd, "secret")
	if err != nil {
		return err
	}

	out, err := s.crypto.Encrypt(value, sec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.app.stdout, out)
	return err
}

func required(ctx context.Context, r profile.Resolver, cmd *profile.Command, name string) (string, error) {
	v, ok, err := r.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "", &MissingValueError{Command: cmd.Name, Name: name}
	}
	return v, nil
}
