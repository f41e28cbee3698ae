// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound is wrapped by ProfileNotFoundError.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoExecuteDefined is wrapped by NoExecuteDefinedError.
	ErrNoExecuteDefined = errors.New("no execute defined")
	// ErrCommandNotFound is wrapped by CommandNotFoundError.
	ErrCommandNotFound = errors.New("command not found")
)

type (
	// ProfileNotFoundError is returned when switching to an unregistered
	// profile.
	ProfileNotFoundError struct {
		Name string
	}

	// NoExecuteDefinedError is returned for a command with neither actions
	// nor a function.
	NoExecuteDefinedError struct {
		Command string
	}

	// CommandNotFoundError describes a command name missing from a profile.
	// Execute never returns it; it is what a Suggester is asked about.
	CommandNotFoundError struct {
		Profile string
		Name    string
	}
)

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.Name)
}

// Unwrap returns ErrProfileNotFound.
func (e *ProfileNotFoundError) Unwrap() error { return ErrProfileNotFound }

func (e *NoExecuteDefinedError) Error() string {
	return fmt.Sprintf("no execute defined for command %q", e.Command)
}

// Unwrap returns ErrNoExecuteDefined.
func (e *NoExecuteDefinedError) Unwrap() error { return ErrNoExecuteDefined }

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command %q not found in profile %q", e.Name, e.Profile)
}

// Unwrap returns ErrCommandNotFound.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }
