// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/prun/internal/params"
)

// ErrMissingFlagValue is returned when a CLI option is last on the line.
var ErrMissingFlagValue = errors.New("flag needs a value")

type (
	// runArgs is the parsed `prun run` command line.
	runArgs struct {
		Verbose    bool
		ConfigPath string
		Runtime    string
		Profile    string
		// Args holds the command name followed by its positional arguments.
		Args   []string
		Params params.Parameters
	}

	// MissingFlagValueError reports a CLI option without its value.
	MissingFlagValueError struct {
		Flag string
	}
)

func (e *MissingFlagValueError) Error() string {
	return fmt.Sprintf("flag %s needs a value", e.Flag)
}

func (e *MissingFlagValueError) Unwrap() error { return ErrMissingFlagValue }

// parseRunArgs splits raw into CLI options, positional arguments and raw
// parameters.
//
// CLI options are only recognized before the first positional argument.
// Any other "--name value", "--name=value" or bare "--flag" (which sets
// "true") becomes a parameter. "--" ends parameter parsing.
func parseRunArgs(raw []string) (runArgs, error) {
	out := runArgs{Params: params.Parameters{}}

	for i := 0; i < len(raw); i++ {
		tok := raw[i]

		if tok == "--" {
			out.Args = append(out.Args, raw[i+1:]...)
			break
		}

		if len(out.Args) == 0 {
			consumed, err := out.cliOption(raw, i)
			if err != nil {
				return runArgs{}, err
			}
			if consumed > 0 {
				i += consumed - 1
				continue
			}
		}

		name, ok := strings.CutPrefix(tok, "--")
		if !ok || name == "" {
			out.Args = append(out.Args, tok)
			continue
		}

		if k, v, found := strings.Cut(name, "="); found {
			out.Params[k] = v
			continue
		}
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "--") {
			out.Params[name] = raw[i+1]
			i++
			continue
		}
		out.Params[name] = "true"
	}

	return out, nil
}

// cliOption consumes a CLI option at raw[i] and reports how many tokens it
// used, zero when raw[i] is not a CLI option.
func (a *runArgs) cliOption(raw []string, i int) (int, error) {
	tok := raw[i]
	if tok == "-v" || tok == "--verbose" {
		a.Verbose = true
		return 1, nil
	}

	var target *string
	name, value, inline := strings.Cut(tok, "=")
	switch name {
	case "--config":
		target = &a.ConfigPath
	case "--runtime":
		target = &a.Runtime
	case "--profile":
		target = &a.Profile
	default:
		return 0, nil
	}

	if inline {
		*target = value
		return 1, nil
	}
	if i+1 >= len(raw) {
		return 0, &MissingFlagValueError{Flag: name}
	}
	*target = raw[i+1]
	return 2, nil
}
