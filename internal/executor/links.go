// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/internal/runtime"
	"github.com/invowk/prun/pkg/profile"
)

// ProfilePrefix marks an action that switches profile.
const ProfilePrefix = "profile:"

type (
	// ProfileSwitcher is the part of Executor the profile link needs.
	ProfileSwitcher interface {
		DefineProfile(name string) error
		Execute(ctx context.Context, args []string, p params.Parameters) error
	}

	// ScriptRunner runs an interpreted action.
	ScriptRunner interface {
		RunScript(ctx context.Context, script string, args []string) error
	}

	// RuntimeRunner runs scripts with a runtime from a registry.
	RuntimeRunner struct {
		Registry *runtime.Registry
		Type     runtime.RuntimeType
		WorkDir  string
		Stdout   io.Writer
		Stderr   io.Writer
		Stdin    io.Reader
	}
)

// NewLogLink returns a factory for the trace link. It logs every raw action
// and never handles it, so it must be registered first. The trace is logged
// at debug level, so it only shows in verbose mode (--verbose, ui.verbose or
// PRUN_UI_VERBOSE).
func NewLogLink() LinkFactory {
	return func(c *Chain) Link {
		logger := c.Logger()
		return LinkFunc(func(_ context.Context, cmd *profile.Command, action string, _ []string, _ *params.Resolver) (bool, error) {
			logger.Debug("action", "command", cmd.Name, "action", action)
			return false, nil
		})
	}
}

// ProfileLinkFor returns a factory for the link handling "profile:<name>"
// actions. The name part is interpreted, then sw switches to that profile
// and executes the current arguments there with the raw parameters. The help
// flag is not forwarded: it only applies to the command named on the command
// line, and args always names a command in the target profile.
func ProfileLinkFor(sw ProfileSwitcher) LinkFactory {
	return func(c *Chain) Link {
		interp := c.Interpreter()
		return LinkFunc(func(ctx context.Context, _ *profile.Command, action string, args []string, r *params.Resolver) (bool, error) {
			raw, ok := strings.CutPrefix(action, ProfilePrefix)
			if !ok {
				return false, nil
			}

			name, err := interp.Interpret(ctx, strings.TrimSpace(raw), r)
			if err != nil {
				return false, err
			}
			if err := sw.DefineProfile(name); err != nil {
				return false, err
			}
			forwarded := r.Params().Clone()
			delete(forwarded, HelpParameter)
			return true, sw.Execute(ctx, args, forwarded)
		})
	}
}

// CommandLineLinkFor returns a factory for the terminal link. It interprets
// any action and runs it with runner, accepting every action.
func CommandLineLinkFor(runner ScriptRunner) LinkFactory {
	return func(c *Chain) Link {
		interp := c.Interpreter()
		return LinkFunc(func(ctx context.Context, _ *profile.Command, action string, args []string, r *params.Resolver) (bool, error) {
			script, err := interp.Interpret(ctx, action, r)
			if err != nil {
				return false, err
			}
			return true, runner.RunScript(ctx, script, args)
		})
	}
}

// DefaultLinks returns the standard link order.
func DefaultLinks(sw ProfileSwitcher, runner ScriptRunner) []LinkFactory {
	return []LinkFactory{NewLogLink(), ProfileLinkFor(sw), CommandLineLinkFor(runner)}
}

// RunScript implements ScriptRunner.
func (rr *RuntimeRunner) RunScript(ctx context.Context, script string, args []string) error {
	res := rr.Registry.Execute(rr.Type, &runtime.ExecutionContext{
		Context:        ctx,
		Script:         script,
		PositionalArgs: args,
		WorkDir:        rr.WorkDir,
		Stdout:         rr.Stdout,
		Stderr:         rr.Stderr,
		Stdin:          rr.Stdin,
	})
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", firstLine(script), err)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
