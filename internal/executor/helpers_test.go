// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"fmt"

	"github.com/invowk/prun/internal/interpreter"
	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/pkg/profile"
)

type (
	// recorder collects link calls in order.
	recorder struct {
		calls []string
	}

	profileList []*profile.Profile

	fakeHelp struct {
		listed    []string
		described []string
	}

	fakeSuggester struct {
		calls []*CommandNotFoundError
	}

	// scriptRecorder is a ScriptRunner remembering every script it ran.
	scriptRecorder struct {
		scripts []string
		args    [][]string
		err     error
	}
)

func (l profileList) Profiles() []*profile.Profile { return l }

func (h *fakeHelp) List(p *profile.Profile) { h.listed = append(h.listed, p.Name) }

func (h *fakeHelp) Describe(p *profile.Profile, cmd *profile.Command) {
	h.described = append(h.described, p.Name+"/"+cmd.Name)
}

func (s *fakeSuggester) Suggest(_ *profile.Profile, err *CommandNotFoundError) {
	s.calls = append(s.calls, err)
}

func (s *scriptRecorder) RunScript(_ context.Context, script string, args []string) error {
	s.scripts = append(s.scripts, script)
	s.args = append(s.args, args)
	return s.err
}

// link returns a factory for a link recording "<id>:<action>" and returning
// the given answer.
func (r *recorder) link(id string, handled bool, err error) LinkFactory {
	return func(*Chain) Link {
		return LinkFunc(func(_ context.Context, _ *profile.Command, action string, _ []string, _ *params.Resolver) (bool, error) {
			r.calls = append(r.calls, fmt.Sprintf("%s:%s", id, action))
			return handled, err
		})
	}
}

func newTestChain() *Chain {
	return NewChain(interpreter.New(), params.DefaultChain(nil))
}

func command(name string, actions ...string) *profile.Command {
	return &profile.Command{Name: name, Execute: actions}
}
