// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"errors"
	"strconv"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/pkg/profile"
)

// HelpParameter is the raw parameter requesting command help.
const HelpParameter = "help"

type (
	// ProfileSource supplies the profiles an Executor is built from.
	ProfileSource interface {
		Profiles() []*profile.Profile
	}

	// Help presents command help.
	Help interface {
		List(p *profile.Profile)
		Describe(p *profile.Profile, cmd *profile.Command)
	}

	// Suggester reacts to a command name the active profile does not have.
	Suggester interface {
		Suggest(p *profile.Profile, err *CommandNotFoundError)
	}

	// Executor holds the profile registry and the active profile.
	Executor struct {
		profiles  map[string]*profile.Profile
		order     []string
		selected  string
		chain     *Chain
		help      Help
		suggester Suggester
	}

	// Option configures an Executor.
	Option func(*Executor)

	nopHelp      struct{}
	nopSuggester struct{}
)

// WithDefaultProfile sets the initially active profile.
func WithDefaultProfile(name string) Option {
	return func(e *Executor) { e.selected = name }
}

// WithHelp sets the help presenter.
func WithHelp(h Help) Option {
	return func(e *Executor) { e.help = h }
}

// WithSuggester sets the unknown command handler.
func WithSuggester(s Suggester) Option {
	return func(e *Executor) { e.suggester = s }
}

// New builds an Executor from src. The default profile, "main" unless set
// with WithDefaultProfile, must be among the profiles.
func New(src ProfileSource, chain *Chain, opts ...Option) (*Executor, error) {
	e := &Executor{
		profiles:  map[string]*profile.Profile{},
		selected:  profile.DefaultProfile,
		chain:     chain,
		help:      nopHelp{},
		suggester: nopSuggester{},
	}
	for _, p := range src.Profiles() {
		if _, dup := e.profiles[p.Name]; !dup {
			e.order = append(e.order, p.Name)
		}
		e.profiles[p.Name] = p
	}
	for _, opt := range opts {
		opt(e)
	}

	if _, ok := e.profiles[e.selected]; !ok {
		return nil, &ProfileNotFoundError{Name: e.selected}
	}
	return e, nil
}

// Profile returns the registered profile with the given name, or nil.
func (e *Executor) Profile(name string) *profile.Profile {
	return e.profiles[name]
}

// Profiles returns the registered profiles in registration order.
func (e *Executor) Profiles() []*profile.Profile {
	out := make([]*profile.Profile, len(e.order))
	for i, name := range e.order {
		out[i] = e.profiles[name]
	}
	return out
}

// CurrentProfile returns the active profile name.
func (e *Executor) CurrentProfile() string {
	return e.selected
}

// DefineProfile makes name the active profile. The active profile is left
// unchanged when name is not registered.
func (e *Executor) DefineProfile(name string) error {
	if _, ok := e.profiles[name]; !ok {
		return &ProfileNotFoundError{Name: name}
	}
	e.selected = name
	return nil
}

// Chain returns the executor's chain.
func (e *Executor) Chain() *Chain {
	return e.chain
}

// Execute runs the command named by args[0] in the active profile with the
// remaining arguments. Without arguments the active profile's commands are
// listed. An unknown command is handed to the suggester and is not an error.
func (e *Executor) Execute(ctx context.Context, args []string, p params.Parameters) error {
	current := e.profiles[e.selected]
	if len(args) == 0 {
		e.help.List(current)
		return nil
	}

	cmd := current.Command(args[0])
	if cmd == nil {
		e.suggester.Suggest(current, &CommandNotFoundError{Profile: current.Name, Name: args[0]})
		return nil
	}

	if len(args) == 1 && wantsHelp(p) {
		e.help.Describe(current, cmd)
		return nil
	}

	return e.chain.Execute(ctx, cmd, args[1:], p)
}

// IsUserError reports whether err is one of the executor's own errors, as
// opposed to a failure raised by an action.
func IsUserError(err error) bool {
	return errors.Is(err, ErrProfileNotFound) || errors.Is(err, ErrNoExecuteDefined)
}

func wantsHelp(p params.Parameters) bool {
	v, ok := p.Get(HelpParameter)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func (nopHelp) List(*profile.Profile)                       {}
func (nopHelp) Describe(*profile.Profile, *profile.Command) {}

func (nopSuggester) Suggest(*profile.Profile, *CommandNotFoundError) {}
