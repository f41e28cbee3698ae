// SPDX-License-Identifier: MPL-2.0

package profile

import (
	"context"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultProfile is the profile selected when none is configured.
const DefaultProfile = "main"

type (
	// Resolver answers lazy parameter lookups for a bound command. A false
	// second result means no source could supply the value.
	Resolver interface {
		Resolve(ctx context.Context, name string) (string, bool, error)
	}

	// Interpreter expands placeholders of a raw action through a Resolver.
	Interpreter interface {
		Interpret(ctx context.Context, action string, r Resolver) (string, error)
	}

	// Func is a command implemented in Go rather than as a list of actions.
	Func func(ctx context.Context, params Resolver, args []string, cmd *Command, interp Interpreter) error

	// Variable describes a parameter a command understands.
	Variable struct {
		Name string `json:"name"`
		Text string `json:"text,omitempty"`
		// Default is nil when the variable has no default, which is distinct
		// from an empty default.
		Default *string `json:"default,omitempty"`
		// Arg binds the variable to a positional argument, in the order the
		// arg variables are declared.
		Arg bool `json:"arg,omitempty"`
		// Encrypted marks variables normally supplied as encrypted<Name>.
		Encrypted bool     `json:"encrypted,omitempty"`
		Hide      bool     `json:"hide,omitempty"`
		Options   []string `json:"options,omitempty"`
	}

	// Help documents a command.
	Help struct {
		Text      string     `json:"text,omitempty"`
		Variables []Variable `json:"variables,omitempty"`
	}

	// Command is a named unit of work. Exactly one of Execute and Func is
	// expected to be set; a command with neither cannot run.
	Command struct {
		Name    string   `json:"name"`
		Execute []string `json:"execute,omitempty"`
		Help    *Help    `json:"help,omitempty"`
		Func    Func     `json:"-"`
	}

	// Profile is a named collection of commands with unique names.
	Profile struct {
		Name     string     `json:"name"`
		Commands []*Command `json:"commands,omitempty"`
	}
)

// Description returns the first line of the command's help text.
func (c *Command) Description() string {
	if c.Help == nil {
		return ""
	}
	text := strings.TrimSpace(c.Help.Text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

// Variables returns the variables declared in the command's help.
func (c *Command) Variables() []Variable {
	if c == nil || c.Help == nil {
		return nil
	}
	return c.Help.Variables
}

// Variable looks up a declared variable by name.
func (c *Command) Variable(name string) (*Variable, bool) {
	vars := c.Variables()
	i := slices.IndexFunc(vars, func(v Variable) bool { return v.Name == name })
	if i < 0 {
		return nil, false
	}
	return &vars[i], true
}

// ArgIndex returns the positional argument index bound to name.
func (c *Command) ArgIndex(name string) (int, bool) {
	idx := 0
	for _, v := range c.Variables() {
		if !v.Arg {
			continue
		}
		if v.Name == name {
			return idx, true
		}
		idx++
	}
	return 0, false
}

// Command returns the command with the given name, or nil.
func (p *Profile) Command(name string) *Command {
	i := slices.IndexFunc(p.Commands, func(c *Command) bool { return c.Name == name })
	if i < 0 {
		return nil
	}
	return p.Commands[i]
}

// CommandNames returns the command names in definition order.
func (p *Profile) CommandNames() []string {
	names := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		names[i] = c.Name
	}
	return names
}

// Put adds cmd, replacing any command with the same name in place.
func (p *Profile) Put(cmd *Command) {
	i := slices.IndexFunc(p.Commands, func(c *Command) bool { return c.Name == cmd.Name })
	if i < 0 {
		p.Commands = append(p.Commands, cmd)
		return
	}
	p.Commands[i] = cmd
}

// String returns a pointer to s, for variable defaults built in code.
func String(s string) *string {
	return &s
}
