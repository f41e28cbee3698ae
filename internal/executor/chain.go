// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/pkg/profile"
)

type (
	// Link attempts to handle one action of a command. It returns true when
	// it handled the action, which stops the chain for that action. An error
	// aborts the whole command.
	Link interface {
		Attempt(ctx context.Context, cmd *profile.Command, action string, args []string, r *params.Resolver) (bool, error)
	}

	// LinkFunc adapts a function to Link.
	LinkFunc func(ctx context.Context, cmd *profile.Command, action string, args []string, r *params.Resolver) (bool, error)

	// LinkFactory builds a link with access to the chain it joins.
	LinkFactory func(c *Chain) Link

	// Chain is the ordered list of links. Links are registered during setup;
	// registration order is priority order.
	Chain struct {
		interpreter profile.Interpreter
		retrievers  *params.Chain
		logger      *log.Logger
		links       []Link
	}

	// ChainOption configures a Chain.
	ChainOption func(*Chain)
)

// Attempt calls f.
func (f LinkFunc) Attempt(ctx context.Context, cmd *profile.Command, action string, args []string, r *params.Resolver) (bool, error) {
	return f(ctx, cmd, action, args, r)
}

// WithLogger sets the logger links write to.
func WithLogger(l *log.Logger) ChainOption {
	return func(c *Chain) { c.logger = l }
}

// NewChain returns a chain without links. Commands are bound to retrievers
// and actions are expanded with interp.
func NewChain(interp profile.Interpreter, retrievers *params.Chain, opts ...ChainOption) *Chain {
	c := &Chain{interpreter: interp, retrievers: retrievers}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Register appends the link built by factory.
func (c *Chain) Register(factory LinkFactory) *Chain {
	c.links = append(c.links, factory(c))
	return c
}

// Interpreter returns the chain's interpreter.
func (c *Chain) Interpreter() profile.Interpreter {
	return c.interpreter
}

// Logger returns the chain's logger.
func (c *Chain) Logger() *log.Logger {
	return c.logger
}

// Bind returns the resolver for one execution of cmd.
func (c *Chain) Bind(cmd *profile.Command, args []string, p params.Parameters) *params.Resolver {
	return c.retrievers.Bind(cmd, p, args)
}

// Execute runs cmd. A command implemented as a function is called directly
// and no link runs. Otherwise each action is offered to the links in order;
// an action no link accepts is skipped.
func (c *Chain) Execute(ctx context.Context, cmd *profile.Command, args []string, p params.Parameters) error {
	r := c.Bind(cmd, args, p)

	if cmd.Func != nil {
		return cmd.Func(ctx, r, args, cmd, c.interpreter)
	}
	if cmd.Execute == nil {
		return &NoExecuteDefinedError{Command: cmd.Name}
	}

	for _, action := range cmd.Execute {
		for _, link := range c.links {
			handled, err := link.Attempt(ctx, cmd, action, args, r)
			if err != nil {
				return err
			}
			if handled {
				break
			}
		}
	}
	return nil
}
