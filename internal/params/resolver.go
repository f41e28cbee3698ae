// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"
	"fmt"
	"strings"

	"github.com/invowk/prun/internal/secret"
	"github.com/invowk/prun/pkg/profile"
)

type (
	// Chain is an ordered list of retrievers. Registration order is priority
	// order.
	Chain struct {
		retrievers []Retriever
	}

	// Resolver is the lazy view over a command's parameters.
	Resolver struct {
		cmd        *profile.Command
		params     Parameters
		args       []string
		retrievers []Retriever
	}

	inflightKey struct{}

	// inflight lists the names being resolved further up the call stack.
	inflight struct {
		name   string
		parent *inflight
	}
)

var _ profile.Resolver = (*Resolver)(nil)

// NewChain returns a chain consulting retrievers in the given order.
func NewChain(retrievers ...Retriever) *Chain {
	return &Chain{retrievers: retrievers}
}

// DefaultChain returns the standard chain. dec may be nil when no decryption
// capability is available, in which case encrypted parameters are ignored.
func DefaultChain(dec secret.Decrypter) *Chain {
	return NewChain(ParameterRetriever{}, NewEncryptedRetriever(dec), DefaultRetriever{})
}

// Bind returns a Resolver for cmd with the given raw parameters and
// positional arguments.
func (c *Chain) Bind(cmd *profile.Command, params Parameters, args []string) *Resolver {
	if params == nil {
		params = Parameters{}
	}
	return &Resolver{cmd: cmd, params: params, args: args, retrievers: c.retrievers}
}

// Resolve walks the chain for name. A name that is already being resolved
// further up the stack is reported absent, so retrievers that resolve
// companion values through the Resolver cannot loop.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool, error) {
	for f, _ := ctx.Value(inflightKey{}).(*inflight); f != nil; f = f.parent {
		if f.name == name {
			return "", false, nil
		}
	}
	parent, _ := ctx.Value(inflightKey{}).(*inflight)
	ctx = context.WithValue(ctx, inflightKey{}, &inflight{name: name, parent: parent})

	for _, retriever := range r.retrievers {
		value, ok, err := retriever.Lookup(ctx, r.cmd, r.params, name, r.args, r)
		if err != nil {
			return "", false, err
		}
		if ok {
			return value, true, nil
		}
	}
	return "", false, nil
}

// Params returns the raw parameters, which nested invocations receive.
func (r *Resolver) Params() Parameters {
	return r.params
}

// Command returns the bound command.
func (r *Resolver) Command() *profile.Command {
	return r.cmd
}

// Args returns the bound positional arguments.
func (r *Resolver) Args() []string {
	return r.args
}

// String lists the bound command and raw parameter names, never values.
func (r *Resolver) String() string {
	name := ""
	if r.cmd != nil {
		name = r.cmd.Name
	}
	return fmt.Sprintf("params(%s; %s; args=%d)", name, strings.Join(r.params.Names(), ","), len(r.args))
}
