// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"

	"github.com/invowk/prun/pkg/profile"
)

type (
	// Retriever offers to answer a lookup. It returns ok=false to decline,
	// leaving the name to the next retriever in the chain. Errors abort the
	// whole resolution.
	Retriever interface {
		Lookup(ctx context.Context, cmd *profile.Command, params Parameters, name string, args []string, r *Resolver) (string, bool, error)
	}

	// RetrieverFunc adapts a function to Retriever.
	RetrieverFunc func(ctx context.Context, cmd *profile.Command, params Parameters, name string, args []string, r *Resolver) (string, bool, error)

	// ParameterRetriever answers from the raw parameters, then from the
	// positional argument bound to an arg variable.
	ParameterRetriever struct{}

	// DefaultRetriever answers from the variable default of the command.
	DefaultRetriever struct{}
)

// Lookup calls f.
func (f RetrieverFunc) Lookup(ctx context.Context, cmd *profile.Command, params Parameters, name string, args []string, r *Resolver) (string, bool, error) {
	return f(ctx, cmd, params, name, args, r)
}

// Lookup implements Retriever.
func (ParameterRetriever) Lookup(_ context.Context, cmd *profile.Command, params Parameters, name string, args []string, _ *Resolver) (string, bool, error) {
	if v, ok := params.Get(name); ok {
		return v, true, nil
	}
	if idx, ok := cmd.ArgIndex(name); ok && idx < len(args) {
		return args[idx], true, nil
	}
	return "", false, nil
}

// Lookup implements Retriever.
func (DefaultRetriever) Lookup(_ context.Context, cmd *profile.Command, _ Parameters, name string, _ []string, _ *Resolver) (string, bool, error) {
	v, ok := cmd.Variable(name)
	if !ok || v.Default == nil {
		return "", false, nil
	}
	return *v.Default, true, nil
}
