// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrInvalidRuntimeType is wrapped by InvalidRuntimeTypeError.
	ErrInvalidRuntimeType = errors.New("invalid runtime type")
	// ErrRuntimeNotRegistered is returned by Registry.Get for unknown types.
	ErrRuntimeNotRegistered = errors.New("runtime not registered")
	// ErrEmptyScript is returned when there is nothing to execute.
	ErrEmptyScript = errors.New("script has no content to execute")
	// ErrShellNotFound is returned by the native runtime when no shell is available.
	ErrShellNotFound = errors.New("no shell found")
)

type (
	// ExecutionContext contains everything needed to run one script.
	ExecutionContext struct {
		// Context cancels the execution.
		Context context.Context
		// Script is the already interpreted action.
		Script string
		// PositionalArgs are exposed to the script as $1, $2, ...
		PositionalArgs []string
		// WorkDir overrides the working directory.
		WorkDir string
		Stdout  io.Writer
		Stderr  io.Writer
		Stdin   io.Reader
	}

	// Result contains the result of a script execution.
	Result struct {
		// ExitCode is the shell exit status.
		ExitCode ExitCode
		// Error is set when the script could not be run at all.
		Error error
	}

	// Runtime defines the interface for script execution.
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Execute runs a script in this runtime
		Execute(ctx *ExecutionContext) *Result
		// Available returns whether this runtime can run on the current system
		Available() bool
		// Validate checks if a script can be executed with this runtime
		Validate(ctx *ExecutionContext) error
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// InvalidRuntimeTypeError is returned for an unknown runtime name.
	InvalidRuntimeTypeError struct {
		Value string
	}

	// ExitError reports a script that ran and exited non-zero.
	ExitError struct {
		Code ExitCode
	}

	// Registry holds the available runtimes.
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// NewExecutionContext returns a context bound to the process standard streams.
func NewExecutionContext(ctx context.Context, script string, args []string) *ExecutionContext {
	return &ExecutionContext{
		Context:        ctx,
		Script:         script,
		PositionalArgs: args,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Stdin:          os.Stdin,
	}
}

// ParseRuntimeType converts a configuration or flag value to a RuntimeType.
func ParseRuntimeType(s string) (RuntimeType, error) {
	switch t := RuntimeType(s); t {
	case RuntimeTypeNative, RuntimeTypeVirtual:
		return t, nil
	default:
		return "", &InvalidRuntimeTypeError{Value: s}
	}
}

// String returns the runtime type name.
func (t RuntimeType) String() string { return string(t) }

func (e *InvalidRuntimeTypeError) Error() string {
	return fmt.Sprintf("invalid runtime type %q (valid: %s, %s)", e.Value, RuntimeTypeNative, RuntimeTypeVirtual)
}

// Unwrap returns ErrInvalidRuntimeType.
func (e *InvalidRuntimeTypeError) Unwrap() error { return ErrInvalidRuntimeType }

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Success returns true if the script executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}

// Err converts the result to an error: Error when set, an *ExitError for a
// non-zero exit code, nil otherwise.
func (r *Result) Err() error {
	if r.Error != nil {
		return r.Error
	}
	if r.ExitCode != 0 {
		return &ExitError{Code: r.ExitCode}
	}
	return nil
}

// NewRegistry creates an empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[RuntimeType]Runtime)}
}

// Register adds a runtime to the registry.
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type.
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRuntimeNotRegistered, typ)
	}
	return rt, nil
}

// Available returns the available runtime types in sorted order.
func (r *Registry) Available() []RuntimeType {
	var types []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			types = append(types, typ)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Execute runs ctx with the runtime registered for typ.
func (r *Registry) Execute(typ RuntimeType, ctx *ExecutionContext) *Result {
	rt, err := r.Get(typ)
	if err != nil {
		return NewErrorResult(1, err)
	}

	if !rt.Available() {
		return NewErrorResult(1, fmt.Errorf("runtime '%s' is not available on this system", rt.Name()))
	}

	if err := rt.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}

	return rt.Execute(ctx)
}

// NewDefaultRegistry returns a registry with both built-in runtimes. shell
// overrides the native shell when non-empty.
func NewDefaultRegistry(shell string) *Registry {
	reg := NewRegistry()
	native := NewNativeRuntime()
	native.Shell = shell
	reg.Register(RuntimeTypeNative, native)
	reg.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	return reg
}
