// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// VirtualRuntime interprets scripts with mvdan/sh. All scripts run in the
	// same shell session: a `cd` or variable assignment in one script is seen
	// by the scripts that follow.
	VirtualRuntime struct {
		mu      sync.Mutex
		runner  *interp.Runner
		env     []string
		workDir string
	}

	// VirtualOption configures a VirtualRuntime.
	VirtualOption func(*VirtualRuntime)
)

// WithEnv replaces the environment the session starts with.
func WithEnv(env []string) VirtualOption {
	return func(r *VirtualRuntime) { r.env = env }
}

// WithWorkDir sets the directory the session starts in.
func WithWorkDir(dir string) VirtualOption {
	return func(r *VirtualRuntime) { r.workDir = dir }
}

// NewVirtualRuntime creates a virtual runtime inheriting the process
// environment.
func NewVirtualRuntime(opts ...VirtualOption) *VirtualRuntime {
	r := &VirtualRuntime{env: os.Environ()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available always returns true, the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Validate checks that the script is non-empty and parses.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Script) == "" {
		return ErrEmptyScript
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(ctx.Script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute interprets the script in the shared session.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(ctx.Script), "script")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	runner, err := r.session(ctx.WorkDir)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	// Prepend "--" so args like "-v" are not taken as shell options.
	perRun := []interp.RunnerOption{
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
		interp.Params(append([]string{"--"}, ctx.PositionalArgs...)...),
	}
	for _, opt := range perRun {
		if err := opt(runner); err != nil {
			return NewErrorResult(1, fmt.Errorf("failed to configure interpreter: %w", err))
		}
	}

	execCtx := ctx.Context
	if execCtx == nil {
		execCtx = context.Background()
	}

	if err := runner.Run(execCtx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}

	return NewSuccessResult()
}

// Reset discards the session so the next script starts afresh.
func (r *VirtualRuntime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runner = nil
}

func (r *VirtualRuntime) session(workDir string) (*interp.Runner, error) {
	if r.runner != nil {
		return r.runner, nil
	}

	if workDir == "" {
		workDir = r.workDir
	}
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(r.env...)),
	}
	if workDir != "" {
		opts = append(opts, interp.Dir(workDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, err
	}
	// Reset now, otherwise the first Run would reset and drop the per-run
	// options applied before it.
	runner.Reset()
	r.runner = runner
	return runner, nil
}
