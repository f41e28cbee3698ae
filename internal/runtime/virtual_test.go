// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func runVirtual(t *testing.T, rt *VirtualRuntime, script string, args ...string) (string, *Result) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	res := rt.Execute(&ExecutionContext{
		Context:        context.Background(),
		Script:         script,
		PositionalArgs: args,
		Stdout:         &stdout,
		Stderr:         &stderr,
	})
	return stdout.String(), res
}

func TestVirtualRuntimeExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		script   string
		args     []string
		want     string
		wantCode ExitCode
	}{
		{name: "echo", script: "echo hello", want: "hello\n"},
		{name: "positional args", script: `echo "$1-$2"`, args: []string{"a", "b"}, want: "a-b\n"},
		{name: "dash args are not options", script: `echo "$1"`, args: []string{"-v"}, want: "-v\n"},
		{name: "exit status", script: "exit 3", wantCode: 3},
		{name: "false", script: "false", wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, res := runVirtual(t, NewVirtualRuntime(), tt.script, tt.args...)
			if res.Error != nil {
				t.Fatalf("Execute() error = %v", res.Error)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d", res.ExitCode, tt.wantCode)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestVirtualRuntimeSessionPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rt := NewVirtualRuntime(WithEnv([]string{"PRUN_TEST=1"}))

	if _, res := runVirtual(t, rt, "GREETING=hi; cd "+dir); !res.Success() {
		t.Fatalf("first script failed: %+v", res)
	}

	out, res := runVirtual(t, rt, `echo "$GREETING $PWD $PRUN_TEST"`)
	if !res.Success() {
		t.Fatalf("second script failed: %+v", res)
	}
	fields := strings.Fields(out)
	if len(fields) != 3 || fields[0] != "hi" || filepath.Clean(fields[1]) != filepath.Clean(dir) || fields[2] != "1" {
		t.Errorf("output = %q, want greeting, %s and env", out, dir)
	}

	rt.Reset()
	out, _ = runVirtual(t, rt, `echo "[$GREETING]"`)
	if out != "[]\n" {
		t.Errorf("after Reset output = %q, want []", out)
	}
}

func TestVirtualRuntimeContinuesAfterExit(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	if _, res := runVirtual(t, rt, "exit 2"); res.ExitCode != 2 {
		t.Fatalf("exit code = %d, want 2", res.ExitCode)
	}
	out, res := runVirtual(t, rt, "echo again")
	if !res.Success() || out != "again\n" {
		t.Errorf("after exit: %+v, output %q", res, out)
	}
}

func TestVirtualRuntimeValidate(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	if err := rt.Validate(&ExecutionContext{Script: "echo ("}); err == nil {
		t.Error("Validate() accepted a script with a syntax error")
	}
	if err := rt.Validate(&ExecutionContext{Script: "echo ok"}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
