// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/internal/runtime"
	"github.com/invowk/prun/pkg/profile"
)

type harness struct {
	exec      *Executor
	help      *fakeHelp
	suggester *fakeSuggester
	scripts   *scriptRecorder
}

func newHarness(t *testing.T, profiles ...*profile.Profile) *harness {
	t.Helper()

	h := &harness{help: &fakeHelp{}, suggester: &fakeSuggester{}, scripts: &scriptRecorder{}}
	chain := newTestChain()
	exec, err := New(profileList(profiles), chain, WithHelp(h.help), WithSuggester(h.suggester))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, f := range DefaultLinks(exec, h.scripts) {
		chain.Register(f)
	}
	h.exec = exec
	return h
}

func deployProfiles() []*profile.Profile {
	return []*profile.Profile{
		{Name: "main", Commands: []*profile.Command{
			command("deploy", "profile:git", "echo deployed"),
			command("to", "profile:$target"),
			command("broken", "profile:ghost", "echo unreachable"),
		}},
		{Name: "git", Commands: []*profile.Command{
			command("push", "git push $remote"),
		}},
	}
}

func TestNewRequiresDefaultProfile(t *testing.T) {
	t.Parallel()

	_, err := New(profileList{{Name: "git"}}, newTestChain())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("New() error = %v, want ErrProfileNotFound", err)
	}

	exec, err := New(profileList{{Name: "git"}}, newTestChain(), WithDefaultProfile("git"))
	if err != nil || exec.CurrentProfile() != "git" {
		t.Errorf("New(WithDefaultProfile) = %v, %v", exec, err)
	}
}

func TestDefineProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)

	err := h.exec.DefineProfile("ghost")
	var perr *ProfileNotFoundError
	if !errors.As(err, &perr) || perr.Name != "ghost" {
		t.Fatalf("DefineProfile(ghost) error = %v", err)
	}
	if got := h.exec.CurrentProfile(); got != "main" {
		t.Errorf("CurrentProfile() = %q after failed switch, want main", got)
	}

	if err := h.exec.DefineProfile("git"); err != nil {
		t.Fatal(err)
	}
	if got := h.exec.CurrentProfile(); got != "git" {
		t.Errorf("CurrentProfile() = %q, want git", got)
	}
	if h.exec.Profile("git") == nil || h.exec.Profile("ghost") != nil {
		t.Error("Profile() lookup mismatch")
	}
}

func TestExecuteWithoutArgsListsCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	if err := h.exec.Execute(context.Background(), nil, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"main"}, h.help.listed); diff != "" {
		t.Errorf("listed mismatch (-want +got):\n%s", diff)
	}
	if len(h.scripts.scripts) != 0 {
		t.Error("listing executed scripts")
	}
}

func TestExecuteUnknownCommandSuggestsOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	if err := h.exec.Execute(context.Background(), []string{"deplyo"}, nil); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if len(h.suggester.calls) != 1 {
		t.Fatalf("Suggest called %d times, want 1", len(h.suggester.calls))
	}
	if got := h.suggester.calls[0]; got.Name != "deplyo" || got.Profile != "main" || !errors.Is(got, ErrCommandNotFound) {
		t.Errorf("Suggest got %+v", got)
	}
}

func TestExecuteHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          []string
		help          string
		wantDescribed bool
	}{
		{name: "help true", args: []string{"deploy"}, help: "true", wantDescribed: true},
		{name: "help 1", args: []string{"deploy"}, help: "1", wantDescribed: true},
		{name: "help false runs", args: []string{"deploy"}, help: "false"},
		{name: "help with args runs", args: []string{"deploy", "push"}, help: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, deployProfiles()...)
			err := h.exec.Execute(context.Background(), tt.args, params.Parameters{HelpParameter: tt.help})
			if err != nil {
				t.Fatal(err)
			}
			if got := len(h.help.described) == 1; got != tt.wantDescribed {
				t.Errorf("described = %v, want %v", h.help.described, tt.wantDescribed)
			}
			if tt.wantDescribed && len(h.scripts.scripts) != 0 {
				t.Error("help request executed scripts")
			}
		})
	}
}

func TestExecuteProfileSwitch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	p := params.Parameters{"remote": "origin"}

	if err := h.exec.Execute(context.Background(), []string{"deploy", "push"}, p); err != nil {
		t.Fatal(err)
	}
	if got := h.exec.CurrentProfile(); got != "git" {
		t.Errorf("CurrentProfile() = %q, want git", got)
	}
	want := []string{"git push origin", "echo deployed"}
	if diff := cmp.Diff(want, h.scripts.scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
	for _, s := range h.scripts.scripts {
		if s == "profile:git" {
			t.Error("command-line link saw the profile switch")
		}
	}
}

func TestExecuteProfileSwitchDropsHelp(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	p := params.Parameters{"remote": "origin", HelpParameter: "true"}

	if err := h.exec.Execute(context.Background(), []string{"deploy", "push"}, p); err != nil {
		t.Fatal(err)
	}
	if len(h.help.described) != 0 {
		t.Errorf("described = %v, want none", h.help.described)
	}
	if diff := cmp.Diff([]string{"git push origin", "echo deployed"}, h.scripts.scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
	if p[HelpParameter] != "true" {
		t.Error("caller parameters were modified")
	}
}

func TestExecuteProfileSwitchInterpolatesName(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	p := params.Parameters{"target": "git", "remote": "up"}

	if err := h.exec.Execute(context.Background(), []string{"to", "push"}, p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"git push up"}, h.scripts.scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteProfileSwitchToUnknownProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	err := h.exec.Execute(context.Background(), []string{"broken"}, nil)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Execute() error = %v, want ErrProfileNotFound", err)
	}
	if len(h.scripts.scripts) != 0 {
		t.Errorf("scripts ran after failed switch: %v", h.scripts.scripts)
	}
	if h.exec.CurrentProfile() != "main" {
		t.Errorf("CurrentProfile() = %q", h.exec.CurrentProfile())
	}
}

func TestExecuteForwardsArgsToScripts(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &profile.Profile{Name: "main", Commands: []*profile.Command{command("say", `echo "$1"`)}})
	if err := h.exec.Execute(context.Background(), []string{"say", "hi", "there"}, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"hi", "there"}}, h.scripts.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRuntimeRunner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rr := &RuntimeRunner{
		Registry: runtime.NewDefaultRegistry(""),
		Type:     runtime.RuntimeTypeVirtual,
		Stdout:   &out,
		Stderr:   &bytes.Buffer{},
	}

	if err := rr.RunScript(context.Background(), `echo "$1"`, []string{"hello"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hello\n" {
		t.Errorf("output = %q", out.String())
	}

	err := rr.RunScript(context.Background(), "exit 4", nil)
	var exitErr *runtime.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 4 {
		t.Errorf("RunScript(exit 4) error = %v", err)
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	h := newHarness(t, deployProfiles()...)
	var names []string
	for _, p := range h.exec.Profiles() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"main", "git"}, names); diff != "" {
		t.Errorf("Profiles() mismatch (-want +got):\n%s", diff)
	}
}
