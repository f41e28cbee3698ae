// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/pkg/profile"
)

func TestChainFirstAcceptingLinkWins(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	chain := newTestChain().
		Register(rec.link("A", false, nil)).
		Register(rec.link("B", true, nil)).
		Register(rec.link("C", true, nil))

	if err := chain.Execute(context.Background(), command("mk", "mkdir test"), nil, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A:mkdir test", "B:mkdir test"}, rec.calls); diff != "" {
		t.Errorf("link calls mismatch (-want +got):\n%s", diff)
	}
}

func TestChainOffersEveryActionInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	chain := newTestChain().
		Register(rec.link("A", false, nil)).
		Register(rec.link("B", false, nil)).
		Register(rec.link("C", true, nil))

	if err := chain.Execute(context.Background(), command("mk", "mkdir test", "cd test"), nil, nil); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"A:mkdir test", "B:mkdir test", "C:mkdir test",
		"A:cd test", "B:cd test", "C:cd test",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("link calls mismatch (-want +got):\n%s", diff)
	}
}

func TestChainUnclaimedActionIsSkipped(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	chain := newTestChain().Register(rec.link("A", false, nil))

	if err := chain.Execute(context.Background(), command("x", "one", "two"), nil, nil); err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if len(rec.calls) != 2 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestChainErrorAbortsRemainingActions(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rec := &recorder{}
	chain := newTestChain().
		Register(rec.link("A", false, boom)).
		Register(rec.link("B", true, nil))

	err := chain.Execute(context.Background(), command("x", "first", "second"), nil, nil)
	if err != boom { //nolint:errorlint // the original error must come back unwrapped
		t.Errorf("Execute() error = %v, want the original error", err)
	}
	if diff := cmp.Diff([]string{"A:first"}, rec.calls); diff != "" {
		t.Errorf("link calls mismatch (-want +got):\n%s", diff)
	}
}

func TestChainCallsFunc(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	chain := newTestChain().Register(rec.link("A", true, nil))

	var (
		calls     int
		gotArgs   []string
		gotCmd    *profile.Command
		gotValue  string
		gotInterp profile.Interpreter
	)
	cmd := &profile.Command{
		Name: "fn",
		Help: &profile.Help{Variables: []profile.Variable{{Name: "who", Default: profile.String("you")}}},
	}
	cmd.Func = func(ctx context.Context, r profile.Resolver, args []string, c *profile.Command, interp profile.Interpreter) error {
		calls++
		gotArgs, gotCmd, gotInterp = args, c, interp
		gotValue, _, _ = r.Resolve(ctx, "who")
		return nil
	}

	if err := chain.Execute(context.Background(), cmd, []string{"a", "b"}, params.Parameters{}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("func called %d times, want 1", calls)
	}
	if diff := cmp.Diff([]string{"a", "b"}, gotArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if gotCmd != cmd || gotInterp != chain.Interpreter() {
		t.Error("func did not receive the command and the chain interpreter")
	}
	if gotValue != "you" {
		t.Errorf("resolved who = %q, want default", gotValue)
	}
	if len(rec.calls) != 0 {
		t.Errorf("links ran for a func command: %v", rec.calls)
	}
}

func TestChainNoExecuteDefined(t *testing.T) {
	t.Parallel()

	err := newTestChain().Execute(context.Background(), &profile.Command{Name: "empty"}, nil, nil)

	var nerr *NoExecuteDefinedError
	if !errors.As(err, &nerr) || nerr.Command != "empty" {
		t.Fatalf("Execute() error = %v, want *NoExecuteDefinedError", err)
	}
	if !errors.Is(err, ErrNoExecuteDefined) || !IsUserError(err) {
		t.Error("error should wrap ErrNoExecuteDefined")
	}
}

func TestLogLinkTracesAndDeclines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	scripts := &scriptRecorder{}
	chain := NewChain(newTestChain().Interpreter(), params.DefaultChain(nil), WithLogger(logger)).
		Register(NewLogLink()).
		Register(CommandLineLinkFor(scripts))

	if err := chain.Execute(context.Background(), command("greet", "echo $who"), nil, params.Parameters{"who": "bob"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "echo $who") || !strings.Contains(buf.String(), "greet") {
		t.Errorf("log output = %q, want the raw action", buf.String())
	}
	if diff := cmp.Diff([]string{"echo bob"}, scripts.scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestLogLinkSilentAtInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	chain := NewChain(newTestChain().Interpreter(), params.DefaultChain(nil), WithLogger(logger)).
		Register(NewLogLink()).
		Register(CommandLineLinkFor(&scriptRecorder{}))

	if err := chain.Execute(context.Background(), command("greet", "echo hi"), nil, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("log output = %q, want none outside verbose mode", buf.String())
	}
}

func TestCommandLineLinkPropagatesRunError(t *testing.T) {
	t.Parallel()

	boom := errors.New("exit status 1")
	scripts := &scriptRecorder{err: boom}
	chain := newTestChain().Register(CommandLineLinkFor(scripts))

	err := chain.Execute(context.Background(), command("x", "false", "echo never"), []string{"arg"}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"false"}, scripts.scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"arg"}}, scripts.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}
