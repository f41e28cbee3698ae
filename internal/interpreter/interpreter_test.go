// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mapResolver answers from a map and counts lookups per name.
type mapResolver struct {
	values map[string]string
	calls  map[string]int
	err    error
}

func newMapResolver(values map[string]string) *mapResolver {
	return &mapResolver{values: values, calls: map[string]int{}}
}

func (m *mapResolver) Resolve(_ context.Context, name string) (string, bool, error) {
	m.calls[name]++
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[name]
	return v, ok, nil
}

func TestInterpret(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"name":   "world",
		"target": "git",
		"empty":  "",
		"path":   "/tmp/a b",
	}

	tests := []struct {
		name   string
		action string
		want   string
	}{
		{name: "no placeholders", action: "echo hello", want: "echo hello"},
		{name: "short form", action: "echo $name", want: "echo world"},
		{name: "braced form", action: "echo ${name}!", want: "echo world!"},
		{name: "inside double quotes", action: `echo "hi $name"`, want: `echo "hi world"`},
		{name: "single quotes untouched", action: `echo '$name'`, want: `echo '$name'`},
		{name: "absent left verbatim", action: "echo $HOME/$name", want: "echo $HOME/world"},
		{name: "empty value substituted", action: "echo [$empty]", want: "echo []"},
		{name: "complex expansion untouched", action: "echo ${name:-x} ${#name}", want: "echo ${name:-x} ${#name}"},
		{name: "positional untouched", action: "echo $1 $@", want: "echo $1 $@"},
		{name: "repeated name", action: "echo $name $name", want: "echo world world"},
		{name: "profile switch", action: "profile:$target", want: "profile:git"},
		{name: "value not re-expanded", action: "ls $path", want: "ls /tmp/a b"},
		{name: "command substitution", action: "echo $(basename $path)", want: "echo $(basename /tmp/a b)"},
		{name: "unparseable falls back to scan", action: "echo $name ${target} (", want: "echo world git ("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Interpret(context.Background(), tt.action, newMapResolver(values))
			if err != nil {
				t.Fatalf("Interpret(%q) error = %v", tt.action, err)
			}
			if got != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.action, got, tt.want)
			}
		})
	}
}

func TestInterpretResolvesEachNameOnce(t *testing.T) {
	t.Parallel()

	r := newMapResolver(map[string]string{"a": "1"})
	if _, err := New().Interpret(context.Background(), "echo $a ${a} $a $b $b", r); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 1}, r.calls); diff != "" {
		t.Errorf("resolve calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpretOnlyResolvesReferencedNames(t *testing.T) {
	t.Parallel()

	r := newMapResolver(map[string]string{"a": "1", "password": "x"})
	if _, err := New().Interpret(context.Background(), "echo $a", r); err != nil {
		t.Fatal(err)
	}
	if r.calls["password"] != 0 {
		t.Error("unreferenced parameter was resolved")
	}
}

func TestInterpretPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := newMapResolver(nil)
	r.err = boom

	if _, err := New().Interpret(context.Background(), "echo $a", r); !errors.Is(err, boom) {
		t.Errorf("Interpret() error = %v, want boom", err)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := New().Names(`echo $b "${a}" '$c' $b ${d:-x}`)
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
