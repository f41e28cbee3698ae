// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"context"
	"cmp"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/prun/pkg/profile"
)

var (
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)
)

type (
	// Interpreter expands placeholders through a resolver. It is stateless
	// and safe for concurrent use.
	Interpreter struct {
		variant syntax.LangVariant
	}

	// Option configures an Interpreter.
	Option func(*Interpreter)

	// token is one placeholder occurrence, as a byte range of the action.
	token struct {
		start, end int
		name       string
	}

	lookup struct {
		value string
		found bool
	}
)

var _ profile.Interpreter = (*Interpreter)(nil)

// WithVariant selects the shell dialect used to find placeholders.
func WithVariant(v syntax.LangVariant) Option {
	return func(i *Interpreter) { i.variant = v }
}

// New returns an Interpreter parsing actions as bash.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{variant: syntax.LangBash}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret returns action with every placeholder replaced by its resolved
// value. Each distinct name is resolved once. The first resolution error
// aborts interpretation.
func (i *Interpreter) Interpret(ctx context.Context, action string, r profile.Resolver) (string, error) {
	tokens := i.tokens(action)
	if len(tokens) == 0 {
		return action, nil
	}

	resolved := make(map[string]lookup, len(tokens))
	var sb strings.Builder
	sb.Grow(len(action))
	last := 0
	for _, tok := range tokens {
		res, seen := resolved[tok.name]
		if !seen {
			value, found, err := r.Resolve(ctx, tok.name)
			if err != nil {
				return "", err
			}
			res = lookup{value: value, found: found}
			resolved[tok.name] = res
		}
		if !res.found {
			continue
		}
		sb.WriteString(action[last:tok.start])
		sb.WriteString(res.value)
		last = tok.end
	}
	sb.WriteString(action[last:])
	return sb.String(), nil
}

// Names returns the distinct placeholder names of action in order of first
// appearance.
func (i *Interpreter) Names(action string) []string {
	var names []string
	seen := map[string]bool{}
	for _, tok := range i.tokens(action) {
		if !seen[tok.name] {
			seen[tok.name] = true
			names = append(names, tok.name)
		}
	}
	return names
}

func (i *Interpreter) tokens(action string) []token {
	if !strings.Contains(action, "$") {
		return nil
	}

	file, err := syntax.NewParser(syntax.Variant(i.variant)).Parse(strings.NewReader(action), "")
	if err != nil {
		return scanTokens(action)
	}

	var tokens []token
	syntax.Walk(file, func(node syntax.Node) bool {
		pe, ok := node.(*syntax.ParamExp)
		if !ok {
			return true
		}
		if isSimple(pe) {
			tokens = append(tokens, token{
				start: int(pe.Pos().Offset()),
				end:   int(pe.End().Offset()),
				name:  pe.Param.Value,
			})
		}
		return true
	})
	slices.SortFunc(tokens, func(a, b token) int { return cmp.Compare(a.start, b.start) })
	return tokens
}

// isSimple reports whether pe is a bare $name or ${name}.
func isSimple(pe *syntax.ParamExp) bool {
	if pe.Param == nil || pe.Excl || pe.Length || pe.Width {
		return false
	}
	if pe.Index != nil || pe.Slice != nil || pe.Repl != nil || pe.Exp != nil || pe.Names != 0 {
		return false
	}
	return identifierPattern.MatchString(pe.Param.Value)
}

func scanTokens(action string) []token {
	matches := placeholderPattern.FindAllStringSubmatchIndex(action, -1)
	tokens := make([]token, 0, len(matches))
	for _, m := range matches {
		tok := token{start: m[0], end: m[1]}
		if m[2] >= 0 {
			tok.name = action[m[2]:m[3]]
		} else {
			tok.name = action[m[4]:m[5]]
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
