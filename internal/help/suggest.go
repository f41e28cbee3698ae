// SPDX-License-Identifier: MPL-2.0

package help

import (
	"fmt"
	"io"

	"github.com/agext/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/invowk/prun/internal/executor"
	"github.com/invowk/prun/pkg/profile"
)

const (
	// DefaultMaxSuggestions is how many names Suggester offers.
	DefaultMaxSuggestions = 3
	// maxTypoDistance is the edit distance under which a name counts as a typo.
	maxTypoDistance = 2
)

// Suggester prints close matches for unknown command names.
type Suggester struct {
	out io.Writer
	max int
}

var _ executor.Suggester = (*Suggester)(nil)

// NewSuggester returns a Suggester writing to out.
func NewSuggester(out io.Writer) *Suggester {
	return &Suggester{out: out, max: DefaultMaxSuggestions}
}

// Suggest implements executor.Suggester.
func (s *Suggester) Suggest(prof *profile.Profile, err *executor.CommandNotFoundError) {
	fmt.Fprintln(s.out, warnStyle.Render(fmt.Sprintf("Command %q not found in profile %q.", err.Name, err.Profile)))

	names := Suggestions(prof, err.Name, s.max)
	if len(names) == 0 {
		fmt.Fprintln(s.out, legendStyle.Render("Run `prun run` to list the available commands."))
		return
	}
	fmt.Fprintln(s.out, "Did you mean?")
	for _, name := range names {
		fmt.Fprintln(s.out, "  "+nameStyle.Render(name))
	}
}

// Suggestions returns up to limit command names of prof close to name:
// fuzzy subsequence matches first, then names within a small edit distance.
func Suggestions(prof *profile.Profile, name string, limit int) []string {
	if prof == nil || name == "" || limit <= 0 {
		return nil
	}

	names := prof.CommandNames()
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if !seen[s] && len(out) < limit {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, m := range fuzzy.Find(name, names) {
		add(m.Str)
	}
	for _, candidate := range names {
		if levenshtein.Distance(name, candidate, nil) <= maxTypoDistance {
			add(candidate)
		}
	}
	return out
}
