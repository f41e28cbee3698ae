// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// suggestionBullet prefixes every suggestion line printed by Format.
const suggestionBullet = "  • "

type (
	// ActionableError reports a failed prun operation together with the
	// file, profile or command it touched and hints for the user.
	ActionableError struct {
		// Operation is a verb phrase such as "load profiles".
		Operation string
		// Resource is the file, profile or command involved. Optional.
		Resource string
		// Suggestions are shown below the message by Format.
		Suggestions []string
		// Cause is the wrapped error. Optional.
		Cause error
	}

	// ErrorContext accumulates the pieces of an ActionableError.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load profiles").
	//		WithResource("./prun.cue").
	//		WithSuggestion("Check the file for syntax errors").
	//		Wrap(cause).
	//		BuildError()
	ErrorContext struct {
		draft ActionableError
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Wrap attaches operation and resource context to err. It returns nil when
// err is nil; resource may be empty.
func Wrap(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// HasSuggestions reports whether Format will print any hints.
func (e *ActionableError) HasSuggestions() bool { return len(e.Suggestions) > 0 }

// Format renders Error followed by a blank line and one bulleted line per
// suggestion. In verbose mode the numbered chain of causes is appended.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.HasSuggestions() {
		b.WriteByte('\n')
		for _, s := range e.Suggestions {
			b.WriteString("\n" + suggestionBullet + s)
		}
	}

	if verbose {
		if chain := causeChain(e.Cause); len(chain) > 0 {
			b.WriteString("\n\nError chain:")
			for i, msg := range chain {
				fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
			}
		}
	}
	return b.String()
}

// causeChain lists the messages of err and everything it wraps, outermost
// first.
func causeChain(err error) []string {
	var chain []string
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err.Error())
	}
	return chain
}

// WithOperation sets the failed operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

// WithResource sets the resource involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends one or more hints.
func (c *ErrorContext) WithSuggestion(hints ...string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, hints...)
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns a snapshot of the accumulated error, or nil while no
// operation has been set. Later changes to c do not affect the snapshot.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = append([]string(nil), c.draft.Suggestions...)
	return &ae
}

// BuildError is Build typed as error, so a missing operation yields a true
// nil interface.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
