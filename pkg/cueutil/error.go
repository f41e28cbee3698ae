// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError is a CUE error flattened to "<path>: <message>" lines.
// It unwraps to the original CUE error.
type ValidationError struct {
	Filename string
	Lines    []string
	Cause    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Lines) == 1 {
		return e.Filename + ": " + e.Lines[0]
	}
	return e.Filename + ": validation failed:\n  " + strings.Join(e.Lines, "\n  ")
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// FormatError flattens a CUE error into a *ValidationError. Errors that did
// not come from CUE are wrapped with the file name.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}

	var ce cueerrors.Error
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filename, err)
	}

	list := cueerrors.Errors(err)
	lines := make([]string, 0, len(list))
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		if path == "" {
			lines = append(lines, msg)
			continue
		}
		msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		lines = append(lines, path+": "+msg)
	}
	if len(lines) == 0 {
		lines = append(lines, err.Error())
	}
	return &ValidationError{Filename: filename, Lines: lines, Cause: err}
}

// formatPath renders ["profiles", "0", "name"] as "profiles[0].name".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects documents larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
