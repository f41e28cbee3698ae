// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/invowk/prun/internal/config"
	"github.com/invowk/prun/internal/executor"
	"github.com/invowk/prun/internal/issue"
	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/internal/runtime"
	"github.com/invowk/prun/internal/secret"
	"github.com/invowk/prun/pkg/profile"
)

// issueStyle is the glamour style issues are rendered with.
const issueStyle = "notty"

// formatErrorForDisplay formats an error for user display. An
// ActionableError uses its Format method, which shows the full error chain
// in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueFor maps an error to the issue documenting it.
func issueFor(err error) (issue.Id, bool) {
	var verr *profile.ValidationError
	switch {
	case errors.Is(err, executor.ErrProfileNotFound):
		return issue.ProfileNotFoundId, true
	case errors.Is(err, executor.ErrNoExecuteDefined):
		return issue.NoExecuteDefinedId, true
	case errors.Is(err, params.ErrSecretRequired):
		return issue.SecretRequiredId, true
	case errors.Is(err, secret.ErrDecrypt):
		return issue.DecryptFailedId, true
	case errors.Is(err, runtime.ErrInvalidRuntimeType):
		return issue.InvalidRuntimeModeId, true
	case errors.Is(err, runtime.ErrShellNotFound):
		return issue.ShellNotFoundId, true
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, true
	case errors.As(err, &verr), errors.Is(err, profile.ErrUnsupportedFormat):
		return issue.ProfileParseErrorId, true
	case errors.Is(err, fs.ErrNotExist):
		return issue.ProfileFileNotFoundId, true
	}
	var exitErr *runtime.ExitError
	if errors.As(err, &exitErr) {
		return issue.ScriptExecutionFailedId, true
	}
	return 0, false
}

// renderError writes err to w. In verbose mode the matching issue page is
// rendered after the message.
func renderError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if !verbose {
		return
	}
	id, ok := issueFor(err)
	if !ok {
		return
	}
	if rendered, rerr := issue.Get(id).Render(issueStyle); rerr == nil {
		fmt.Fprint(w, rendered)
	}
}

// exitCode returns the process exit status for err. A failed action keeps
// the exit status of its shell.
func exitCode(err error) int {
	var exitErr *runtime.ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}
