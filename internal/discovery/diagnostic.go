// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeShadowedFile is reported when a directory holds profile files in
	// more than one format. Only the first one is loaded.
	CodeShadowedFile = "profile_file_shadowed"
	// CodeUserDirUnavailable is reported when the user configuration
	// directory cannot be determined.
	CodeUserDirUnavailable = "user_dir_unavailable"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic is a non-fatal discovery finding returned to the caller
	// for rendering.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier such as CodeShadowedFile.
		Code    string
		Message string
		// Path is the file associated with the diagnostic, if any.
		Path  string
		Cause error
	}
)
