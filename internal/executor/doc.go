// SPDX-License-Identifier: MPL-2.0

// Package executor dispatches command invocations to profile commands.
//
// An Executor owns the profile registry and the active profile. It resolves
// a command by name and hands it to a Chain, which runs the command's actions
// one after another. Each action is offered to the registered links in
// registration order and the first link that accepts it handles it. The
// standard order is NewLogLink, ProfileLinkFor and CommandLineLinkFor; the
// command-line link accepts everything and must come last.
//
// An Executor serves one invocation at a time. Switching profiles mutates
// the active profile and re-enters Execute, so concurrent calls on the same
// Executor are not supported.
package executor
