// SPDX-License-Identifier: MPL-2.0

// Package interpreter expands parameter placeholders in raw command actions.
//
// An action is parsed as a shell program and every simple parameter expansion
// ($name or ${name}) is a placeholder. Values come from a profile.Resolver,
// so only the names an action actually references are ever resolved.
// Placeholders the resolver cannot answer are left in place for the shell.
package interpreter
