// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Profile files and the application config both follow the same flow:
// compile the schema, compile the user document, unify the document with a
// schema definition, validate, then decode into a Go value. Errors are
// reported with JSON-style paths (e.g. "profiles[0].commands[1].name") so
// users can find the offending field.
package cueutil
