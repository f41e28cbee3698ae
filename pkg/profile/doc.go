// SPDX-License-Identifier: MPL-2.0

// Package profile defines profiles, the named collections of commands that
// prun dispatches to, and loads them from profile files.
//
// A profile file may be written in CUE, TOML, YAML or JSON. Every format is
// validated against the same CUE schema (profile_schema.cue): TOML and YAML
// documents are first converted to JSON, which CUE accepts natively.
//
// Several files can be merged into a Set. Profiles with the same name are
// merged, and a command defined by a later file replaces the earlier command
// of the same name.
package profile
