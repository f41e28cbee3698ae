// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/prun/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/prun/config.cue on macOS, %APPDATA%\prun\config.cue
// on Windows), falling back to config.cue in the current directory. Files are validated
// against the embedded CUE schema (config_schema.cue). Every key can be overridden through
// the environment with the PRUN_ prefix, e.g. PRUN_DEFAULT_PROFILE or PRUN_UI_VERBOSE.
package config
