// SPDX-License-Identifier: MPL-2.0

// Package help renders command listings, per-command help and "did you mean"
// suggestions for unknown command names.
package help
