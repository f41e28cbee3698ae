// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that write profile and config
// files, failing the test on any I/O error.
package testutil
