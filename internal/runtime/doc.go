// SPDX-License-Identifier: MPL-2.0

// Package runtime runs command actions as shell scripts.
//
// Two runtimes are provided. The native runtime hands each script to the host
// shell as a separate process. The virtual runtime interprets scripts in
// process with mvdan.cc/sh, keeping one shell session alive so the working
// directory and shell variables of one script are visible to the next.
package runtime
