// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the prun command line interface.
//
// `prun run` does not use cobra flag parsing: everything after the command
// name is collected into raw parameters for the executor, so commands can
// accept any --name value pair their profile files declare.
package cmd
