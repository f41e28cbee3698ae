// SPDX-License-Identifier: MPL-2.0

// Package main is the entry point for the prun CLI.
package main

import "github.com/invowk/prun/cmd/prun"

func main() {
	cmd.Execute()
}
