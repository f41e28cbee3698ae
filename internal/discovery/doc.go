// SPDX-License-Identifier: MPL-2.0

// Package discovery locates prun profile files and merges them into a
// profile.Set.
//
// Files are loaded in increasing precedence: configured includes, the user
// configuration directory, then the working directory. A later file replaces
// same-named commands of an earlier one.
package discovery
