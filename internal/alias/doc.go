// SPDX-License-Identifier: MPL-2.0

// Package alias turns user-configured aliases into registry commands. An
// expansion beginning with "!" runs as a shell command in the embedded
// interpreter; any other expansion is a sequence of stg arguments.
package alias
