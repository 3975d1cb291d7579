// SPDX-License-Identifier: MPL-2.0

// Package registry holds the command table for the stg CLI: which commands
// exist, what kind they are, and their one-line help. The table is built once
// per invocation from descriptor sources (plugin manifests, config aliases)
// or loaded from the generated cache, and is read-only afterwards.
package registry
