// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluator for schema-validated decoding of
// user-authored files, with error messages that point at the offending field
// instead of dumping raw evaluator output.
package cueutil
