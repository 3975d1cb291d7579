// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing failure explanations and the
// ActionableError type used to carry operation context through error chains.
package issue
