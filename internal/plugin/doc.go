// SPDX-License-Identifier: MPL-2.0

// Package plugin discovers patch-stack commands from CUE manifests in the
// plugins directory. Each manifest describes one external command executable;
// the directory may also hold helper CUE files, which are recognized by the
// absence of the usage field and skipped.
package plugin
