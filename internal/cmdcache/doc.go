// SPDX-License-Identifier: MPL-2.0

// Package cmdcache reads and writes the generated command-table cache. The
// cache is a TOML document regenerated at build/install time so that plain
// invocations of stg never pay for a manifest scan. A missing cache simply
// means "not generated yet"; any other load failure is a packaging defect and
// propagates.
package cmdcache
