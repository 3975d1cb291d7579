// SPDX-License-Identifier: MPL-2.0

// Package docserve provides a read-only SSH server, built on the Wish
// library, that serves the rendered command list to connecting clients.
// It exists so that `stg serve` can expose the command documentation to
// tools and humans on machines without stg installed.
package docserve
