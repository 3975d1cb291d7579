// SPDX-License-Identifier: MPL-2.0

// Package config loads stg's user configuration: where command manifests
// live, where the generated command cache sits, and the user's aliases.
// Configuration comes from a TOML file in the platform config directory,
// overridable through STG_* environment variables.
package config
