// SPDX-License-Identifier: MPL-2.0

package config

var (
	// current is the process-wide configuration set by Load().
	current *Config

	// configDirOverride allows tests to redirect the config directory.
	// os.UserHomeDir() does not reliably respect HOME on every platform,
	// so tests set this instead of the environment.
	configDirOverride string

	// cacheDirOverride allows tests to redirect the cache directory.
	cacheDirOverride string

	// configFilePathOverride is set by the --config flag.
	configFilePathOverride string
)

// Reset clears overrides and the loaded config. Call from test cleanup.
func Reset() {
	current = nil
	configDirOverride = ""
	cacheDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride redirects the config directory (tests).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetCacheDirOverride redirects the cache directory (tests).
func SetCacheDirOverride(dir string) {
	cacheDirOverride = dir
}

// SetConfigFilePathOverride forces loading a specific config file (--config).
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}
