// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for config and cache directories.
	AppName = "stacked"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// envPrefix namespaces environment overrides (STG_PLUGINS_DIR etc.).
	envPrefix = "STG"
)

type (
	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the loaded user configuration.
	Config struct {
		// PluginsDir is the directory scanned for command manifests.
		PluginsDir string `mapstructure:"plugins_dir"`
		// CachePath is the generated command-table cache file.
		CachePath string `mapstructure:"cache_path"`
		// Aliases maps alias name to expansion. An expansion starting with
		// "!" is a shell command; anything else expands to stg arguments.
		Aliases map[string]string `mapstructure:"alias"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}
)

// ConfigDir returns the stg configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// CacheDir returns the directory for generated files, honoring the test
// override before falling back to the OS user cache dir.
func CacheDir() (string, error) {
	if cacheDirOverride != "" {
		return cacheDirOverride, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{Aliases: map[string]string{}}

	if confDir, err := ConfigDir(); err == nil {
		cfg.PluginsDir = filepath.Join(confDir, "commands")
	}
	if cacheDir, err := CacheDir(); err == nil {
		cfg.CachePath = filepath.Join(cacheDir, "cmdlist.toml")
	}
	return cfg
}

// Load reads the config file and environment overrides, stores the result as
// the process-wide configuration, and returns it. A missing config file is
// fine; a config file that exists but cannot be parsed is not.
func Load() (*Config, error) {
	cfg, err := loadWithOptions(LoadOptions{ConfigFilePath: configFilePathOverride})
	if err != nil {
		return nil, err
	}
	current = cfg
	return cfg, nil
}

// Get returns the process-wide configuration, loading defaults if Load has
// not run yet.
func Get() *Config {
	if current == nil {
		current = DefaultConfig()
	}
	return current
}

func loadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("plugins_dir", defaults.PluginsDir)
	v.SetDefault("cache_path", defaults.CachePath)
	v.SetDefault("ui.verbose", false)

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
	} else {
		confDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(confDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			// No config file: defaults plus environment only.
			return decodeConfig(v)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}
	return &cfg, nil
}
