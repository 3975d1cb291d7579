// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stacked-cli/internal/config"
	"stacked-cli/internal/issue"

	"github.com/spf13/cobra"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() { Version, Commit, BuildDate = origVersion, origCommit, origDate }()

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-08-25"
	got := getVersionString()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Errorf("getVersionString() = %q", got)
	}
}

func TestApplyEarlyConfigFlag(t *testing.T) {
	writeConfig := func(t *testing.T, pluginsDir string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "custom.toml")
		content := "plugins_dir = '" + pluginsDir + "'\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		args func(path string) []string
		want bool
	}{
		{"separate value", func(p string) []string { return []string{"--config", p, "cmdlist"} }, true},
		{"equals form", func(p string) []string { return []string{"cmdlist", "--config=" + p} }, true},
		{"absent", func(string) []string { return []string{"cmdlist", "show"} }, false},
		{"dangling flag", func(string) []string { return []string{"--config"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(config.Reset)
			config.Reset()
			config.SetConfigDirOverride(t.TempDir())
			config.SetCacheDirOverride(t.TempDir())

			path := writeConfig(t, "/from/custom/file")
			applyEarlyConfigFlag(tt.args(path))

			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			got := cfg.PluginsDir == "/from/custom/file"
			if got != tt.want {
				t.Errorf("custom config applied = %v, want %v (PluginsDir %q)", got, tt.want, cfg.PluginsDir)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	ae := &issue.ActionableError{
		Operation:   "build command list",
		Suggestions: []string{"check the commands directory"},
	}
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to build command list") {
		t.Errorf("missing operation: %q", got)
	}
	if !strings.Contains(got, "check the commands directory") {
		t.Errorf("missing suggestion: %q", got)
	}
}

// No config.Load() happens before registerStartupCommands here: the
// function itself must load the config file, or registration would run
// against defaults and miss both the configured plugins directory and
// every alias.
func TestRegisterStartupCommands_LoadsConfigBeforeRegistering(t *testing.T) {
	t.Cleanup(config.Reset)
	config.Reset()

	cfgDir := t.TempDir()
	config.SetConfigDirOverride(cfgDir)
	config.SetCacheDirOverride(t.TempDir())

	// Plugins live outside the default <configdir>/commands location, so
	// they are only found if the config file is actually read.
	pluginsDir := filepath.Join(t.TempDir(), "plugs")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := `usage: "[-a]"
kind: "patch"
help: "Print the patch series"
`
	if err := os.WriteFile(filepath.Join(pluginsDir, "series.cue"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgFile := "plugins_dir = '" + pluginsDir + "'\n\n[alias]\nspr = 'series --short'\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfgFile), 0o644); err != nil {
		t.Fatal(err)
	}

	root := &cobra.Command{Use: "stg"}
	registerStartupCommands(root, nil)

	if !hasCommand(root, "series") {
		t.Error("plugin from the configured plugins_dir was not registered")
	}
	if !hasCommand(root, "spr") {
		t.Error("config-file alias was not registered")
	}
}

func TestRegisterStartupCommands_HonorsConfigFlag(t *testing.T) {
	t.Cleanup(config.Reset)
	config.Reset()
	config.SetConfigDirOverride(t.TempDir())
	config.SetCacheDirOverride(t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[alias]\nfa = '!git fetch --all'\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := &cobra.Command{Use: "stg"}
	registerStartupCommands(root, []string{"--config", path, "fa"})

	if !hasCommand(root, "fa") {
		t.Error("alias from --config file was not registered")
	}
}

func TestHasCommand(t *testing.T) {
	root := &cobra.Command{Use: "stg"}
	root.AddCommand(&cobra.Command{Use: "series"})

	if !hasCommand(root, "series") {
		t.Error("hasCommand missed an existing command")
	}
	if hasCommand(root, "missing") {
		t.Error("hasCommand found a nonexistent command")
	}
}

func TestExitError(t *testing.T) {
	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q", bare.Error())
	}

	cause := errors.New("boom")
	wrapped := &ExitError{Code: 1, Err: cause}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is failed to find cause")
	}
}
