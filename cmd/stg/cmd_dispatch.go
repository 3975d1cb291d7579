// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"stacked-cli/internal/alias"
	"stacked-cli/internal/cmdcache"
	"stacked-cli/internal/config"
	"stacked-cli/internal/issue"
	"stacked-cli/internal/plugin"
	"stacked-cli/internal/registry"

	"github.com/spf13/cobra"
)

// commandSources returns the registry sources in registration order:
// plugin manifests first, config aliases second.
func commandSources(cfg *config.Config) []registry.Source {
	return []registry.Source{
		plugin.New(cfg.PluginsDir),
		alias.NewSource(cfg),
	}
}

// buildTable scans all sources and builds a fresh command table.
func buildTable(cfg *config.Config) (registry.CommandTable, error) {
	return registry.Build(commandSources(cfg)...)
}

// commandTable returns the command table, preferring the on-disk cache and
// falling back to a full scan only when no cache exists. An unreadable
// cache is an error, not a trigger for rescanning.
func commandTable() (registry.CommandTable, error) {
	cfg := config.Get()
	return cmdcache.LoadOrBuild(cfg.CachePath, func() (registry.CommandTable, error) {
		return buildTable(cfg)
	})
}

// registerDiscoveredCommands adds one cobra command per table entry so
// that `stg <name>` dispatches to the backing executable or alias.
func registerDiscoveredCommands(root *cobra.Command) error {
	table, err := commandTable()
	if err != nil {
		return err
	}

	for _, desc := range table {
		if hasCommand(root, desc.Name) {
			// Built-in commands win over discovered ones.
			continue
		}
		desc := desc
		root.AddCommand(&cobra.Command{
			Use:   desc.Name,
			Short: desc.Help,
			// All flags belong to the dispatched command, not to stg.
			DisableFlagParsing: true,
			SilenceUsage:       true,
			SilenceErrors:      true,
			RunE: func(cobraCmd *cobra.Command, args []string) error {
				return dispatch(cobraCmd.Context(), desc, args)
			},
		})
	}
	return nil
}

func hasCommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// dispatch runs a discovered command: aliases expand in-process, everything
// else execs the stg-<module> binary.
func dispatch(ctx context.Context, desc registry.CommandDescriptor, args []string) error {
	if desc.Kind == registry.KindAlias {
		return runAlias(ctx, desc.Name, args)
	}
	return runPlugin(ctx, desc, args)
}

// runAlias executes a config alias. Shell aliases run in the embedded
// interpreter; argument aliases re-invoke stg with the expanded arguments.
func runAlias(ctx context.Context, name string, args []string) error {
	cfg := config.Get()
	expansion, ok := cfg.Aliases[name]
	if !ok {
		return fmt.Errorf("alias %q is in the command list but not in the config", name)
	}
	a := alias.Alias{Name: name, Expansion: expansion}

	if a.IsShell() {
		status, err := a.RunShell(ctx, args, alias.IOStreams{
			In:  os.Stdin,
			Out: os.Stdout,
			Err: os.Stderr,
		})
		if err != nil {
			return err
		}
		if status != 0 {
			return &ExitError{Code: status}
		}
		return nil
	}

	words, err := a.Words()
	if err != nil {
		return err
	}
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate stg executable: %w", err)
	}
	return runExecutable(ctx, self, append(words, args...))
}

// runPlugin executes the external command backing a manifest entry. The
// manifest is re-read at dispatch time because only it knows about an
// exec override; a stale cache entry then falls back to the default name.
func runPlugin(ctx context.Context, desc registry.CommandDescriptor, args []string) error {
	cfg := config.Get()
	exe, err := resolvePluginExecutable(cfg.PluginsDir, desc)
	if err != nil {
		// The default executable name may still work, but a manifest
		// that fails to load at dispatch time should not be invisible.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		explain(issue.ManifestParseErrorId)
	}
	return runExecutable(ctx, exe, args)
}

// resolvePluginExecutable returns the executable for a plugin command. A
// discovery failure still yields the default "stg-<module>" name alongside
// the error so the caller can warn and proceed.
func resolvePluginExecutable(pluginsDir string, desc registry.CommandDescriptor) (string, error) {
	fallback := "stg-" + desc.Module
	m, ok, err := plugin.New(pluginsDir).Find(desc.Name)
	if err != nil {
		return fallback, err
	}
	if ok {
		return m.Executable(), nil
	}
	return fallback, nil
}

func runExecutable(ctx context.Context, exe string, args []string) error {
	c := exec.CommandContext(ctx, exe, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Code: ee.ExitCode()}
		}
		if errors.Is(err, exec.ErrNotFound) {
			explain(issue.PluginExecFailedId)
		}
		return fmt.Errorf("run %s: %w", exe, err)
	}
	return nil
}

// explain prints the rendered explanation for a known failure in verbose
// mode, where the extra screenful is welcome rather than noise.
func explain(id issue.Id) {
	if !verbose {
		return
	}
	i := issue.Get(id)
	if i == nil {
		return
	}
	if out, err := i.Render("auto"); err == nil {
		fmt.Fprint(os.Stderr, out)
	}
}
