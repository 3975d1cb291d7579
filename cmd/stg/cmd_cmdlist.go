// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"stacked-cli/internal/cmdcache"
	"stacked-cli/internal/config"
	"stacked-cli/internal/issue"
	"stacked-cli/internal/registry"

	"github.com/spf13/cobra"
)

var (
	// cacheOutput overrides the cache destination (--output).
	cacheOutput string

	cmdlistCmd = &cobra.Command{
		Use:   "cmdlist",
		Short: "Inspect and maintain the command list",
		Long: `Inspect and maintain stg's command list.

The list is assembled from the CUE manifests in the commands directory
and the aliases in your config file, grouped into sections by kind.`,
	}

	cmdlistShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the command list grouped by section",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			table, err := commandTable()
			if err != nil {
				if errors.Is(err, cmdcache.ErrCorrupt) {
					explain(issue.CacheCorruptId)
				}
				return issue.WrapWithOperation(err, "build command list")
			}
			return registry.WritePlain(cobraCmd.OutOrStdout(), table)
		},
	}

	cmdlistDocCmd = &cobra.Command{
		Use:   "doc",
		Short: "Print the command list as documentation markup",
		Long: `Print the command list as documentation markup.

Each section becomes a tilde-underlined heading and each command a
linkstg macro, ready for inclusion in the manual sources. The list is
always rebuilt from the manifests so generated docs never go stale.`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			table, err := buildTable(config.Get())
			if err != nil {
				return issue.WrapWithOperation(err, "build command list")
			}
			return registry.WriteMarkup(cobraCmd.OutOrStdout(), table)
		},
	}

	cmdlistCacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Rebuild the cached command list",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg := config.Get()
			table, err := buildTable(cfg)
			if err != nil {
				return issue.WrapWithOperation(err, "build command list")
			}

			path := cfg.CachePath
			if cacheOutput != "" {
				path = cacheOutput
			}
			if err := cmdcache.Write(path, table); err != nil {
				return issue.WrapWithContext(err, "write command list cache", path)
			}
			if verbose {
				fmt.Fprintf(cobraCmd.OutOrStdout(), "wrote %d commands to %s\n", len(table), path)
			}
			return nil
		},
	}
)

func init() {
	cmdlistCacheCmd.Flags().StringVarP(&cacheOutput, "output", "o", "", "write the cache to this path instead of the default")

	cmdlistCmd.AddCommand(cmdlistShowCmd)
	cmdlistCmd.AddCommand(cmdlistDocCmd)
	cmdlistCmd.AddCommand(cmdlistCacheCmd)
}
