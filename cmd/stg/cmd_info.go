// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"stacked-cli/internal/config"
	"stacked-cli/internal/issue"
	"stacked-cli/internal/plugin"
	"stacked-cli/internal/registry"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <command>",
	Short: "Show one command's documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		name := args[0]
		cfg := config.Get()
		out := cobraCmd.OutOrStdout()

		if expansion, ok := cfg.Aliases[name]; ok {
			fmt.Fprintln(out, TitleStyle.Render(name)+SubtitleStyle.Render(" (alias)"))
			fmt.Fprintf(out, "Expands to: %s\n", expansion)
			return nil
		}

		m, ok, err := plugin.New(cfg.PluginsDir).Find(name)
		if err != nil {
			return issue.WrapWithOperation(err, "load command manifests")
		}
		if !ok {
			explain(issue.CommandNotFoundId)
			return &issue.ActionableError{
				Operation: "find command",
				Resource:  name,
				Suggestions: []string{
					"run 'stg cmdlist show' to list available commands",
					"run 'stg cmdlist cache' if the list looks stale",
				},
			}
		}

		label, err := registry.Kind(m.Manifest.Kind).Label()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, TitleStyle.Render(m.CommandName())+SubtitleStyle.Render(" - "+m.Manifest.Help))
		fmt.Fprintf(out, "Section:    %s\n", label)
		fmt.Fprintf(out, "Usage:      stg %s %s\n", m.CommandName(), m.Manifest.Usage)
		fmt.Fprintf(out, "Executable: %s\n", m.Executable())

		if desc := strings.TrimSpace(m.Manifest.Description); desc != "" {
			rendered, err := glamour.Render(desc, "auto")
			if err != nil {
				return issue.WrapWithContext(err, "render command description", m.Path)
			}
			fmt.Fprintln(out, rendered)
		}
		return nil
	},
}
