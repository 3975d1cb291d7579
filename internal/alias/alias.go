// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"stacked-cli/internal/config"
	"stacked-cli/internal/registry"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// shellPrefix marks an expansion as a shell command rather than stg arguments.
const shellPrefix = "!"

type (
	// Alias is one user-configured alias.
	Alias struct {
		Name      string
		Expansion string
	}

	// Source yields alias descriptors for the table builder. It implements
	// registry.Source.
	Source struct {
		cfg *config.Config
	}

	// IOStreams carries the stdio wiring for shell alias execution.
	IOStreams struct {
		In  io.Reader
		Out io.Writer
		Err io.Writer
	}
)

// NewSource creates a Source over the given configuration.
func NewSource(cfg *config.Config) *Source {
	return &Source{cfg: cfg}
}

// FromConfig returns the configured aliases sorted by name.
func FromConfig(cfg *config.Config) []Alias {
	aliases := make([]Alias, 0, len(cfg.Aliases))
	for name, expansion := range cfg.Aliases {
		aliases = append(aliases, Alias{Name: name, Expansion: expansion})
	}
	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Name < aliases[j].Name })
	return aliases
}

// Descriptors implements registry.Source.
func (s *Source) Descriptors() ([]registry.CommandDescriptor, error) {
	aliases := FromConfig(s.cfg)
	descs := make([]registry.CommandDescriptor, 0, len(aliases))
	for _, a := range aliases {
		descs = append(descs, registry.CommandDescriptor{
			Name:   a.Name,
			Module: "alias",
			Kind:   registry.KindAlias,
			Help:   a.Help(),
		})
	}
	return descs, nil
}

// Help returns the one-line help shown for the alias in listings.
func (a Alias) Help() string {
	return "Alias for: " + a.Expansion
}

// IsShell reports whether the expansion is a shell command.
func (a Alias) IsShell() bool {
	return strings.HasPrefix(a.Expansion, shellPrefix)
}

// Words returns the stg arguments a non-shell alias expands to. The
// expansion is split shell-style, so quoted arguments stay one word.
func (a Alias) Words() ([]string, error) {
	words, err := shell.Fields(a.Expansion, nil)
	if err != nil {
		return nil, fmt.Errorf("alias %q: split expansion: %w", a.Name, err)
	}
	return words, nil
}

// RunShell executes a shell alias in the embedded interpreter with the given
// extra arguments as positional parameters. The returned int is the exit
// status; a non-zero status comes with a nil error, mirroring os/exec.
func (a Alias) RunShell(ctx context.Context, args []string, streams IOStreams) (int, error) {
	if !a.IsShell() {
		return 0, fmt.Errorf("alias %q is not a shell alias", a.Name)
	}
	script := strings.TrimPrefix(a.Expansion, shellPrefix)

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), a.Name)
	if err != nil {
		return 0, fmt.Errorf("alias %q: script syntax error: %w", a.Name, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(streams.In, streams.Out, streams.Err),
	}
	// "--" keeps args like "-v" from being read as shell options.
	if len(args) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, args...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return 0, fmt.Errorf("alias %q: create interpreter: %w", a.Name, err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return int(status), nil
		}
		return 1, fmt.Errorf("alias %q: %w", a.Name, err)
	}
	return 0, nil
}
