// SPDX-License-Identifier: MPL-2.0

package cmdcache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"stacked-cli/internal/registry"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the cache file's name inside the cache directory.
const FileName = "cmdlist.toml"

// ErrCorrupt marks a cache file that exists but cannot be used. Callers
// match it with errors.Is to tell corruption apart from a missing file.
var ErrCorrupt = errors.New("command cache is corrupt")

type (
	// entry is one cached command. The kind is stored as its display label,
	// matching what listings show and keeping the file greppable.
	entry struct {
		Name   string `toml:"name"`
		Module string `toml:"module"`
		Kind   string `toml:"kind"`
		Help   string `toml:"help"`
	}

	document struct {
		Commands []entry `toml:"command"`
	}
)

// Read loads the cached command table from path. A missing file is reported
// as-is so callers can distinguish "not generated" (fs.ErrNotExist) from a
// corrupt cache, which must not be papered over.
func Read(path string) (registry.CommandTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode command cache %s: %w: %w", path, ErrCorrupt, err)
	}

	table := make(registry.CommandTable, len(doc.Commands))
	for _, e := range doc.Commands {
		kind, ok := registry.KindForLabel(e.Kind)
		if !ok {
			return nil, fmt.Errorf("command cache %s: entry %q has unknown kind label %q: %w",
				path, e.Name, e.Kind, ErrCorrupt)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("command cache %s: entry with empty name: %w", path, ErrCorrupt)
		}
		table[e.Name] = registry.CommandDescriptor{
			Name:   e.Name,
			Module: e.Module,
			Kind:   kind,
			Help:   e.Help,
		}
	}
	return table, nil
}

// Write serializes the table to path, creating parent directories as needed.
// Entries are sorted by name so regenerating an unchanged table produces a
// byte-identical file.
func Write(path string, table registry.CommandTable) error {
	doc := document{Commands: make([]entry, 0, len(table))}
	for name, d := range table {
		label, err := d.Kind.Label()
		if err != nil {
			return fmt.Errorf("serialize command cache: %w", err)
		}
		doc.Commands = append(doc.Commands, entry{
			Name:   name,
			Module: d.Module,
			Kind:   label,
			Help:   d.Help,
		})
	}
	sort.Slice(doc.Commands, func(i, j int) bool {
		return doc.Commands[i].Name < doc.Commands[j].Name
	})

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode command cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write command cache %s: %w", path, err)
	}
	return nil
}

// LoadOrBuild returns the cached table when the cache exists, and otherwise
// falls back to build. Only "file does not exist" triggers the fallback;
// a cache that exists but fails to load propagates its error.
func LoadOrBuild(path string, build func() (registry.CommandTable, error)) (registry.CommandTable, error) {
	table, err := Read(path)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return build()
}
