// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stacked-cli/internal/registry"
	"stacked-cli/pkg/cueutil"

	"cuelang.org/go/cue"
	"github.com/charmbracelet/log"
)

// ManifestSuffix is the filename suffix discovery recognizes.
const ManifestSuffix = ".cue"

// markerField is the top-level field whose presence marks a CUE file as a
// command manifest. Files without it are helpers and are skipped.
const markerField = "usage"

//go:embed manifest_schema.cue
var manifestSchema string

type (
	// Manifest is the decoded command manifest.
	Manifest struct {
		Usage       string `json:"usage"`
		Name        string `json:"name,omitempty"`
		Kind        string `json:"kind"`
		Help        string `json:"help"`
		Exec        string `json:"exec,omitempty"`
		Description string `json:"description,omitempty"`
	}

	// LoadedManifest pairs a manifest with the module name derived from its
	// filename and the path it was loaded from.
	LoadedManifest struct {
		Module   string
		Path     string
		Manifest Manifest
	}

	// Discovery loads command manifests from a directory. It implements
	// registry.Source.
	Discovery struct {
		dir    string
		logger *log.Logger
	}
)

// New creates a Discovery over the given plugins directory.
func New(dir string) *Discovery {
	return &Discovery{dir: dir}
}

// SetLogger enables debug logging of discovered manifests.
func (d *Discovery) SetLogger(logger *log.Logger) {
	d.logger = logger
}

// Executable returns the command executable: the manifest's exec override if
// set, else "stg-<module>".
func (m LoadedManifest) Executable() string {
	if m.Manifest.Exec != "" {
		return m.Manifest.Exec
	}
	return "stg-" + m.Module
}

// CommandName returns the public name: the manifest's explicit name if set,
// else the module name.
func (m LoadedManifest) CommandName() string {
	if m.Manifest.Name != "" {
		return m.Manifest.Name
	}
	return m.Module
}

// Manifests loads every command manifest in the directory, in filename order.
// A missing plugins directory yields an empty result: a fresh install has no
// plugins yet. Any other failure is fatal. In particular a manifest that does
// not compile, or compiles but fails schema validation, halts discovery
// entirely: a broken manifest is a packaging defect, not a file to skip.
func (d *Discovery) Manifests() ([]LoadedManifest, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugins directory %s: %w", d.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ManifestSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var manifests []LoadedManifest
	for _, name := range names {
		path := filepath.Join(d.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", path, err)
		}

		v, err := cueutil.Compile(data, path)
		if err != nil {
			return nil, err
		}
		if !v.LookupPath(cue.ParsePath(markerField)).Exists() {
			// Helper file shared between manifests, not a command.
			continue
		}

		m, err := cueutil.DecodeWithSchema[Manifest](manifestSchema, data, "#Manifest", path)
		if err != nil {
			return nil, err
		}

		lm := LoadedManifest{
			Module:   strings.TrimSuffix(name, ManifestSuffix),
			Path:     path,
			Manifest: *m,
		}
		if d.logger != nil {
			d.logger.Debug("discovered command manifest",
				"module", lm.Module, "name", lm.CommandName(), "kind", m.Kind)
		}
		manifests = append(manifests, lm)
	}
	return manifests, nil
}

// Descriptors implements registry.Source.
func (d *Discovery) Descriptors() ([]registry.CommandDescriptor, error) {
	manifests, err := d.Manifests()
	if err != nil {
		return nil, err
	}

	descs := make([]registry.CommandDescriptor, 0, len(manifests))
	for _, m := range manifests {
		descs = append(descs, registry.CommandDescriptor{
			Name:   m.Manifest.Name,
			Module: m.Module,
			Kind:   registry.Kind(m.Manifest.Kind),
			Help:   m.Manifest.Help,
		})
	}
	return descs, nil
}

// Find returns the manifest whose public name matches, or false when the
// name belongs to no plugin.
func (d *Discovery) Find(name string) (LoadedManifest, bool, error) {
	manifests, err := d.Manifests()
	if err != nil {
		return LoadedManifest{}, false, err
	}
	for _, m := range manifests {
		if m.CommandName() == name {
			return m, true, nil
		}
	}
	return LoadedManifest{}, false, nil
}
