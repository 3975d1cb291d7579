// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"stacked-cli/internal/registry"
)

func TestResolvePluginExecutable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "push.cue"), []byte(`usage: "[<patches>]"
kind: "patch"
help: "Push patches onto the stack"
exec: "git-stacked-push"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	withOverride := registry.CommandDescriptor{Name: "push", Module: "push", Kind: registry.KindPatch}
	exe, err := resolvePluginExecutable(dir, withOverride)
	if err != nil {
		t.Fatalf("resolvePluginExecutable() error: %v", err)
	}
	if exe != "git-stacked-push" {
		t.Errorf("exe = %q, want the manifest's exec override", exe)
	}

	// A command with no manifest on disk (stale cache entry) falls back
	// to the default executable name.
	stale := registry.CommandDescriptor{Name: "pop", Module: "pop", Kind: registry.KindPatch}
	exe, err = resolvePluginExecutable(dir, stale)
	if err != nil {
		t.Fatalf("resolvePluginExecutable() error: %v", err)
	}
	if exe != "stg-pop" {
		t.Errorf("exe = %q, want stg-pop", exe)
	}
}

func TestResolvePluginExecutable_BrokenManifestSurfacesError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.cue"), []byte(`usage: "unterminated
`), 0o644); err != nil {
		t.Fatal(err)
	}

	desc := registry.CommandDescriptor{Name: "push", Module: "push", Kind: registry.KindPatch}
	exe, err := resolvePluginExecutable(dir, desc)
	if err == nil {
		t.Fatal("resolvePluginExecutable() hid a manifest load failure")
	}
	if exe != "stg-push" {
		t.Errorf("exe = %q, want the stg-push fallback alongside the error", exe)
	}
}
