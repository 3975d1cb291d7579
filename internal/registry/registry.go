// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
)

const (
	// KindRepo groups commands that operate on the repository as a whole.
	KindRepo Kind = "repo"
	// KindStack groups commands that operate on a patch stack (branch).
	KindStack Kind = "stack"
	// KindPatch groups commands that operate on individual patches.
	KindPatch Kind = "patch"
	// KindWorktree groups commands that operate on the index or worktree.
	KindWorktree Kind = "wc"
	// KindAlias groups user-defined alias commands.
	KindAlias Kind = "alias"
)

var (
	// ErrUnknownKind is the sentinel error wrapped by UnknownKindError.
	ErrUnknownKind = errors.New("unknown command kind")
	// ErrDuplicateName is the sentinel error wrapped by DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate command name")

	// kindCatalog defines the valid kinds and their display order. The order
	// is load-bearing: grouping and both renderers iterate it as-is.
	kindCatalog = []KindInfo{
		{Key: KindRepo, Label: "Repository commands"},
		{Key: KindStack, Label: "Stack (branch) commands"},
		{Key: KindPatch, Label: "Patch commands"},
		{Key: KindWorktree, Label: "Index/worktree commands"},
		{Key: KindAlias, Label: "Alias commands"},
	}
)

type (
	// Kind is the category key of a command (repo, stack, patch, wc, alias).
	Kind string

	// KindInfo pairs a kind key with its display label.
	KindInfo struct {
		Key   Kind
		Label string
	}

	// UnknownKindError is returned when a descriptor declares a kind key that
	// is not in the catalog. It wraps ErrUnknownKind for errors.Is().
	UnknownKindError struct {
		Module string
		Kind   Kind
	}

	// DuplicateNameError is returned when two descriptor sources claim the
	// same command name. It wraps ErrDuplicateName for errors.Is().
	DuplicateNameError struct {
		Name         string
		FirstModule  string
		SecondModule string
	}

	// CommandDescriptor is the registry's view of one command: the public
	// name, the implementation module it came from, its kind, and the
	// one-line help text. Descriptors are immutable once constructed.
	CommandDescriptor struct {
		// Name is the user-facing command name (unique table key).
		Name string
		// Module is the implementation unit name; plugin-backed commands
		// dispatch to the "stg-<module>" executable.
		Module string
		// Kind is the catalog key this command is grouped under.
		Kind Kind
		// Help is the one-line summary shown in listings.
		Help string
	}

	// CommandTable maps command name to descriptor. Insertion order is
	// irrelevant; consumers sort explicitly.
	CommandTable map[string]CommandDescriptor

	// Source yields command descriptors for the table builder. Implementations
	// include plugin manifest discovery and config-defined aliases.
	Source interface {
		Descriptors() ([]CommandDescriptor, error)
	}
)

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("module %q declares unknown command kind %q", e.Module, e.Kind)
}

// Unwrap returns the sentinel for errors.Is().
func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command name %q defined by both module %q and module %q",
		e.Name, e.FirstModule, e.SecondModule)
}

// Unwrap returns the sentinel for errors.Is().
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// Kinds returns the kind catalog in display order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kindCatalog))
	copy(out, kindCatalog)
	return out
}

// IsValid reports whether the kind key is in the catalog.
func (k Kind) IsValid() bool {
	for _, ki := range kindCatalog {
		if ki.Key == k {
			return true
		}
	}
	return false
}

// Label returns the display label for the kind key.
// Looking up a kind that is not in the catalog is a defect in the caller's
// command declaration and returns an UnknownKindError.
func (k Kind) Label() (string, error) {
	for _, ki := range kindCatalog {
		if ki.Key == k {
			return ki.Label, nil
		}
	}
	return "", &UnknownKindError{Kind: k}
}

// KindForLabel resolves a display label back to its kind key. Used by the
// cache loader, which stores labels on disk.
func KindForLabel(label string) (Kind, bool) {
	for _, ki := range kindCatalog {
		if ki.Label == label {
			return ki.Key, true
		}
	}
	return "", false
}

// Build assembles a CommandTable from the given sources. A descriptor with an
// empty Name takes its module name instead. A descriptor with a kind key
// missing from the catalog, or a name already claimed by another module, makes
// the whole build fail: both indicate a packaging defect, not a condition to
// paper over.
func Build(sources ...Source) (CommandTable, error) {
	table := make(CommandTable)
	for _, src := range sources {
		descs, err := src.Descriptors()
		if err != nil {
			return nil, err
		}
		for _, d := range descs {
			if d.Name == "" {
				d.Name = d.Module
			}
			if !d.Kind.IsValid() {
				return nil, &UnknownKindError{Module: d.Module, Kind: d.Kind}
			}
			if prev, ok := table[d.Name]; ok {
				return nil, &DuplicateNameError{
					Name:         d.Name,
					FirstModule:  prev.Module,
					SecondModule: d.Module,
				}
			}
			table[d.Name] = d
		}
	}
	return table, nil
}
