// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"testing"
)

type staticSource []CommandDescriptor

func (s staticSource) Descriptors() ([]CommandDescriptor, error) {
	return s, nil
}

type failingSource struct{ err error }

func (s failingSource) Descriptors() ([]CommandDescriptor, error) {
	return nil, s.err
}

func TestKinds_OrderAndLabels(t *testing.T) {
	kinds := Kinds()

	want := []KindInfo{
		{KindRepo, "Repository commands"},
		{KindStack, "Stack (branch) commands"},
		{KindPatch, "Patch commands"},
		{KindWorktree, "Index/worktree commands"},
		{KindAlias, "Alias commands"},
	}

	if len(kinds) != len(want) {
		t.Fatalf("Kinds() returned %d entries, want %d", len(kinds), len(want))
	}
	for i, ki := range kinds {
		if ki != want[i] {
			t.Errorf("Kinds()[%d] = %+v, want %+v", i, ki, want[i])
		}
	}
}

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind  Kind
		valid bool
	}{
		{KindRepo, true},
		{KindStack, true},
		{KindPatch, true},
		{KindWorktree, true},
		{KindAlias, true},
		{Kind("worktree"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.valid {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.valid)
		}
	}
}

func TestKind_Label(t *testing.T) {
	label, err := KindPatch.Label()
	if err != nil {
		t.Fatalf("Label() error: %v", err)
	}
	if label != "Patch commands" {
		t.Errorf("Label() = %q, want %q", label, "Patch commands")
	}

	_, err = Kind("bogus").Label()
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Label() for unknown kind: error = %v, want ErrUnknownKind", err)
	}
}

func TestKindForLabel_RoundTrip(t *testing.T) {
	for _, ki := range Kinds() {
		got, ok := KindForLabel(ki.Label)
		if !ok || got != ki.Key {
			t.Errorf("KindForLabel(%q) = (%q, %v), want (%q, true)", ki.Label, got, ok, ki.Key)
		}
	}

	if _, ok := KindForLabel("No such commands"); ok {
		t.Error("KindForLabel accepted an unknown label")
	}
}

func TestBuild_NameFallsBackToModule(t *testing.T) {
	src := staticSource{
		{Module: "push", Kind: KindPatch, Help: "Push patches onto the stack"},
		{Name: "add", Module: "addfiles", Kind: KindWorktree, Help: "Add files to the index"},
	}

	table, err := Build(src)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if _, ok := table["push"]; !ok {
		t.Error("descriptor without explicit name was not keyed by module name")
	}
	if _, ok := table["add"]; !ok {
		t.Error("descriptor with explicit name was not keyed by it")
	}
	if _, ok := table["addfiles"]; ok {
		t.Error("module name leaked into the table despite an explicit name")
	}
	if got := table["add"].Module; got != "addfiles" {
		t.Errorf("table[add].Module = %q, want %q", got, "addfiles")
	}
}

func TestBuild_UnknownKindIsFatal(t *testing.T) {
	src := staticSource{
		{Module: "push", Kind: KindPatch, Help: "ok"},
		{Module: "weird", Kind: Kind("worktree"), Help: "bad kind key"},
	}

	_, err := Build(src)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Build() error = %v, want ErrUnknownKind", err)
	}

	var uk *UnknownKindError
	if !errors.As(err, &uk) {
		t.Fatal("Build() error is not an *UnknownKindError")
	}
	if uk.Module != "weird" {
		t.Errorf("UnknownKindError.Module = %q, want %q", uk.Module, "weird")
	}
}

func TestBuild_DuplicateNameIsFatal(t *testing.T) {
	a := staticSource{{Module: "push", Kind: KindPatch, Help: "first"}}
	b := staticSource{{Name: "push", Module: "push2", Kind: KindPatch, Help: "second"}}

	_, err := Build(a, b)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("Build() error = %v, want ErrDuplicateName", err)
	}

	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatal("Build() error is not a *DuplicateNameError")
	}
	if dup.FirstModule != "push" || dup.SecondModule != "push2" {
		t.Errorf("DuplicateNameError modules = (%q, %q), want (push, push2)",
			dup.FirstModule, dup.SecondModule)
	}
}

func TestBuild_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("manifest dir unreadable")

	_, err := Build(failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Build() error = %v, want the source error", err)
	}
}
