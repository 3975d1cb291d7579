// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"strings"
	"testing"
)

func TestGroupByKind_CatalogOrderAndOmission(t *testing.T) {
	table := CommandTable{
		"new":   {Name: "new", Module: "new", Kind: KindPatch, Help: "Create a new patch"},
		"clone": {Name: "clone", Module: "clone", Kind: KindRepo, Help: "Clone a repository"},
	}

	groups := GroupByKind(table)

	if len(groups) != 2 {
		t.Fatalf("GroupByKind() returned %d groups, want 2", len(groups))
	}
	if groups[0].Label != "Repository commands" {
		t.Errorf("first group = %q, want Repository commands", groups[0].Label)
	}
	if groups[1].Label != "Patch commands" {
		t.Errorf("second group = %q, want Patch commands", groups[1].Label)
	}
}

func TestGroupByKind_SortsWithinGroup(t *testing.T) {
	table := CommandTable{
		"zeta":  {Name: "zeta", Module: "zeta", Kind: KindRepo, Help: "help2"},
		"alpha": {Name: "alpha", Module: "alpha", Kind: KindRepo, Help: "help1"},
	}

	groups := GroupByKind(table)
	if len(groups) != 1 {
		t.Fatalf("GroupByKind() returned %d groups, want 1", len(groups))
	}

	got := groups[0].Commands
	if got[0].Name != "alpha" || got[1].Name != "zeta" {
		t.Errorf("group order = [%s, %s], want [alpha, zeta]", got[0].Name, got[1].Name)
	}
}

func TestWritePlain_Alignment(t *testing.T) {
	table := CommandTable{
		"a":        {Name: "a", Module: "a", Kind: KindRepo, Help: "short name"},
		"longname": {Name: "longname", Module: "longname", Kind: KindRepo, Help: "long name"},
	}

	var buf strings.Builder
	if err := WritePlain(&buf, table); err != nil {
		t.Fatalf("WritePlain() error: %v", err)
	}

	want := "Repository commands:\n" +
		"  a         short name\n" +
		"  longname  long name\n"
	if buf.String() != want {
		t.Errorf("WritePlain() output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWritePlain_BlankLineBetweenGroups(t *testing.T) {
	table := CommandTable{
		"clone": {Name: "clone", Module: "clone", Kind: KindRepo, Help: "Clone a repository"},
		"new":   {Name: "new", Module: "new", Kind: KindPatch, Help: "Create a new patch"},
		"pop":   {Name: "pop", Module: "pop", Kind: KindPatch, Help: "Pop patches off the stack"},
	}

	var buf strings.Builder
	if err := WritePlain(&buf, table); err != nil {
		t.Fatalf("WritePlain() error: %v", err)
	}

	out := buf.String()
	if strings.HasPrefix(out, "\n") {
		t.Error("output starts with a blank line before the first group")
	}
	if !strings.Contains(out, "Clone a repository\n\nPatch commands:\n") {
		t.Errorf("missing single blank separator between groups:\n%q", out)
	}
	// Width comes from the widest name across ALL groups, not per group.
	if !strings.Contains(out, "  new    Create a new patch\n") {
		t.Errorf("per-table alignment not applied:\n%q", out)
	}
}

func TestWriteMarkup_Format(t *testing.T) {
	table := CommandTable{
		"new": {Name: "new", Module: "new", Kind: KindPatch, Help: "Create a new patch"},
	}

	var buf strings.Builder
	if err := WriteMarkup(&buf, table); err != nil {
		t.Fatalf("WriteMarkup() error: %v", err)
	}

	want := "Patch commands\n" +
		"~~~~~~~~~~~~~~\n" +
		"\n" +
		"linkstg:new[]::\n" +
		"    Create a new patch\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("WriteMarkup() output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteMarkup_UnderlineMatchesLabelLength(t *testing.T) {
	table := CommandTable{
		"clone": {Name: "clone", Module: "clone", Kind: KindRepo, Help: "Clone a repository"},
	}

	var buf strings.Builder
	if err := WriteMarkup(&buf, table); err != nil {
		t.Fatalf("WriteMarkup() error: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 2 {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if len(lines[1]) != len(lines[0]) {
		t.Errorf("underline length %d does not match label length %d", len(lines[1]), len(lines[0]))
	}
	if strings.Trim(lines[1], "~") != "" {
		t.Errorf("underline contains non-tilde characters: %q", lines[1])
	}
}

func TestRenderers_EmptyTable(t *testing.T) {
	var buf strings.Builder

	if err := WritePlain(&buf, CommandTable{}); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("WritePlain(empty) error = %v, want ErrEmptyTable", err)
	}
	if err := WriteMarkup(&buf, CommandTable{}); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("WriteMarkup(empty) error = %v, want ErrEmptyTable", err)
	}
	if buf.Len() != 0 {
		t.Errorf("renderers wrote output for an empty table: %q", buf.String())
	}
}
