// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrEmptyTable is returned by the renderers when there are no commands to
// list. Column alignment is undefined over an empty table, so the condition
// is rejected up front instead of producing empty output.
var ErrEmptyTable = errors.New("command table is empty")

type (
	// Entry is one (name, help) row inside a listing group.
	Entry struct {
		Name string
		Help string
	}

	// Group is all commands of one kind, sorted by name, under the kind's
	// display label.
	Group struct {
		Label    string
		Commands []Entry
	}
)

// GroupByKind splits the table into listing groups following the kind
// catalog's order. Kinds with no commands are omitted entirely. Within a
// group entries are sorted lexicographically by name.
func GroupByKind(table CommandTable) []Group {
	byKind := make(map[Kind][]Entry)
	for name, d := range table {
		byKind[d.Kind] = append(byKind[d.Kind], Entry{Name: name, Help: d.Help})
	}

	var groups []Group
	for _, ki := range kindCatalog {
		entries := byKind[ki.Key]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		groups = append(groups, Group{Label: ki.Label, Commands: entries})
	}
	return groups
}

// WritePlain renders the aligned plain-text listing. The name column width is
// the maximum name length across all commands, not per group, so the columns
// line up for the whole listing. Groups are separated by a single blank line.
func WritePlain(w io.Writer, table CommandTable) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}

	width := 0
	for name := range table {
		if len(name) > width {
			width = len(name)
		}
	}

	sep := ""
	for _, g := range GroupByKind(table) {
		if _, err := fmt.Fprintf(w, "%s%s:\n", sep, g.Label); err != nil {
			return err
		}
		sep = "\n"
		for _, e := range g.Commands {
			if _, err := fmt.Fprintf(w, "  %-*s  %s\n", width, e.Name, e.Help); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMarkup renders the listing as documentation markup: each kind label
// underlined with tildes, then a cross-reference line and indented help per
// command, with a blank line closing every group.
func WriteMarkup(w io.Writer, table CommandTable) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}

	for _, g := range GroupByKind(table) {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", g.Label, strings.Repeat("~", len(g.Label))); err != nil {
			return err
		}
		for _, e := range g.Commands {
			if _, err := fmt.Fprintf(w, "linkstg:%s[]::\n    %s\n", e.Name, e.Help); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
