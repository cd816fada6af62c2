// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/colorstring"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// Colorize returns a colorstring colorizer that is a no-op unless w is a
// terminal.
func Colorize(w io.Writer) *colorstring.Colorize {
	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !IsTerminal(w),
		Reset:   true,
	}
}

// SummaryLine describes a table result in one line, e.g.
// "[yellow]1 modified[reset], [green]2 added[reset]".
func SummaryLine(r *compare.TableResult) string {
	switch r.Presence {
	case compare.PresenceSourceOnly:
		return fmt.Sprintf("[red]only in source[reset] (%d rows)", len(r.Source))
	case compare.PresenceIncomingOnly:
		return fmt.Sprintf("[green]only in incoming[reset] (%d rows)", len(r.Incoming))
	}
	s := r.Summary
	if !s.HasChanges() {
		return fmt.Sprintf("no changes (%d rows)", s.Unchanged)
	}
	parts := []string{}
	if s.Modified > 0 {
		parts = append(parts, fmt.Sprintf("[yellow]%d modified[reset]", s.Modified))
	}
	if s.Added > 0 {
		parts = append(parts, fmt.Sprintf("[green]%d added[reset]", s.Added))
	}
	if s.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("[red]%d deleted[reset]", s.Deleted))
	}
	return strings.Join(parts, ", ")
}

// PrintSummary writes one line per table with names padded to the same width.
func PrintSummary(w io.Writer, results []*compare.TableResult) {
	cs := Colorize(w)
	maxLen := 0
	for _, r := range results {
		if len(r.Name) > maxLen {
			maxLen = len(r.Name)
		}
	}
	for _, r := range results {
		padding := strings.Repeat(" ", maxLen-len(r.Name))
		fmt.Fprintln(w, cs.Color(fmt.Sprintf("[bold]%s[reset]%s  %s", r.Name, padding, SummaryLine(r))))
	}
}

func formatRow(r table.Row) string {
	return strings.Join(r.Strings(), ", ")
}

// PrintEvents writes the changed rows of a table, one event per line. Source
// rows are prefixed with "-" and incoming rows with "+".
func PrintEvents(w io.Writer, r *compare.TableResult) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if !IsTerminal(w) {
		for _, c := range []*color.Color{red, green, yellow} {
			c.DisableColor()
		}
	}
	for _, e := range r.Events {
		switch e.Type {
		case diff.Deleted:
			red.Fprintf(w, "  %s  - %s\n", e, formatRow(r.Source[e.Source]))
		case diff.Added:
			green.Fprintf(w, "  %s  + %s\n", e, formatRow(r.Incoming[e.Incoming]))
		case diff.Modified:
			yellow.Fprintf(w, "  %s\n", e)
			red.Fprintf(w, "    - %s\n", formatRow(r.Source[e.Source]))
			green.Fprintf(w, "    + %s\n", formatRow(r.Incoming[e.Incoming]))
		}
	}
}
