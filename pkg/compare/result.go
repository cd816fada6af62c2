// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package compare

import (
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// Presence tells which workbooks hold a table.
type Presence int

const (
	PresenceBoth Presence = iota
	PresenceSourceOnly
	PresenceIncomingOnly
)

func (p Presence) String() string {
	switch p {
	case PresenceSourceOnly:
		return "source only"
	case PresenceIncomingOnly:
		return "incoming only"
	}
	return "both"
}

// TableResult is the outcome of comparing one table name. Matches, Events and
// Summary are only set when the table exists on both sides.
type TableResult struct {
	Name     string
	Presence Presence
	Source   table.Table
	Incoming table.Table
	Matches  []align.Match
	Events   []diff.RowEvent
	Summary  diff.Summary
}

// HasChanges reports whether merging could change this table.
func (r *TableResult) HasChanges() bool {
	return r.Presence != PresenceBoth || r.Summary.HasChanges()
}
