// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package merge

import (
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// Merge projects the walk over matches into a merged table. Matched pairs
// contribute the source row unless the selection switches them to incoming,
// unmatched rows contribute only when the selection keeps them. Rows are
// copied so the result never aliases the inputs. Selection indices without a
// corresponding row are ignored, and so are matches diff.Walk ignores.
func Merge(source, incoming table.Table, matches []align.Match, sel *Selection, opts ...diff.WalkOption) table.Table {
	return Project(source, incoming, diff.Walk(source, incoming, matches, opts...), sel)
}

// Project applies sel to events that were already produced by diff.Walk for
// the same tables.
func Project(source, incoming table.Table, events []diff.RowEvent, sel *Selection) table.Table {
	merged := table.Table{}
	for _, e := range events {
		switch e.Type {
		case diff.Deleted:
			if sel.Keeps(e) {
				merged = append(merged, source[e.Source].Clone())
			}
		case diff.Added:
			if sel.Keeps(e) {
				merged = append(merged, incoming[e.Incoming].Clone())
			}
		case diff.Modified, diff.Unchanged:
			if sel.KeepsIncoming(e.Source) {
				merged = append(merged, incoming[e.Incoming].Clone())
			} else {
				merged = append(merged, source[e.Source].Clone())
			}
		}
	}
	return merged
}
