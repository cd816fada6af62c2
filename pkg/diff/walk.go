// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package diff

import (
	"github.com/go-logr/logr"
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/table"
)

type walkOptions struct {
	logger *logr.Logger
}

type WalkOption func(o *walkOptions)

// WithDebugLogger logs matches that are ignored because they point outside
// the tables or reuse a row, and matches that are demoted to unmatched rows
// because their incoming index runs backwards.
func WithDebugLogger(logger *logr.Logger) WalkOption {
	return func(o *walkOptions) {
		o.logger = logger
	}
}

// Classify compares a matched pair of rows. Rows of equal length with at
// least one differing cell are Modified. Everything else is Unchanged,
// including rows of different length whose overlapping cells are all equal.
func Classify(src, inc table.Row) EventType {
	if len(src) != len(inc) {
		return Unchanged
	}
	for k, c := range src {
		if !c.Equal(inc[k]) {
			return Modified
		}
	}
	return Unchanged
}

// Walk turns an alignment into row events that follow the order of both
// tables: matched pairs in source order, each preceded by the unmatched
// source rows (Deleted) and unmatched incoming rows (Added) that sit between
// it and the previous pair. Unmatched rows after the last pair come last.
//
// Matches are expected to be monotonic, i.e. incoming indices increase along
// with source indices. Matches that break this order, and matches rejected by
// align.Validate, are treated as if they did not exist so that every row still
// appears in exactly one event.
func Walk(source, incoming table.Table, matches []align.Match, opts ...WalkOption) []RowEvent {
	o := &walkOptions{}
	for _, opt := range opts {
		opt(o)
	}
	valid, invalid := align.Filter(source, incoming, matches)
	kept, dropped := align.Monotonic(valid)
	if o.logger != nil {
		for _, m := range invalid {
			o.logger.Info("ignored invalid match", "source", m.Source, "incoming", m.Incoming)
		}
		for _, m := range dropped {
			o.logger.Info("demoted out of order match", "source", m.Source, "incoming", m.Incoming)
		}
	}
	srcClaimed := make([]bool, len(source))
	incClaimed := make([]bool, len(incoming))
	for _, m := range kept {
		srcClaimed[m.Source] = true
		incClaimed[m.Incoming] = true
	}

	events := make([]RowEvent, 0, len(source)+len(incoming))
	lastSrc, lastInc := -1, -1
	for _, m := range kept {
		for j := lastSrc + 1; j < m.Source; j++ {
			if !srcClaimed[j] {
				events = append(events, DeletedEvent(j))
			}
		}
		for j := lastInc + 1; j < m.Incoming; j++ {
			if !incClaimed[j] {
				events = append(events, AddedEvent(j))
			}
		}
		if Classify(source[m.Source], incoming[m.Incoming]) == Modified {
			events = append(events, ModifiedEvent(m.Source, m.Incoming))
		} else {
			events = append(events, UnchangedEvent(m.Source, m.Incoming))
		}
		lastSrc, lastInc = m.Source, m.Incoming
	}
	for j := lastSrc + 1; j < len(source); j++ {
		if !srcClaimed[j] {
			events = append(events, DeletedEvent(j))
		}
	}
	for j := lastInc + 1; j < len(incoming); j++ {
		if !incClaimed[j] {
			events = append(events, AddedEvent(j))
		}
	}
	return events
}
