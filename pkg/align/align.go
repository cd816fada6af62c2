// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Package align pairs the rows of a source table with the rows of an incoming
// table. Pairing is greedy: each incoming row, in order, claims the unclaimed
// source row that shares the most cells with it at the same positions. The
// result is deterministic but not a globally optimal assignment, an earlier
// incoming row may claim a source row that would fit a later one better.
package align

import (
	"fmt"

	"github.com/wrgl/sheetmerge/pkg/table"
)

// Match asserts that source row Source corresponds to incoming row Incoming.
type Match struct {
	Source   int `json:"s" yaml:"s"`
	Incoming int `json:"i" yaml:"i"`
}

func (m Match) String() string {
	return fmt.Sprintf("%d<->%d", m.Source, m.Incoming)
}

// Score counts the positions within the overlapping prefix of a and b that
// hold equal cells. Trailing cells of the longer row are ignored.
func Score(a, b table.Row) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	score := 0
	for k := 0; k < n; k++ {
		if a[k].Equal(b[k]) {
			score++
		}
	}
	return score
}

// Align returns the matches between source and incoming ordered by incoming
// index. No source or incoming index appears in more than one match. Rows
// without any positive-score partner are left out.
func Align(source, incoming table.Table) []Match {
	claimed := make([]bool, len(source))
	matches := []Match{}
	for i, row := range incoming {
		best, bestScore := -1, 0
		for j, srcRow := range source {
			if claimed[j] {
				continue
			}
			if s := Score(srcRow, row); s > bestScore {
				best, bestScore = j, s
			}
		}
		if best >= 0 {
			claimed[best] = true
			matches = append(matches, Match{Source: best, Incoming: i})
		}
	}
	return matches
}

// Validate checks that every match points at an existing row and that no
// index is used twice.
func Validate(source, incoming table.Table, matches []Match) error {
	_, errs := split(len(source), len(incoming), matches)
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Filter splits matches into the ones Validate accepts and the rest. When two
// matches share an index the first one wins.
func Filter(source, incoming table.Table, matches []Match) (valid, invalid []Match) {
	valid, errs := split(len(source), len(incoming), matches)
	invalid = make([]Match, len(errs))
	for i, err := range errs {
		invalid[i] = err.Match
	}
	return valid, invalid
}

// InvalidMatchError describes why a match cannot be used.
type InvalidMatchError struct {
	Match  Match
	Reason string
}

func (e *InvalidMatchError) Error() string {
	return fmt.Sprintf("match %v: %s", e.Match, e.Reason)
}

func split(numSrc, numInc int, matches []Match) (valid []Match, errs []*InvalidMatchError) {
	srcSeen := map[int]struct{}{}
	incSeen := map[int]struct{}{}
	valid = make([]Match, 0, len(matches))
	for _, m := range matches {
		var reason string
		if m.Source < 0 || m.Source >= numSrc {
			reason = fmt.Sprintf("source index out of range [0, %d)", numSrc)
		} else if m.Incoming < 0 || m.Incoming >= numInc {
			reason = fmt.Sprintf("incoming index out of range [0, %d)", numInc)
		} else if _, ok := srcSeen[m.Source]; ok {
			reason = fmt.Sprintf("source row %d matched more than once", m.Source)
		} else if _, ok := incSeen[m.Incoming]; ok {
			reason = fmt.Sprintf("incoming row %d matched more than once", m.Incoming)
		}
		if reason != "" {
			errs = append(errs, &InvalidMatchError{Match: m, Reason: reason})
			continue
		}
		srcSeen[m.Source] = struct{}{}
		incSeen[m.Incoming] = struct{}{}
		valid = append(valid, m)
	}
	return valid, errs
}
