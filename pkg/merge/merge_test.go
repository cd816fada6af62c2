// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/table"
	"github.com/wrgl/sheetmerge/pkg/testutils"
	"gopkg.in/yaml.v3"
)

func merge(source, incoming table.Table, sel *Selection) table.Table {
	return Merge(source, incoming, align.Align(source, incoming), sel)
}

func TestMergeScenario(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}})
	incoming := table.FromStrings([][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}})
	sel := &Selection{
		KeepDeleted:  NewIndexSet(),
		KeepAdded:    NewIndexSet(2),
		KeepIncoming: NewIndexSet(1),
	}
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}}, merge(source, incoming, sel).Strings())

	sel = &Selection{KeepDeleted: NewIndexSet(2)}
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}}, merge(source, incoming, sel).Strings())
}

func TestMergeEmptySelection(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}})
	incoming := table.FromStrings([][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}})
	expected := [][]string{{"A", "1"}, {"B", "2"}}
	assert.Equal(t, expected, merge(source, incoming, nil).Strings())
	assert.Equal(t, expected, merge(source, incoming, NewSelection()).Strings())
	assert.Equal(t, expected, merge(source, incoming, &Selection{}).Strings())
}

func TestMergeEmptySelectionKeepsOnlyMatchedSourceRows(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		source := testutils.RandomTable(seed, 30, 4)
		incoming := testutils.MutateTable(seed+11, source, 40)
		matches := align.Align(source, incoming)
		events := diff.Walk(source, incoming, matches)
		expected := table.Table{}
		for _, e := range events {
			if e.IsMatched() {
				expected = append(expected, source[e.Source])
			}
		}
		assert.True(t, expected.Equal(Merge(source, incoming, matches, nil)), "seed %d", seed)
	}
}

func TestMergeIdenticalRoundTrip(t *testing.T) {
	tbl := testutils.UniqueTable(t, 20, 3)
	sel := &Selection{
		KeepDeleted:  NewIndexSet(1, 2, 50),
		KeepAdded:    NewIndexSet(0, 7),
		KeepIncoming: NewIndexSet(3, 4, 5),
	}
	assert.True(t, tbl.Equal(merge(tbl, tbl, sel)))
	assert.True(t, tbl.Equal(merge(tbl, tbl, nil)))
}

func TestMergeKeepAll(t *testing.T) {
	source := table.FromStrings([][]string{{"k1", "a"}, {"gone", "x"}, {"k2", "b"}})
	incoming := table.FromStrings([][]string{{"new", "n"}, {"k1", "z"}, {"k2", "b"}})
	sel := &Selection{
		KeepDeleted:  NewIndexSet(1),
		KeepAdded:    NewIndexSet(0),
		KeepIncoming: NewIndexSet(0),
	}
	assert.Equal(t, [][]string{
		{"new", "n"},
		{"k1", "z"},
		{"gone", "x"},
		{"k2", "b"},
	}, merge(source, incoming, sel).Strings())
}

func TestMergeStaleSelection(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}, {"B", "2"}})
	incoming := table.FromStrings([][]string{{"A", "1"}, {"B", "3"}})
	sel := &Selection{
		KeepDeleted:  NewIndexSet(-1, 9),
		KeepAdded:    NewIndexSet(5),
		KeepIncoming: NewIndexSet(42),
	}
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}}, merge(source, incoming, sel).Strings())
}

func TestMergeInvalidMatches(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}, {"B", "2"}})
	incoming := table.FromStrings([][]string{{"A", "3"}})
	matches := []align.Match{{Source: 0, Incoming: 0}, {Source: 1, Incoming: 7}, {Source: 9, Incoming: 0}}
	sel := &Selection{KeepIncoming: NewIndexSet(0), KeepDeleted: NewIndexSet(1)}
	assert.Equal(t, [][]string{{"A", "3"}, {"B", "2"}}, Merge(source, incoming, matches, sel).Strings())
}

func TestMergeKeepIncomingBeatsKeepSource(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}})
	incoming := table.FromStrings([][]string{{"A", "2"}})
	sel := &Selection{KeepSource: NewIndexSet(0), KeepIncoming: NewIndexSet(0)}
	assert.Equal(t, [][]string{{"A", "2"}}, merge(source, incoming, sel).Strings())
}

func TestMergeCopiesRows(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}})
	incoming := table.FromStrings([][]string{{"A", "1"}})
	merged := merge(source, incoming, nil)
	merged[0][0] = table.String("Z")
	assert.Equal(t, "A", source[0][0].String())
}

func TestMergeLengthMismatchDefaultsToSource(t *testing.T) {
	source := table.FromStrings([][]string{{"X", "Y"}})
	incoming := table.FromStrings([][]string{{"X", "Y", "Z"}})
	assert.Equal(t, [][]string{{"X", "Y"}}, merge(source, incoming, nil).Strings())
	sel := &Selection{KeepIncoming: NewIndexSet(0)}
	assert.Equal(t, [][]string{{"X", "Y", "Z"}}, merge(source, incoming, sel).Strings())
}

func TestSelectionToggles(t *testing.T) {
	sel := &Selection{}
	sel.UseIncoming(3)
	assert.True(t, sel.KeepsIncoming(3))
	sel.UseSource(3)
	assert.False(t, sel.KeepsIncoming(3))
	assert.True(t, sel.KeepSource.Has(3))

	sel.SetKeep(diff.DeletedEvent(2), true)
	sel.SetKeep(diff.AddedEvent(4), true)
	sel.SetKeep(diff.UnchangedEvent(0, 0), true)
	assert.True(t, sel.Keeps(diff.DeletedEvent(2)))
	assert.True(t, sel.Keeps(diff.AddedEvent(4)))
	assert.False(t, sel.Keeps(diff.AddedEvent(2)))
	assert.False(t, sel.Keeps(diff.UnchangedEvent(0, 0)))
	assert.False(t, sel.IsEmpty())
	sel.SetKeep(diff.DeletedEvent(2), false)
	assert.False(t, sel.Keeps(diff.DeletedEvent(2)))

	var nilSel *Selection
	assert.True(t, nilSel.IsEmpty())
	assert.False(t, nilSel.Keeps(diff.DeletedEvent(0)))
}

func TestSelectionPrune(t *testing.T) {
	events := []diff.RowEvent{
		diff.UnchangedEvent(0, 0),
		diff.ModifiedEvent(1, 1),
		diff.DeletedEvent(2),
		diff.AddedEvent(2),
	}
	sel := &Selection{
		KeepDeleted:  NewIndexSet(1, 2),
		KeepAdded:    NewIndexSet(0, 2),
		KeepIncoming: NewIndexSet(0, 1),
		KeepSource:   NewIndexSet(2),
	}
	assert.Equal(t, &Selection{
		KeepDeleted:  NewIndexSet(2),
		KeepAdded:    NewIndexSet(2),
		KeepIncoming: NewIndexSet(1),
		KeepSource:   NewIndexSet(),
	}, sel.Prune(events))
}

func TestSelectionYAML(t *testing.T) {
	sel := &Selection{
		KeepDeleted:  NewIndexSet(5, 1),
		KeepIncoming: NewIndexSet(2),
	}
	b, err := yaml.Marshal(sel)
	require.NoError(t, err)
	raw := map[string][]int{}
	require.NoError(t, yaml.Unmarshal(b, &raw))
	assert.Equal(t, map[string][]int{
		"keepDeleted":  {1, 5},
		"keepIncoming": {2},
	}, raw)

	res := &Selection{}
	require.NoError(t, yaml.Unmarshal(b, res))
	assert.Equal(t, sel.KeepDeleted, res.KeepDeleted)
	assert.Equal(t, sel.KeepIncoming, res.KeepIncoming)
	assert.Empty(t, res.KeepAdded)
}
