// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/table"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func TestScore(t *testing.T) {
	a := table.Row{table.String("A"), table.Number(1), table.Bool(true)}
	assert.Equal(t, 3, Score(a, a))
	assert.Equal(t, 1, Score(a, table.Row{table.String("A"), table.Number(2)}))
	assert.Equal(t, 0, Score(a, table.Row{table.String("1"), table.String("1")}))
	assert.Equal(t, 2, Score(a, table.Row{table.String("A"), table.Number(1)}))
	assert.Equal(t, 0, Score(a, table.Row{}))
	assert.Equal(t, 1, Score(
		table.Row{table.Absent(), table.String("x")},
		table.Row{table.Absent(), table.String("y"), table.String("x")},
	))
	assert.Equal(t, 0, Score(table.Row{table.Absent()}, table.Row{table.String("")}))
}

func TestAlignScenario(t *testing.T) {
	source := table.FromStrings([][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}})
	incoming := table.FromStrings([][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}})
	assert.Equal(t, []Match{{0, 0}, {1, 1}}, Align(source, incoming))
}

func TestAlignTiesPreferLowestSourceIndex(t *testing.T) {
	source := table.FromStrings([][]string{{"x", "1"}, {"x", "2"}, {"x", "3"}})
	incoming := table.FromStrings([][]string{{"x", "9"}, {"x", "8"}})
	assert.Equal(t, []Match{{0, 0}, {1, 1}}, Align(source, incoming))
}

func TestAlignIsGreedy(t *testing.T) {
	source := table.FromStrings([][]string{{"a", "b", "c"}, {"a", "x", "x"}})
	incoming := table.FromStrings([][]string{{"a", "b", "z"}, {"a", "b", "c"}})
	// the first incoming row claims source row 0 although the second incoming
	// row is identical to it
	assert.Equal(t, []Match{{0, 0}, {1, 1}}, Align(source, incoming))
}

func TestAlignPrefixOnly(t *testing.T) {
	source := table.FromStrings([][]string{{"X", "Y"}})
	incoming := table.FromStrings([][]string{{"Q"}, {"X", "Y", "Z"}})
	assert.Equal(t, []Match{{0, 1}}, Align(source, incoming))
}

func TestAlignZeroScoreStaysUnmatched(t *testing.T) {
	source := table.FromStrings([][]string{{"a", "b"}})
	incoming := table.FromStrings([][]string{{"b", "a"}})
	assert.Empty(t, Align(source, incoming))
}

func TestAlignEmpty(t *testing.T) {
	tbl := table.FromStrings([][]string{{"a"}, {"b"}})
	assert.Empty(t, Align(nil, tbl))
	assert.Empty(t, Align(tbl, nil))
	assert.Empty(t, Align(table.Table{}, table.Table{}))
}

func TestAlignTypeSensitive(t *testing.T) {
	source := table.Table{{table.Number(1), table.String("a")}}
	incoming := table.Table{{table.String("1"), table.String("b")}}
	assert.Empty(t, Align(source, incoming))
}

func TestAlignIdentical(t *testing.T) {
	tbl := testutils.UniqueTable(t, 40, 4)
	matches := Align(tbl, tbl)
	require.Len(t, matches, tbl.NumRows())
	for i, m := range matches {
		assert.Equal(t, Match{i, i}, m)
	}
}

func TestAlignProperties(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		source := testutils.RandomTable(seed, 30, 4)
		incoming := testutils.MutateTable(seed+100, source, 30)
		matches := Align(source, incoming)
		require.NoError(t, Validate(source, incoming, matches))
		assert.Equal(t, matches, Align(source, incoming), "seed %d", seed)
		for k := 1; k < len(matches); k++ {
			assert.Less(t, matches[k-1].Incoming, matches[k].Incoming)
		}
		for _, m := range matches {
			assert.Greater(t, Score(source[m.Source], incoming[m.Incoming]), 0)
		}
	}
}

func TestValidate(t *testing.T) {
	tbl := table.FromStrings([][]string{{"a"}, {"b"}})
	assert.NoError(t, Validate(tbl, tbl, []Match{{0, 1}, {1, 0}}))
	assert.Error(t, Validate(tbl, tbl, []Match{{2, 0}}))
	assert.Error(t, Validate(tbl, tbl, []Match{{0, -1}}))
	assert.Error(t, Validate(tbl, tbl, []Match{{0, 0}, {0, 1}}))
	assert.Error(t, Validate(tbl, tbl, []Match{{0, 1}, {1, 1}}))
}

func TestMonotonic(t *testing.T) {
	kept, dropped := Monotonic([]Match{{3, 3}, {1, 2}, {0, 0}, {2, 1}})
	assert.Equal(t, []Match{{0, 0}, {2, 1}, {3, 3}}, kept)
	assert.Equal(t, []Match{{1, 2}}, dropped)

	kept, dropped = Monotonic([]Match{{0, 5}, {1, 1}, {2, 2}, {3, 3}})
	assert.Equal(t, []Match{{1, 1}, {2, 2}, {3, 3}}, kept)
	assert.Equal(t, []Match{{0, 5}}, dropped)

	kept, dropped = Monotonic(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)

	in := []Match{{2, 4}, {0, 1}, {1, 3}}
	kept, dropped = Monotonic(in)
	assert.Equal(t, []Match{{0, 1}, {1, 3}, {2, 4}}, kept)
	assert.Empty(t, dropped)
	assert.Equal(t, []Match{{2, 4}, {0, 1}, {1, 3}}, in)
	assert.True(t, IsMonotonic(in))
	assert.False(t, IsMonotonic([]Match{{0, 1}, {1, 0}}))
}

func TestFilter(t *testing.T) {
	tbl := table.FromStrings([][]string{{"a"}, {"b"}})
	valid, invalid := Filter(tbl, tbl, []Match{{0, 1}, {2, 0}, {1, -1}, {0, 0}, {1, 1}, {1, 0}})
	assert.Equal(t, []Match{{0, 1}, {1, 0}}, valid)
	assert.Equal(t, []Match{{2, 0}, {1, -1}, {0, 0}, {1, 1}}, invalid)

	valid, invalid = Filter(nil, nil, nil)
	assert.Empty(t, valid)
	assert.Empty(t, invalid)

	err := Validate(tbl, tbl, []Match{{0, 0}, {0, 1}})
	assert.Equal(t, "match 0<->1: source row 0 matched more than once", err.Error())
	var ime *InvalidMatchError
	require.ErrorAs(t, Validate(tbl, tbl, []Match{{5, 0}}), &ime)
	assert.Equal(t, Match{5, 0}, ime.Match)
}
