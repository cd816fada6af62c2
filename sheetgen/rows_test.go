// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wrgl/sheetmerge/pkg/table"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func TestOneFifth(t *testing.T) {
	assert.Equal(t, 0, oneFifth(0))
	assert.Equal(t, 1, oneFifth(3))
	assert.Equal(t, 2, oneFifth(10))
}

func TestSelectIndices(t *testing.T) {
	m := newMutator(1)
	taken := map[int]struct{}{0: {}, 3: {}}
	offs := m.selectIndices(taken, 10, 5)
	assert.Equal(t, []int{1, 2, 4}, offs)
	assert.Len(t, taken, 5)
}

func TestAddRows(t *testing.T) {
	src := table.FromStrings([][]string{{"1", "q", "w"}, {"2", "a", "s"}, {"3", "z", "x"}})
	res := newMutator(2).addRows(2, src)
	assert.Len(t, res, 5)
	found := 0
	for _, row := range res {
		assert.Len(t, row, 3)
		for _, c := range row {
			assert.NotEmpty(t, c.String())
		}
		for _, r := range src {
			if row.Equal(r) {
				found++
			}
		}
	}
	assert.Equal(t, 3, found)
}

func TestRemoveRows(t *testing.T) {
	src := table.FromStrings([][]string{{"1"}, {"2"}, {"3"}, {"4"}})
	taken := map[int]struct{}{1: {}}
	res := newMutator(3).removeRows(taken, 2, src)
	assert.Len(t, res, 2)
	assert.Contains(t, res.Strings(), []string{"2"})
	assert.Len(t, taken, 1)
}

func TestModifyRows(t *testing.T) {
	src := table.FromStrings([][]string{{"a", "b", "c"}, {"1", "q", "w"}, {"2", "a", "s"}, {"3", "z", "x"}})
	taken := map[int]struct{}{0: {}}
	res := newMutator(4).modifyRows(taken, 2, src)
	assert.Len(t, res, 4)
	assert.Len(t, taken, 3)
	for i, row := range res {
		assert.Len(t, row, 3)
		if _, ok := taken[i]; ok && i > 0 {
			assert.False(t, row.Equal(src[i]), "row %d", i)
		} else {
			assert.True(t, row.Equal(src[i]), "row %d", i)
		}
	}
}

func TestMoveRows(t *testing.T) {
	src := testutils.UniqueTable(t, 10, 2)
	res := newMutator(5).moveRows(3, src)
	assert.Len(t, res, 10)
	assert.ElementsMatch(t, src.Strings(), res.Strings())
}

func TestMutateTableDeterministic(t *testing.T) {
	src := testutils.UniqueTable(t, 20, 3)
	mut := mutation{modRows: true, moveRows: true}
	a := newMutator(7).mutateTable(src, mut)
	b := newMutator(7).mutateTable(src, mut)
	assert.True(t, a.Equal(b))
	assert.Len(t, a, 20)
	assert.False(t, a.Equal(src))
	assert.True(t, src.Equal(testutils.UniqueTable(t, 20, 3)))
}
