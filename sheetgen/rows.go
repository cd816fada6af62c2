// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package main

import (
	"sort"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/wrgl/sheetmerge/pkg/table"
)

func oneFifth(n int) int {
	m := n / 5
	if m == 0 && n > 0 {
		return 1
	}
	return m
}

type mutator struct {
	f *gofakeit.Faker
}

func newMutator(seed int64) *mutator {
	return &mutator{f: gofakeit.New(seed)}
}

func (m *mutator) randomValue() table.Cell {
	return table.String(m.f.LetterN(uint(4 + m.f.Number(0, 7))))
}

func (m *mutator) randomRow(width int) table.Row {
	r := make(table.Row, width)
	for i := range r {
		r[i] = m.randomValue()
	}
	return r
}

// selectIndices picks up to k distinct indices below n that are not in taken,
// marks them as taken and returns them sorted.
func (m *mutator) selectIndices(taken map[int]struct{}, k, n int) []int {
	if taken == nil {
		taken = map[int]struct{}{}
	}
	if free := n - len(taken); k > free {
		k = free
	}
	offs := make([]int, 0, k)
	for len(offs) < k {
		j := m.f.Number(0, n-1)
		if _, ok := taken[j]; ok {
			continue
		}
		taken[j] = struct{}{}
		offs = append(offs, j)
	}
	sort.Ints(offs)
	return offs
}

// modifyRows changes about a fifth of the cells of k rows. Modified row
// indices are added to taken.
func (m *mutator) modifyRows(taken map[int]struct{}, k int, t table.Table) table.Table {
	res := t.Clone()
	for _, off := range m.selectIndices(taken, k, len(res)) {
		row := res[off]
		if len(row) == 0 {
			res[off] = table.Row{m.randomValue()}
			continue
		}
		for _, i := range m.selectIndices(nil, oneFifth(len(row)), len(row)) {
			row[i] = m.randomValue()
		}
	}
	return res
}

// removeRows drops k rows that are not in taken.
func (m *mutator) removeRows(taken map[int]struct{}, k int, t table.Table) table.Table {
	cloned := map[int]struct{}{}
	for i := range taken {
		cloned[i] = struct{}{}
	}
	removed := map[int]struct{}{}
	for _, off := range m.selectIndices(cloned, k, len(t)) {
		removed[off] = struct{}{}
	}
	res := make(table.Table, 0, len(t)-len(removed))
	for i, row := range t {
		if _, ok := removed[i]; !ok {
			res = append(res, row)
		}
	}
	return res
}

// addRows inserts k random rows as wide as the widest row of t.
func (m *mutator) addRows(k int, t table.Table) table.Table {
	width := t.MaxWidth()
	if width == 0 {
		width = 1
	}
	added := map[int]struct{}{}
	for _, off := range m.selectIndices(nil, k, len(t)+k) {
		added[off] = struct{}{}
	}
	res := make(table.Table, 0, len(t)+k)
	j := 0
	for i := 0; i < len(t)+k; i++ {
		if _, ok := added[i]; ok {
			res = append(res, m.randomRow(width))
			continue
		}
		res = append(res, t[j])
		j++
	}
	return res
}

// moveRows moves k rows to random positions.
func (m *mutator) moveRows(k int, t table.Table) table.Table {
	res := append(table.Table{}, t...)
	if len(res) < 2 {
		return res
	}
	for _, off := range m.selectIndices(nil, k, len(res)) {
		row := res[off]
		res = append(res[:off], res[off+1:]...)
		to := m.f.Number(0, len(res))
		res = append(res[:to], append(table.Table{row}, res[to:]...)...)
	}
	return res
}

type mutation struct {
	modRows  bool
	moveRows bool
}

// mutateTable derives an incoming version of t. A fifth of the rows are
// modified, a fifth removed and as many added. Moved rows come last.
func (m *mutator) mutateTable(t table.Table, mut mutation) table.Table {
	k := oneFifth(len(t))
	if mut.modRows {
		taken := map[int]struct{}{}
		t = m.modifyRows(taken, k, t)
		t = m.removeRows(taken, k, t)
		t = m.addRows(k, t)
	}
	if mut.moveRows {
		t = m.moveRows(k, t)
	}
	return t
}
