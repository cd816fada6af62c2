// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// vocabulary is kept small so that random rows share cells often enough to
// produce interesting alignments.
var vocabulary = []string{"red", "green", "blue", "north", "south", "apple", "pear", "1", "2", "3"}

func randomCell(f *gofakeit.Faker) table.Cell {
	switch f.Number(0, 9) {
	case 0:
		return table.Absent()
	case 1:
		return table.Number(float64(f.Number(0, 5)))
	case 2:
		return table.Bool(f.Bool())
	}
	return table.String(vocabulary[f.Number(0, len(vocabulary)-1)])
}

func randomRow(f *gofakeit.Faker, maxCols int) table.Row {
	n := f.Number(1, maxCols)
	r := make(table.Row, n)
	for i := range r {
		r[i] = randomCell(f)
	}
	return r
}

// RandomTable returns a reproducible ragged table of numRows rows with up to
// maxCols cells each.
func RandomTable(seed int64, numRows, maxCols int) table.Table {
	f := gofakeit.New(seed)
	t := make(table.Table, numRows)
	for i := range t {
		t[i] = randomRow(f, maxCols)
	}
	return t
}

// MutateTable derives an incoming version of src: roughly pct percent of the
// rows are edited, some are removed, a few new rows are inserted and some
// neighbours swap places.
func MutateTable(seed int64, src table.Table, pct int) table.Table {
	f := gofakeit.New(seed)
	maxCols := src.MaxWidth()
	if maxCols == 0 {
		maxCols = 1
	}
	res := table.Table{}
	for _, row := range src {
		if f.Number(0, 99) < pct/3 {
			continue
		}
		row = row.Clone()
		if len(row) > 0 && f.Number(0, 99) < pct {
			row[f.Number(0, len(row)-1)] = randomCell(f)
		}
		res = append(res, row)
		if f.Number(0, 99) < pct/3 {
			res = append(res, randomRow(f, maxCols))
		}
	}
	for i := 1; i < len(res); i++ {
		if f.Number(0, 99) < pct/5 {
			res[i-1], res[i] = res[i], res[i-1]
		}
	}
	return res
}

// UniqueTable returns a table whose rows are pairwise distinct and share the
// same width.
func UniqueTable(t *testing.T, numRows, numCols int) table.Table {
	t.Helper()
	f := gofakeit.New(int64(numRows*31 + numCols))
	tbl := make(table.Table, numRows)
	for i := range tbl {
		r := make(table.Row, numCols)
		r[0] = table.String(fmt.Sprintf("row-%d", i))
		for j := 1; j < numCols; j++ {
			r[j] = table.String(f.Word())
		}
		tbl[i] = r
	}
	return tbl
}
