// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table

// Row is an ordered list of cells. Rows of one table may differ in length.
type Row []Cell

// Clone returns a copy of the row that shares no memory with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Pad returns the row extended with absent cells up to width. The row is
// returned as is when it is already wide enough.
func (r Row) Pad(width int) Row {
	if len(r) >= width {
		return r
	}
	c := make(Row, width)
	copy(c, r)
	return c
}

// Strings renders every cell with Cell.String.
func (r Row) Strings() []string {
	sl := make([]string, len(r))
	for i, c := range r {
		sl[i] = c.String()
	}
	return sl
}

// Equal reports whether both rows have the same length and equal cells.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i, c := range r {
		if !c.Equal(o[i]) {
			return false
		}
	}
	return true
}

// Table is an ordered list of rows. The index of a row is its identity during
// one comparison.
type Table []Row

func (t Table) NumRows() int {
	return len(t)
}

// MaxWidth returns the length of the longest row.
func (t Table) MaxWidth() int {
	w := 0
	for _, r := range t {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Row returns the row at index i and false if i is out of range.
func (t Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t) {
		return nil, false
	}
	return t[i], true
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	c := make(Table, len(t))
	for i, r := range t {
		c[i] = r.Clone()
	}
	return c
}

func (t Table) Equal(o Table) bool {
	if len(t) != len(o) {
		return false
	}
	for i, r := range t {
		if !r.Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings renders the table as a grid of text.
func (t Table) Strings() [][]string {
	res := make([][]string, len(t))
	for i, r := range t {
		res[i] = r.Strings()
	}
	return res
}

// FromStrings builds a table of string cells. Empty strings stay strings.
func FromStrings(rows [][]string) Table {
	t := make(Table, len(rows))
	for i, sl := range rows {
		r := make(Row, len(sl))
		for j, s := range sl {
			r[j] = String(s)
		}
		t[i] = r
	}
	return t
}

// FromText builds a table whose cells are inferred with Infer.
func FromText(rows [][]string) Table {
	t := make(Table, len(rows))
	for i, sl := range rows {
		r := make(Row, len(sl))
		for j, s := range sl {
			r[j] = Infer(s)
		}
		t[i] = r
	}
	return t
}
