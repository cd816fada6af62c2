// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table

import (
	"math"
	"strconv"
)

type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "absent"
	}
}

// Cell is a single scalar value. The zero value is an absent cell.
type Cell struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

func Absent() Cell {
	return Cell{}
}

func String(s string) Cell {
	return Cell{kind: KindString, str: s}
}

func Number(n float64) Cell {
	return Cell{kind: KindNumber, num: n}
}

func Bool(b bool) Cell {
	return Cell{kind: KindBool, b: b}
}

func (c Cell) Kind() Kind {
	return c.kind
}

func (c Cell) IsAbsent() bool {
	return c.kind == KindAbsent
}

// Equal reports exact, type sensitive equality. String("1") never equals
// Number(1) and an absent cell never equals String("").
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindString:
		return c.str == o.str
	case KindNumber:
		return c.num == o.num
	case KindBool:
		return c.b == o.b
	}
	return true
}

// String renders the cell the way it is written out to text formats. Absent
// cells render as the empty string and booleans in upper case, as spreadsheets
// write them.
func (c Cell) String() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		if math.IsInf(c.num, 0) || math.IsNaN(c.num) {
			return strconv.FormatFloat(c.num, 'g', -1, 64)
		}
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindBool:
		if c.b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// Value returns the underlying Go value: string, float64, bool or nil.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return c.num
	case KindBool:
		return c.b
	}
	return nil
}

// Infer turns raw text into a typed cell: blank text is absent, numbers and
// booleans get their own kinds and everything else stays a string.
func Infer(s string) Cell {
	if s == "" {
		return Absent()
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Number(n)
	}
	switch s {
	case "TRUE", "true":
		return Bool(true)
	case "FALSE", "false":
		return Bool(false)
	}
	return String(s)
}
