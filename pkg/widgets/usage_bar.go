// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// UsageBar lists key bindings in as many columns as the width allows.
type UsageBar struct {
	*tview.TextView
	strs           []string
	widths         []int
	margin         int
	lastTotalWidth int
	height         int
}

func NewUsageBar(entries [][2]string, margin int) *UsageBar {
	n := len(entries)
	u := &UsageBar{
		TextView: tview.NewTextView().
			SetDynamicColors(true),
		strs:   make([]string, n),
		widths: make([]int, n),
		margin: margin,
	}
	for i, a := range entries {
		u.strs[i] = fmt.Sprintf("[black:white] %s [white:black] %s", a[0], tview.Escape(a[1]))
		u.widths[i] = stringWidth(a[0]) + stringWidth(a[1]) + 3
	}
	return u
}

// columnWidths returns the widths of the widest layout that fits totalWidth,
// falling back to a single column.
func (b *UsageBar) columnWidths(totalWidth int) []int {
	for n := len(b.widths); n > 1; n-- {
		cols := make([]int, n)
		for i, w := range b.widths {
			if cols[i%n] < w {
				cols[i%n] = w
			}
		}
		sum := b.margin * (n - 1)
		for _, w := range cols {
			sum += w
		}
		if sum <= totalWidth {
			return cols
		}
	}
	return []int{0}
}

func (b *UsageBar) printRows(totalWidth int) {
	cols := b.columnWidths(totalWidth)
	n := len(cols)
	lines := []string{}
	for start := 0; start < len(b.strs); start += n {
		end := start + n
		if end > len(b.strs) {
			end = len(b.strs)
		}
		parts := make([]string, 0, n)
		for i := start; i < end; i++ {
			s := b.strs[i]
			if i < end-1 {
				if pad := cols[i-start] - b.widths[i]; pad > 0 {
					s += strings.Repeat(" ", pad)
				}
			}
			parts = append(parts, s)
		}
		lines = append(lines, strings.Join(parts, strings.Repeat(" ", b.margin)))
	}
	b.TextView.Clear()
	fmt.Fprint(b.TextView, strings.Join(lines, "\n\n"))
	b.height = len(lines)*2 - 1
	if b.height < 1 {
		b.height = 1
	}
}

func (b *UsageBar) BeforeDraw(screen tcell.Screen, flex *tview.Flex) {
	_, _, width, _ := b.GetInnerRect()
	if width != b.lastTotalWidth {
		b.printRows(width)
		b.lastTotalWidth = width
	}
	flex.ResizeItem(b, b.height, 1)
}
