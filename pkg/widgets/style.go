// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/wrgl/sheetmerge/pkg/diff"
)

const (
	maxCellWidth = 30
	ellipsis     = "…"
)

var (
	deletedColor   = tcell.ColorRed
	addedColor     = tcell.ColorGreen
	modifiedColor  = tcell.ColorYellow
	separatorColor = tcell.ColorGray
	headerColor    = tcell.ColorAqua
)

func stringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncate shortens s to at most width screen cells.
func truncate(s string, width int) string {
	if stringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

func eventColor(t diff.EventType) tcell.Color {
	switch t {
	case diff.Deleted:
		return deletedColor
	case diff.Added:
		return addedColor
	case diff.Modified:
		return modifiedColor
	}
	return tcell.ColorDefault
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// highlightColor is a dim background matching the foreground colour of a
// row so the current difference stands out without hiding its class.
func highlightColor(fg tcell.Color) tcell.Color {
	if fg == tcell.ColorDefault {
		fg = tcell.ColorWhite
	}
	c := toColorful(fg).BlendLab(colorful.Color{}, 0.7).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
