// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrintTable prints rows of text as aligned columns. Widths are measured in
// terminal cells so wide characters line up.
func PrintTable(w io.Writer, rows [][]string, indent int) {
	widths := []int{}
	for _, row := range rows {
		for i, cell := range row {
			n := runewidth.StringWidth(cell)
			if i >= len(widths) {
				widths = append(widths, n)
			} else if widths[i] < n {
				widths[i] = n
			}
		}
	}
	for _, row := range rows {
		if indent > 0 {
			fmt.Fprint(w, strings.Repeat(" ", indent))
		}
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i == len(row)-1 {
				break
			}
			fmt.Fprint(w, strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+1))
		}
		fmt.Fprint(w, "\n")
	}
}
