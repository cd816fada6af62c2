// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/table"
)

func tableResult(name string, source, incoming [][]string) *compare.TableResult {
	src := table.FromStrings(source)
	inc := table.FromStrings(incoming)
	matches := align.Align(src, inc)
	events := diff.Walk(src, inc, matches)
	return &compare.TableResult{
		Name:     name,
		Source:   src,
		Incoming: inc,
		Matches:  matches,
		Events:   events,
		Summary:  diff.Summarize(events),
	}
}

func TestSummaryLine(t *testing.T) {
	r := tableResult("orders",
		[][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}},
		[][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}},
	)
	assert.Equal(t, "[yellow]1 modified[reset], [green]1 added[reset], [red]1 deleted[reset]", SummaryLine(r))

	r = tableResult("same", [][]string{{"a"}}, [][]string{{"a"}})
	assert.Equal(t, "no changes (1 rows)", SummaryLine(r))

	r = &compare.TableResult{Name: "x", Presence: compare.PresenceSourceOnly, Source: table.FromStrings([][]string{{"a"}})}
	assert.Equal(t, "[red]only in source[reset] (1 rows)", SummaryLine(r))
}

func TestPrintSummary(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	PrintSummary(buf, []*compare.TableResult{
		tableResult("orders", [][]string{{"A"}}, [][]string{{"A"}, {"B"}}),
		tableResult("q1", [][]string{{"A"}}, [][]string{{"A"}}),
	})
	assert.Equal(t, strings.Join([]string{
		"orders  1 added",
		"q1      no changes (1 rows)",
		"",
	}, "\n"), buf.String())
}

func TestPrintEvents(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	PrintEvents(buf, tableResult("orders",
		[][]string{{"A", "1"}, {"B", "2"}, {"C", "3"}},
		[][]string{{"A", "1"}, {"B", "9"}, {"D", "4"}},
	))
	assert.Equal(t, strings.Join([]string{
		"  modified(1, 1)",
		"    - B, 2",
		"    + B, 9",
		"  deleted(2)  - C, 3",
		"  added(2)  + D, 4",
		"",
	}, "\n"), buf.String())
}

func TestPrintTable(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	PrintTable(buf, [][]string{
		{"0", "名前", "x"},
		{"1", "ab", "yy"},
		{"10", "", "z"},
	}, 2)
	assert.Equal(t, strings.Join([]string{
		"  0  名前 x",
		"  1  ab   yy",
		"  10      z",
		"",
	}, "\n"), buf.String())
}

func TestCombineExamples(t *testing.T) {
	assert.Equal(t, "  # a\n  x\n\n  # b\n  y", CombineExamples([]Example{
		{Comment: "a", Line: "x"},
		{Comment: "b", Line: "y"},
	}))
}
