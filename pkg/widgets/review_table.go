// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"container/list"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/merge"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// choiceOp records one change of decision for the row behind event so it can
// be undone. For deleted and added rows the decision is whether the row is
// kept, for modified rows whether the incoming version is used.
type choiceOp struct {
	event  int
	before bool
	after  bool
}

// ReviewTable shows a source table and an incoming table side by side, one
// line per row event, and lets the user decide what goes into the merge.
type ReviewTable struct {
	*tview.Table
	source, incoming table.Table
	events           []diff.RowEvent
	sel              *merge.Selection
	srcWidth         int
	incWidth         int
	choiceCol        int
	changes          []int
	cursor           int
	undoStack        *list.List
	redoStack        *list.List
	changedFunc      func()
}

func NewReviewTable(source, incoming table.Table, events []diff.RowEvent, sel *merge.Selection) *ReviewTable {
	t := &ReviewTable{
		Table:     tview.NewTable(),
		source:    source,
		incoming:  incoming,
		events:    events,
		sel:       sel.Prune(events),
		srcWidth:  source.MaxWidth(),
		incWidth:  incoming.MaxWidth(),
		cursor:    -1,
		undoStack: list.New(),
		redoStack: list.New(),
	}
	t.choiceCol = 1 + t.srcWidth + 1 + t.incWidth
	for i, e := range events {
		if e.IsChange() {
			t.changes = append(t.changes, i)
		}
	}
	t.Table.SetSelectable(true, false).
		SetFixed(1, 1).
		SetSeparator(' ').
		SetInputCapture(t.ProcessInput)
	t.writeHeader()
	for i := range events {
		t.writeRow(i)
	}
	if len(events) > 0 {
		t.Table.Select(1, 0)
	}
	return t
}

// SetChangedFunc sets a handler called after every change of decision.
func (t *ReviewTable) SetChangedFunc(f func()) *ReviewTable {
	t.changedFunc = f
	return t
}

// Selection returns the decisions made so far.
func (t *ReviewTable) Selection() *merge.Selection {
	return t.sel
}

func (t *ReviewTable) Events() []diff.RowEvent {
	return t.events
}

func (t *ReviewTable) Summary() diff.Summary {
	return diff.Summarize(t.events)
}

func headerCell(s string) *tview.TableCell {
	return tview.NewTableCell(s).
		SetTextColor(headerColor).
		SetSelectable(false)
}

func (t *ReviewTable) writeHeader() {
	t.Table.SetCell(0, 0, headerCell("#"))
	for j := 0; j < t.srcWidth; j++ {
		t.Table.SetCell(0, 1+j, headerCell(fmt.Sprintf("S%d", j+1)))
	}
	t.Table.SetCell(0, 1+t.srcWidth, headerCell("│").SetTextColor(separatorColor))
	for j := 0; j < t.incWidth; j++ {
		t.Table.SetCell(0, 2+t.srcWidth+j, headerCell(fmt.Sprintf("I%d", j+1)))
	}
	t.Table.SetCell(0, t.choiceCol, headerCell("merge"))
}

func (t *ReviewTable) rowCells(tbl table.Table, idx, width int) []string {
	cells := make([]string, width)
	if r, ok := tbl.Row(idx); ok {
		for j, c := range r.Pad(width) {
			cells[j] = truncate(c.String(), maxCellWidth)
		}
	}
	return cells
}

func (t *ReviewTable) choiceText(e diff.RowEvent) string {
	switch e.Type {
	case diff.Deleted, diff.Added:
		if t.sel.Keeps(e) {
			return "keep"
		}
		return "drop"
	case diff.Modified:
		if t.sel.KeepsIncoming(e.Source) {
			return "incoming"
		}
		return "source"
	}
	return ""
}

// rowLabel names the row behind e by the index the merge decisions use: the
// source index for deleted and matched rows, the incoming index for added ones.
func rowLabel(e diff.RowEvent) string {
	if e.Type == diff.Added {
		return "I" + strconv.Itoa(e.Incoming)
	}
	return "S" + strconv.Itoa(e.Source)
}

func (t *ReviewTable) writeRow(i int) {
	e := t.events[i]
	row := i + 1
	fg := eventColor(e.Type)
	bg := tcell.ColorDefault
	if t.cursor >= 0 && t.changes[t.cursor] == i {
		bg = highlightColor(fg)
	}
	set := func(col int, s string) {
		t.Table.SetCell(row, col, tview.NewTableCell(s).
			SetTextColor(fg).
			SetBackgroundColor(bg))
	}
	set(0, rowLabel(e))
	for j, s := range t.rowCells(t.source, e.Source, t.srcWidth) {
		set(1+j, s)
	}
	t.Table.SetCell(row, 1+t.srcWidth, tview.NewTableCell("│").SetTextColor(separatorColor))
	for j, s := range t.rowCells(t.incoming, e.Incoming, t.incWidth) {
		set(2+t.srcWidth+j, s)
	}
	set(t.choiceCol, t.choiceText(e))
}

// CurrentEvent returns the index of the event under the selection.
func (t *ReviewTable) CurrentEvent() (int, bool) {
	row, _ := t.Table.GetSelection()
	i := row - 1
	if i < 0 || i >= len(t.events) {
		return 0, false
	}
	return i, true
}

func (t *ReviewTable) moveCursor(pos int) {
	var prev int
	if t.cursor >= 0 {
		prev = t.changes[t.cursor]
	}
	hadCursor := t.cursor >= 0
	t.cursor = pos
	if hadCursor {
		t.writeRow(prev)
	}
	i := t.changes[pos]
	t.writeRow(i)
	t.Table.Select(i+1, 0)
}

// NextChange selects the first change below the current row, wrapping around
// to the top.
func (t *ReviewTable) NextChange() {
	if len(t.changes) == 0 {
		return
	}
	cur, ok := t.CurrentEvent()
	if !ok {
		cur = -1
	}
	for k, i := range t.changes {
		if i > cur {
			t.moveCursor(k)
			return
		}
	}
	t.moveCursor(0)
}

// PrevChange selects the last change above the current row, wrapping around
// to the bottom.
func (t *ReviewTable) PrevChange() {
	if len(t.changes) == 0 {
		return
	}
	cur, ok := t.CurrentEvent()
	if !ok {
		cur = len(t.events)
	}
	for k := len(t.changes) - 1; k >= 0; k-- {
		if t.changes[k] < cur {
			t.moveCursor(k)
			return
		}
	}
	t.moveCursor(len(t.changes) - 1)
}

func (t *ReviewTable) decision(e diff.RowEvent) bool {
	if e.Type == diff.Modified {
		return t.sel.KeepsIncoming(e.Source)
	}
	return t.sel.Keeps(e)
}

func (t *ReviewTable) apply(i int, v bool) {
	e := t.events[i]
	switch e.Type {
	case diff.Modified:
		if v {
			t.sel.UseIncoming(e.Source)
		} else {
			t.sel.UseSource(e.Source)
		}
	case diff.Deleted, diff.Added:
		t.sel.SetKeep(e, v)
	}
	t.writeRow(i)
	t.Table.Select(i+1, 0)
	if t.changedFunc != nil {
		t.changedFunc()
	}
}

func (t *ReviewTable) decide(i int, v bool) {
	e := t.events[i]
	if !e.IsChange() {
		return
	}
	before := t.decision(e)
	if before == v {
		return
	}
	t.apply(i, v)
	t.undoStack.PushFront(&choiceOp{event: i, before: before, after: v})
	t.redoStack.Init()
}

// Toggle keeps or drops the current deleted or added row, or switches the
// current modified row to the other version.
func (t *ReviewTable) Toggle() {
	if i, ok := t.CurrentEvent(); ok {
		t.decide(i, !t.decision(t.events[i]))
	}
}

// UseSource makes the current row resolve to its source side: modified rows
// use the source version, deleted rows are kept and added rows dropped.
func (t *ReviewTable) UseSource() {
	if i, ok := t.CurrentEvent(); ok {
		t.decide(i, t.events[i].Type == diff.Deleted)
	}
}

// UseIncoming makes the current row resolve to its incoming side: modified
// rows use the incoming version, added rows are kept and deleted rows dropped.
func (t *ReviewTable) UseIncoming() {
	if i, ok := t.CurrentEvent(); ok {
		t.decide(i, t.events[i].Type != diff.Deleted)
	}
}

func (t *ReviewTable) Undo() {
	e := t.undoStack.Front()
	if e == nil {
		return
	}
	t.undoStack.Remove(e)
	op := e.Value.(*choiceOp)
	t.apply(op.event, op.before)
	t.redoStack.PushFront(op)
}

func (t *ReviewTable) Redo() {
	e := t.redoStack.Front()
	if e == nil {
		return
	}
	t.redoStack.Remove(e)
	op := e.Value.(*choiceOp)
	t.apply(op.event, op.after)
	t.undoStack.PushFront(op)
}

func (t *ReviewTable) ProcessInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'n':
		t.NextChange()
	case 'N':
		t.PrevChange()
	case ' ':
		t.Toggle()
	case 's':
		t.UseSource()
	case 'i':
		t.UseIncoming()
	case 'u':
		t.Undo()
	case 'U':
		t.Redo()
	default:
		return event
	}
	return nil
}

// NewSingleSideTable shows a table that only exists on one side. Its rows
// are coloured as added when incoming is true and as deleted otherwise.
func NewSingleSideTable(tbl table.Table, incoming bool) *tview.Table {
	if incoming {
		return newReadOnlyTable(tbl, addedColor)
	}
	return newReadOnlyTable(tbl, deletedColor)
}

// NewPreviewTable shows a table without colouring its rows.
func NewPreviewTable(tbl table.Table) *tview.Table {
	return newReadOnlyTable(tbl, tcell.ColorDefault)
}

func newReadOnlyTable(tbl table.Table, fg tcell.Color) *tview.Table {
	width := tbl.MaxWidth()
	t := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 1)
	t.SetCell(0, 0, headerCell("#"))
	for j := 0; j < width; j++ {
		t.SetCell(0, 1+j, headerCell(strconv.Itoa(j+1)))
	}
	for i, r := range tbl {
		t.SetCell(i+1, 0, tview.NewTableCell(strconv.Itoa(i)).SetTextColor(fg))
		for j, c := range r.Pad(width) {
			t.SetCell(i+1, 1+j, tview.NewTableCell(truncate(c.String(), maxCellWidth)).SetTextColor(fg))
		}
	}
	return t
}
