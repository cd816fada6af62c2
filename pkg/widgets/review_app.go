// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/merge"
	"github.com/wrgl/sheetmerge/pkg/table"
)

const (
	reviewPage  = "review"
	previewPage = "preview"
)

// ReviewApp lays out one tab per compared table with a title bar, a status
// bar and the key bindings. A confirmable review shows the merged tables
// before it can be confirmed.
type ReviewApp struct {
	app         *tview.Application
	Pages       *tview.Pages
	Flex        *tview.Flex
	tabs        *TabPages
	statusBar   *tview.TextView
	usageBar    *UsageBar
	results     []*compare.TableResult
	tables      map[string]*ReviewTable
	confirmable bool
	confirmed   bool

	previewing   bool
	previewFlex  *tview.Flex
	previewTabs  *TabPages
	previewUsage *UsageBar
}

func createTitleBar(title string) *tview.TextView {
	titleBar := tview.NewTextView().SetDynamicColors(true)
	fmt.Fprint(titleBar, title)
	return titleBar
}

func tabLabel(r *compare.TableResult) string {
	switch r.Presence {
	case compare.PresenceSourceOnly:
		return r.Name + " (source only)"
	case compare.PresenceIncomingOnly:
		return r.Name + " (incoming only)"
	}
	if r.Summary.HasChanges() {
		return r.Name + "*"
	}
	return r.Name
}

// NewReviewApp builds the review screen. When confirmable is true ctrl-s shows
// a preview of the merged tables and a second ctrl-s ends the review and marks
// it confirmed, otherwise the screen is read-only browsing that only q leaves.
func NewReviewApp(app *tview.Application, title string, results []*compare.TableResult, selections map[string]*merge.Selection, confirmable bool) *ReviewApp {
	a := &ReviewApp{
		app:         app,
		tabs:        NewTabPages(app),
		statusBar:   tview.NewTextView().SetDynamicColors(true),
		results:     results,
		tables:      map[string]*ReviewTable{},
		confirmable: confirmable,
	}
	for _, r := range results {
		switch r.Presence {
		case compare.PresenceSourceOnly:
			a.tabs.AddTab(tabLabel(r), NewSingleSideTable(r.Source, false))
		case compare.PresenceIncomingOnly:
			a.tabs.AddTab(tabLabel(r), NewSingleSideTable(r.Incoming, true))
		default:
			rt := NewReviewTable(r.Source, r.Incoming, r.Events, selections[r.Name]).
				SetChangedFunc(a.updateStatus)
			a.tables[r.Name] = rt
			a.tabs.AddTab(tabLabel(r), rt)
		}
	}
	entries := [][2]string{
		{"1-9", "Switch table"},
		{"[ ]", "Previous/next table"},
		{"n", "Next change"},
		{"N", "Previous change"},
		{"space", "Toggle"},
		{"s", "Use source"},
		{"i", "Use incoming"},
		{"u", "Undo"},
		{"U", "Redo"},
	}
	if confirmable {
		entries = append(entries, [2]string{"ctrl-s", "Preview merge"})
	}
	entries = append(entries, [2]string{"q", "Quit"})
	a.usageBar = NewUsageBar(entries, 2)
	a.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(createTitleBar(title), 1, 1, false).
		AddItem(a.tabs, 0, 1, true).
		AddItem(a.statusBar, 1, 1, false).
		AddItem(a.usageBar, 1, 1, false)
	a.Pages = tview.NewPages().AddPage(reviewPage, a.Flex, true, true)
	a.updateStatus()
	return a
}

func (a *ReviewApp) currentResult() *compare.TableResult {
	if len(a.results) == 0 {
		return nil
	}
	return a.results[a.tabs.Current()]
}

func (a *ReviewApp) updateStatus() {
	a.statusBar.Clear()
	r := a.currentResult()
	if r == nil {
		fmt.Fprint(a.statusBar, "No tables to compare")
		return
	}
	rt, ok := a.tables[r.Name]
	if !ok {
		fmt.Fprintf(a.statusBar, "[yellow]%s[white] exists in %s and is copied as is", tview.Escape(r.Name), r.Presence)
		return
	}
	s := r.Summary
	sel := rt.Selection()
	fmt.Fprintf(a.statusBar,
		"[yellow]%s[white]: [yellow]%d[white] modified, [green]%d[white] added, [red]%d[white] deleted - keeping %d/%d incoming versions, %d/%d added and %d/%d deleted rows",
		tview.Escape(r.Name), s.Modified, s.Added, s.Deleted,
		len(sel.KeepIncoming), s.Modified, len(sel.KeepAdded), s.Added, len(sel.KeepDeleted), s.Deleted,
	)
}

// Selections returns the decisions made for every table found on both sides.
func (a *ReviewApp) Selections() map[string]*merge.Selection {
	m := make(map[string]*merge.Selection, len(a.tables))
	for name, rt := range a.tables {
		m[name] = rt.Selection()
	}
	return m
}

func (a *ReviewApp) Confirmed() bool {
	return a.confirmed
}

// MergedTables returns the tables the current decisions produce, one per
// result and in the same order. Tables found on one side only are returned as
// they are.
func (a *ReviewApp) MergedTables() []table.Table {
	tables := make([]table.Table, len(a.results))
	for i, r := range a.results {
		switch r.Presence {
		case compare.PresenceSourceOnly:
			tables[i] = r.Source
		case compare.PresenceIncomingOnly:
			tables[i] = r.Incoming
		default:
			tables[i] = merge.Project(r.Source, r.Incoming, r.Events, a.tables[r.Name].Selection())
		}
	}
	return tables
}

func (a *ReviewApp) Previewing() bool {
	return a.previewing
}

func (a *ReviewApp) focus(item tview.Primitive) {
	if a.app != nil && item != nil {
		a.app.SetFocus(item)
	}
}

func (a *ReviewApp) showPreview() {
	a.previewTabs = NewTabPages(a.app)
	for i, t := range a.MergedTables() {
		a.previewTabs.AddTab(fmt.Sprintf("%s (%d)", a.results[i].Name, t.NumRows()), NewPreviewTable(t))
	}
	status := tview.NewTextView().SetDynamicColors(true)
	fmt.Fprint(status, "Merge preview: press [yellow]ctrl-s[white] again to save or [yellow]esc[white] to go back to the review")
	a.previewUsage = NewUsageBar([][2]string{
		{"1-9", "Switch table"},
		{"[ ]", "Previous/next table"},
		{"ctrl-s", "Save"},
		{"esc", "Back to review"},
		{"q", "Quit"},
	}, 2)
	a.previewFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(createTitleBar("Merge preview"), 1, 1, false).
		AddItem(a.previewTabs, 0, 1, true).
		AddItem(status, 1, 1, false).
		AddItem(a.previewUsage, 1, 1, false)
	a.Pages.AddAndSwitchToPage(previewPage, a.previewFlex, true)
	a.previewing = true
	a.focus(a.previewTabs.CurrentItem())
}

func (a *ReviewApp) hidePreview() {
	a.Pages.RemovePage(previewPage)
	a.Pages.SwitchToPage(reviewPage)
	a.previewing = false
	a.focus(a.tabs.CurrentItem())
}

func (a *ReviewApp) processPreviewInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlS:
		a.confirmed = true
		a.stop()
		return nil
	case tcell.KeyEscape:
		a.hidePreview()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			a.stop()
			return nil
		}
		return a.previewTabs.ProcessInput(event)
	}
	return event
}

func (a *ReviewApp) stop() {
	if a.app != nil {
		a.app.Stop()
	}
}

func (a *ReviewApp) ProcessInput(event *tcell.EventKey) *tcell.EventKey {
	if a.previewing {
		return a.processPreviewInput(event)
	}
	switch event.Key() {
	case tcell.KeyCtrlS:
		if a.confirmable {
			a.showPreview()
			return nil
		}
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			a.stop()
			return nil
		}
		if a.tabs.ProcessInput(event) == nil {
			a.updateStatus()
			return nil
		}
	}
	return event
}

func (a *ReviewApp) BeforeDraw(screen tcell.Screen) bool {
	if a.previewing {
		a.previewUsage.BeforeDraw(screen, a.previewFlex)
		return false
	}
	a.usageBar.BeforeDraw(screen, a.Flex)
	return false
}

// Run blocks until the user confirms the merge preview or quits and reports
// whether the review was confirmed.
func (a *ReviewApp) Run() (bool, error) {
	a.app.SetRoot(a.Pages, true).
		SetInputCapture(a.ProcessInput).
		SetBeforeDrawFunc(a.BeforeDraw)
	if item := a.tabs.CurrentItem(); item != nil {
		a.app.SetFocus(item)
	}
	if err := a.app.Run(); err != nil {
		return false, err
	}
	return a.confirmed, nil
}
