// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TabPages shows one page at a time under a bar of tab labels. Tabs are
// switched with keys 1 to 9, or with [ and ] for the previous and next tab.
type TabPages struct {
	*tview.Flex
	mu      sync.Mutex
	app     *tview.Application
	pages   *tview.Pages
	tabBar  *tview.TextView
	labels  []string
	items   []tview.Primitive
	current int
}

func NewTabPages(app *tview.Application) *TabPages {
	p := &TabPages{
		pages:  tview.NewPages(),
		Flex:   tview.NewFlex(),
		app:    app,
		tabBar: tview.NewTextView(),
	}
	p.tabBar.SetDynamicColors(true).
		SetRegions(true).
		SetWrap(false).
		SetHighlightedFunc(func(added, removed, remaining []string) {
			if len(added) == 0 {
				return
			}
			i, err := strconv.Atoi(added[0])
			if err != nil || i >= len(p.items) {
				return
			}
			p.current = i
			p.pages.SwitchToPage(added[0])
			if p.app != nil {
				p.app.SetFocus(p.items[i])
			}
		})
	p.Flex.SetDirection(tview.FlexRow).
		AddItem(p.tabBar, 1, 1, false).
		AddItem(p.pages, 0, 1, true)
	return p
}

// AddTab appends a page. The first tab added is shown.
func (p *TabPages) AddTab(label string, item tview.Primitive) *TabPages {
	name := strconv.Itoa(len(p.labels))
	p.pages.AddPage(name, item, true, len(p.items) == 0)
	p.items = append(p.items, item)
	p.labels = append(p.labels, label)
	p.writeTabBar()
	if len(p.items) == 1 {
		p.tabBar.Highlight(name)
	}
	return p
}

func (p *TabPages) SetLabel(item tview.Primitive, label string) error {
	for ind, pr := range p.items {
		if pr == item {
			p.labels[ind] = label
			p.writeTabBar()
			return nil
		}
	}
	return fmt.Errorf("TabPages.SetLabel: primitive %v not found", item)
}

func (p *TabPages) Current() int {
	return p.current
}

func (p *TabPages) CurrentItem() tview.Primitive {
	if len(p.items) == 0 {
		return nil
	}
	return p.items[p.current]
}

func (p *TabPages) Len() int {
	return len(p.items)
}

// SwitchTo shows the tab at index i. Out of range indices are ignored.
func (p *TabPages) SwitchTo(i int) {
	if i < 0 || i >= len(p.items) {
		return
	}
	p.tabBar.Highlight(strconv.Itoa(i))
	p.tabBar.ScrollToHighlight()
}

func (p *TabPages) writeTabBar() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tabBar.Clear()
	for ind, label := range p.labels {
		if ind < 9 {
			fmt.Fprintf(p.tabBar, `[yellow](%d)[white] `, ind+1)
		}
		fmt.Fprintf(p.tabBar, `["%d"]%s[""]  `, ind, tview.Escape(label))
	}
}

func (p *TabPages) Draw(screen tcell.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Flex.Draw(screen)
}

func (p *TabPages) ProcessInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune || len(p.items) == 0 {
		return event
	}
	r := event.Rune()
	switch {
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i >= len(p.items) {
			return event
		}
		p.SwitchTo(i)
	case r == '[':
		p.SwitchTo((p.current + len(p.items) - 1) % len(p.items))
	case r == ']':
		p.SwitchTo((p.current + 1) % len(p.items))
	default:
		return event
	}
	return nil
}
