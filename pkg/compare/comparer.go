// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package compare

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/gobwas/glob"
	"github.com/wrgl/sheetmerge/pkg/align"
	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/merge"
	"github.com/wrgl/sheetmerge/pkg/pbar"
	"github.com/wrgl/sheetmerge/pkg/sheet"
	"github.com/wrgl/sheetmerge/pkg/slice"
	"github.com/wrgl/sheetmerge/pkg/table"
	"golang.org/x/sync/errgroup"
)

var ErrTableTooLarge = errors.New(errors.KindLimit, "table too large")

// Comparer compares workbooks table by table.
type Comparer struct {
	maxRows  int
	patterns []string
	globs    []glob.Glob
	workers  int
	logger   logr.Logger
	bar      pbar.Bar
}

func NewComparer(opts ...Option) (*Comparer, error) {
	c := &Comparer{
		workers: runtime.NumCPU(),
		logger:  logr.Discard(),
		bar:     pbar.NewNoopBar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers <= 0 {
		c.workers = 1
	}
	for _, pattern := range c.patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.WrapKind(errors.KindConfig, fmt.Sprintf("invalid table pattern %q", pattern), err)
		}
		c.globs = append(c.globs, g)
	}
	return c, nil
}

// Selected reports whether the table filter lets name through.
func (c *Comparer) Selected(name string) bool {
	if len(c.globs) == 0 {
		return true
	}
	for _, g := range c.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (c *Comparer) tableNames(src, inc *sheet.Workbook) []string {
	names := []string{}
	for _, name := range slice.Union(src.Names(), inc.Names()) {
		if c.Selected(name) {
			names = append(names, name)
		}
	}
	return names
}

func (c *Comparer) checkSize(name, side string, t table.Table) error {
	if c.maxRows > 0 && t.NumRows() > c.maxRows {
		return errors.Wrap(fmt.Sprintf("%s table %q has %d rows, limit is %d", side, name, t.NumRows(), c.maxRows), ErrTableTooLarge)
	}
	return nil
}

func (c *Comparer) compareTable(name string, src, inc *sheet.Workbook) (*TableResult, error) {
	srcTbl, inSrc := src.Table(name)
	incTbl, inInc := inc.Table(name)
	res := &TableResult{Name: name, Source: srcTbl, Incoming: incTbl}
	switch {
	case !inInc:
		res.Presence = PresenceSourceOnly
		return res, nil
	case !inSrc:
		res.Presence = PresenceIncomingOnly
		return res, nil
	}
	if err := c.checkSize(name, "source", srcTbl); err != nil {
		return nil, err
	}
	if err := c.checkSize(name, "incoming", incTbl); err != nil {
		return nil, err
	}
	logger := c.logger.WithValues("table", name)
	debug := logger.V(1)
	res.Matches = align.Align(srcTbl, incTbl)
	res.Events = diff.Walk(srcTbl, incTbl, res.Matches, diff.WithDebugLogger(&debug))
	res.Summary = diff.Summarize(res.Events)
	logger.V(1).Info("compared table",
		"sourceRows", srcTbl.NumRows(),
		"incomingRows", incTbl.NumRows(),
		"modified", res.Summary.Modified,
		"added", res.Summary.Added,
		"deleted", res.Summary.Deleted,
	)
	return res, nil
}

// Compare returns one result per table name found in either workbook, in
// source order followed by names only found in incoming. Tables excluded by
// the filter are left out.
func (c *Comparer) Compare(ctx context.Context, src, inc *sheet.Workbook) ([]*TableResult, error) {
	names := c.tableNames(src, inc)
	results := make([]*TableResult, len(names))
	c.bar.SetTotal(int64(len(names)))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.compareTable(name, src, inc)
			if err != nil {
				return err
			}
			results[i] = res
			c.bar.Incr()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.bar.Abort()
		return nil, err
	}
	c.bar.Done()
	return results, nil
}

// Merge compares both workbooks then merges each common table with the
// selection under its name. Tables on one side only and tables excluded by
// the filter are copied as they are, the source version first.
func (c *Comparer) Merge(ctx context.Context, src, inc *sheet.Workbook, selections map[string]*merge.Selection) (*sheet.Workbook, error) {
	results, err := c.Compare(ctx, src, inc)
	if err != nil {
		return nil, err
	}
	return c.MergeResults(src, inc, results, selections)
}

// MergeResults builds the merged workbook from results returned by Compare on
// the same workbooks.
func (c *Comparer) MergeResults(src, inc *sheet.Workbook, results []*TableResult, selections map[string]*merge.Selection) (*sheet.Workbook, error) {
	byName := make(map[string]*TableResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	wb := sheet.New(src.Name)
	for _, name := range slice.Union(src.Names(), inc.Names()) {
		var t table.Table
		if r, ok := byName[name]; ok {
			t = c.mergeResult(r, selections[name])
		} else if st, ok := src.Table(name); ok {
			t = st.Clone()
		} else {
			it, _ := inc.Table(name)
			t = it.Clone()
		}
		if err := wb.Add(name, t); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

func (c *Comparer) mergeResult(r *TableResult, sel *merge.Selection) table.Table {
	switch r.Presence {
	case PresenceSourceOnly:
		return r.Source.Clone()
	case PresenceIncomingOnly:
		return r.Incoming.Clone()
	}
	if !sel.IsEmpty() {
		c.logger.V(1).Info("merging table", "table", r.Name,
			"keepDeleted", len(sel.KeepDeleted),
			"keepAdded", len(sel.KeepAdded),
			"keepIncoming", len(sel.KeepIncoming),
		)
	}
	return merge.Project(r.Source, r.Incoming, r.Events, sel)
}
