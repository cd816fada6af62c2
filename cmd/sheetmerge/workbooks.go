// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/conf"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/sheet"
)

type comparison struct {
	src, inc *sheet.Workbook
	comparer *compare.Comparer
	results  []*compare.TableResult
}

func openWorkbook(logger logr.Logger, fp string, opts []sheet.Option) (*sheet.Workbook, error) {
	logger.V(1).Info("opening workbook", "path", fp, "format", sheet.DetectFormat(fp).String())
	wb, err := sheet.Open(fp, opts...)
	if err != nil {
		return nil, errors.Wrap(fp, err)
	}
	return wb, nil
}

// pairSingleTables renames the only table of inc after the only table of src
// when both are single table files, so that "data.csv" and "data-v2.csv" are
// compared with each other instead of being seen as two unrelated tables.
func pairSingleTables(srcPath, incPath string, src, inc *sheet.Workbook) (*sheet.Workbook, error) {
	if !sheet.DetectFormat(srcPath).SingleTable() || !sheet.DetectFormat(incPath).SingleTable() {
		return inc, nil
	}
	srcName, incName := src.Names()[0], inc.Names()[0]
	if srcName == incName {
		return inc, nil
	}
	t, _ := inc.Table(incName)
	res := sheet.New(inc.Name)
	if err := res.Add(srcName, t); err != nil {
		return nil, err
	}
	return res, nil
}

// compareFiles opens both workbooks and compares every table name the filter
// lets through. Patterns given on the command line replace configured ones.
func compareFiles(cmd *cobra.Command, c *conf.Config, srcPath, incPath string, patterns []string) (*comparison, error) {
	logger := utils.Logger(cmd)
	opts, err := utils.SheetOptions(c)
	if err != nil {
		return nil, err
	}
	res := &comparison{}
	if res.src, err = openWorkbook(logger, srcPath, opts); err != nil {
		return nil, err
	}
	if res.inc, err = openWorkbook(logger, incPath, opts); err != nil {
		return nil, err
	}
	if res.inc, err = pairSingleTables(srcPath, incPath, res.src, res.inc); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		patterns = c.TablePatterns()
	}
	pc, err := utils.GetProgressBarContainer(cmd)
	if err != nil {
		return nil, err
	}
	bar := pc.NewBar(0, "Comparing tables")
	res.comparer, err = compare.NewComparer(
		compare.WithMaxRows(c.MaxRows()),
		compare.WithWorkers(c.Workers()),
		compare.WithTableFilter(patterns...),
		compare.WithLogger(logger),
		compare.WithProgressBar(bar),
	)
	if err != nil {
		bar.Abort()
		pc.Wait()
		return nil, err
	}
	res.results, err = res.comparer.Compare(cmd.Context(), res.src, res.inc)
	pc.Wait()
	if err != nil {
		return nil, err
	}
	return res, nil
}
