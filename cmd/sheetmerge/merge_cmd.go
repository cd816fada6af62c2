// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"fmt"
	"sort"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/conf"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/sheet"
	"github.com/wrgl/sheetmerge/pkg/widgets"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge SOURCE INCOMING",
		Short: "Merge rows of INCOMING into SOURCE and save the result.",
		Long: "Merge rows of INCOMING into SOURCE and save the result. By default the merged table keeps " +
			"every source row that has a counterpart in INCOMING and discards the rest. Deleted and added rows " +
			"can be kept and modified rows can be switched to their incoming version, either interactively or " +
			"with a selection file and --keep-* flags. Row indices start at 0. Tables found on one side only are " +
			"copied as they are.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "review differences interactively, press ctrl-s to preview the merge and ctrl-s again to save",
				Line:    "sheetmerge merge budget.xlsx budget-reviewed.xlsx -o merged.xlsx",
			},
			{
				Comment: "keep the deleted rows 3 and 4 and take the incoming version of row 1 of table \"Q1\"",
				Line:    "sheetmerge merge budget.xlsx budget-reviewed.xlsx -o merged.xlsx --no-gui --keep-deleted Q1:3,4 --keep-incoming Q1:1",
			},
			{
				Comment: "save decisions made in the interactive review to reuse them later",
				Line:    "sheetmerge merge a.csv b.csv -o merged.csv --save-selection decisions.yaml",
			},
			{
				Comment: "merge with previously saved decisions",
				Line:    "sheetmerge merge a.csv b.csv -o merged.csv --no-gui --selection decisions.yaml",
			},
			{
				Comment: "print the merged tables without writing anything",
				Line:    "sheetmerge merge a.csv b.csv --no-gui --keep-added a:0 --dry-run",
			},
		}),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := utils.SetupLogger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			c, err := utils.OpenConfig(cmd)
			if err != nil {
				return err
			}
			mf, err := getMergeFlags(cmd, c)
			if err != nil {
				return err
			}
			return runMerge(cmd, c, args[0], args[1], mf)
		},
	}
	cmd.Flags().StringP("output", "o", "", "path of the merged workbook. Its extension decides the format. Defaults to merge.output from config")
	cmd.Flags().Bool("no-gui", false, "merge without the interactive review")
	cmd.Flags().StringSlice("tables", nil, "only compare tables whose name matches one of these glob patterns, other tables are copied from SOURCE. Defaults to compare.tables from config")
	cmd.Flags().String("selection", "", "read decisions from this YAML file, as written by --save-selection")
	cmd.Flags().StringArray("keep-deleted", nil, "keep deleted rows, given as TABLE:ROW[,ROW...] with source row indices. Can be repeated")
	cmd.Flags().StringArray("keep-added", nil, "keep added rows, given as TABLE:ROW[,ROW...] with incoming row indices. Can be repeated")
	cmd.Flags().StringArray("keep-incoming", nil, "use the incoming version of modified rows, given as TABLE:ROW[,ROW...] with source row indices. Can be repeated")
	cmd.Flags().String("save-selection", "", "write the decisions used for this merge to a YAML file")
	cmd.Flags().Bool("dry-run", false, "print the merged tables instead of saving them. Nothing is written, not even the --save-selection file")
	return cmd
}

type mergeFlags struct {
	output        string
	noGUI         bool
	tables        []string
	selectionFile string
	keepDeleted   []string
	keepAdded     []string
	keepIncoming  []string
	saveSelection string
	dryRun        bool
}

func getMergeFlags(cmd *cobra.Command, c *conf.Config) (mf *mergeFlags, err error) {
	mf = &mergeFlags{}
	flags := cmd.Flags()
	if mf.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return
	}
	if mf.output, err = flags.GetString("output"); err != nil {
		return
	}
	if mf.output == "" {
		mf.output = c.MergeOutput()
	}
	if mf.output == "" && !mf.dryRun {
		return nil, errors.New(errors.KindConfig, "output path is not set, use --output or set merge.output in config")
	}
	if mf.noGUI, err = flags.GetBool("no-gui"); err != nil {
		return
	}
	if mf.tables, err = flags.GetStringSlice("tables"); err != nil {
		return
	}
	if mf.selectionFile, err = flags.GetString("selection"); err != nil {
		return
	}
	if mf.keepDeleted, err = flags.GetStringArray("keep-deleted"); err != nil {
		return
	}
	if mf.keepAdded, err = flags.GetStringArray("keep-added"); err != nil {
		return
	}
	if mf.keepIncoming, err = flags.GetStringArray("keep-incoming"); err != nil {
		return
	}
	if mf.saveSelection, err = flags.GetString("save-selection"); err != nil {
		return
	}
	return mf, nil
}

func (mf *mergeFlags) selections() (utils.Selections, error) {
	sels := utils.Selections{}
	if mf.selectionFile != "" {
		var err error
		if sels, err = utils.LoadSelections(mf.selectionFile); err != nil {
			return nil, err
		}
	}
	if err := utils.ApplyKeepFlags(sels, mf.keepDeleted, mf.keepAdded, mf.keepIncoming); err != nil {
		return nil, err
	}
	return sels, nil
}

// pruneSelections drops decisions that do not point at a selectable row and
// warns about tables that cannot take decisions.
func pruneSelections(cmd *cobra.Command, sels utils.Selections, results []*compare.TableResult) utils.Selections {
	byName := map[string]*compare.TableResult{}
	for _, r := range results {
		byName[r.Name] = r
	}
	names := make([]string, 0, len(sels))
	for name := range sels {
		names = append(names, name)
	}
	sort.Strings(names)
	pruned := utils.Selections{}
	for _, name := range names {
		r, ok := byName[name]
		if !ok || r.Presence != compare.PresenceBoth {
			cmd.PrintErrf("Warning: ignoring decisions for table %q which is not compared\n", name)
			continue
		}
		pruned[name] = sels[name].Prune(r.Events)
	}
	return pruned
}

func runMerge(cmd *cobra.Command, c *conf.Config, srcPath, incPath string, mf *mergeFlags) error {
	out := cmd.OutOrStdout()
	if !mf.noGUI && !utils.IsTerminal(out) {
		return errors.New(errors.KindConfig, "interactive review needs a terminal, use --no-gui to merge without it")
	}
	sels, err := mf.selections()
	if err != nil {
		return err
	}
	cmp, err := compareFiles(cmd, c, srcPath, incPath, mf.tables)
	if err != nil {
		return err
	}
	sels = pruneSelections(cmd, sels, cmp.results)
	if !mf.noGUI {
		title := fmt.Sprintf("Merging [yellow]%s[white] into [yellow]%s[white]", tview.Escape(incPath), tview.Escape(srcPath))
		app := widgets.NewReviewApp(tview.NewApplication(), title, cmp.results, sels, true)
		confirmed, err := app.Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Merge cancelled")
			return nil
		}
		sels = pruneSelections(cmd, app.Selections(), cmp.results)
	}
	wb, err := cmp.comparer.MergeResults(cmp.src, cmp.inc, cmp.results, sels)
	if err != nil {
		return err
	}
	if mf.dryRun {
		printWorkbook(out, wb)
		return nil
	}
	opts, err := utils.SheetOptions(c)
	if err != nil {
		return err
	}
	if err = sheet.Save(mf.output, wb, opts...); err != nil {
		return errors.Wrap(mf.output, err)
	}
	if mf.saveSelection != "" {
		if err = utils.SaveSelections(mf.saveSelection, sels); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Merged %d table(s) into %s\n", wb.Len(), mf.output)
	return nil
}
