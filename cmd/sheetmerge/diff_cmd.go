// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/conf"
	"github.com/wrgl/sheetmerge/pkg/sheet"
	"github.com/wrgl/sheetmerge/pkg/widgets"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff SOURCE INCOMING",
		Short: "Show row differences between two workbooks.",
		Long: "Show row differences between two workbooks. SOURCE and INCOMING can be XLSX files, " +
			"CSV files (optionally gzipped), TSV files or directories of CSV files where each file is a table. " +
			"Rows of tables with the same name are aligned by the number of equal cells, then each row is " +
			"shown as unchanged, modified, added or deleted.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "browse differences in an interactive table",
				Line:    "sheetmerge diff budget.xlsx budget-reviewed.xlsx",
			},
			{
				Comment: "print differences of tables whose name starts with \"2022\"",
				Line:    "sheetmerge diff budget.xlsx budget-reviewed.xlsx --no-gui --tables '2022*'",
			},
			{
				Comment: "print differences again whenever either file changes",
				Line:    "sheetmerge diff data.csv export/data.csv --watch",
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
			noGUI, err := cmd.Flags().GetBool("no-gui")
			if err != nil {
				return err
			}
			tables, err := cmd.Flags().GetStringSlice("tables")
			if err != nil {
				return err
			}
			watch, err := cmd.Flags().GetBool("watch")
			if err != nil {
				return err
			}
			if watch {
				return watchDiff(cmd, c, args[0], args[1], tables)
			}
			cmp, err := compareFiles(cmd, c, args[0], args[1], tables)
			if err != nil {
				return err
			}
			if noGUI || !utils.IsTerminal(cmd.OutOrStdout()) {
				printDiff(cmd.OutOrStdout(), cmp.results)
				return nil
			}
			title := fmt.Sprintf("[yellow]%s[white] vs [yellow]%s[white]", tview.Escape(args[0]), tview.Escape(args[1]))
			_, err = widgets.NewReviewApp(tview.NewApplication(), title, cmp.results, nil, false).Run()
			return err
		},
	}
	cmd.Flags().Bool("no-gui", false, "print differences instead of showing the interactive table")
	cmd.Flags().StringSlice("tables", nil, "only compare tables whose name matches one of these glob patterns. Defaults to compare.tables from config")
	cmd.Flags().Bool("watch", false, "print differences again whenever SOURCE or INCOMING changes. Implies --no-gui")
	return cmd
}

func printDiff(out io.Writer, results []*compare.TableResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No tables to compare")
		return
	}
	utils.PrintSummary(out, results)
	for _, r := range results {
		if r.Presence != compare.PresenceBoth || !r.Summary.HasChanges() {
			continue
		}
		fmt.Fprintf(out, "\n%s\n", r.Name)
		utils.PrintEvents(out, r)
	}
}

// watchTarget decides which file events concern a workbook. A directory
// workbook is concerned by any event directly inside it.
type watchTarget struct {
	path  string
	isDir bool
}

func newWatchTarget(fp string) (*watchTarget, error) {
	abs, err := filepath.Abs(fp)
	if err != nil {
		return nil, err
	}
	return &watchTarget{path: abs, isDir: sheet.DetectFormat(fp) == sheet.FormatDir}, nil
}

func (t *watchTarget) watchDir() string {
	if t.isDir {
		return t.path
	}
	return filepath.Dir(t.path)
}

func (t *watchTarget) matches(name string) bool {
	name = filepath.Clean(name)
	if t.isDir {
		return filepath.Dir(name) == t.path
	}
	return name == t.path
}

// watchDiff prints differences then prints them again every time either
// workbook changes until the command context is cancelled. Parent
// directories are watched rather than the files so that editors replacing
// files on save are still seen.
func watchDiff(cmd *cobra.Command, c *conf.Config, srcPath, incPath string, tables []string) error {
	logger := utils.Logger(cmd)
	out := cmd.OutOrStdout()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	targets := []*watchTarget{}
	dirs := map[string]struct{}{}
	for _, fp := range []string{srcPath, incPath} {
		t, err := newWatchTarget(fp)
		if err != nil {
			return err
		}
		targets = append(targets, t)
		dir := t.watchDir()
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err = watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = struct{}{}
	}

	run := func() {
		cmp, err := compareFiles(cmd, c, srcPath, incPath, tables)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		printDiff(out, cmp.results)
	}
	run()
	fmt.Fprintf(out, "\nWatching %s and %s for changes...\n", srcPath, incPath)

	debounce := c.WatchDebounce()
	timer := time.NewTimer(debounce)
	timer.Stop()
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			for _, t := range targets {
				if t.matches(event.Name) {
					logger.V(1).Info("file changed", "path", event.Name, "op", event.Op.String())
					timer.Reset(debounce)
					break
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(err, "watcher error")
		case <-timer.C:
			fmt.Fprint(out, "\nChange detected, comparing again...\n\n")
			run()
		}
	}
}
