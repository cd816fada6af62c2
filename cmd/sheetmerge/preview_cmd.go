// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/sheet"
	"github.com/wrgl/sheetmerge/pkg/widgets"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Shows a workbook's tables.",
		Long:  "Shows a workbook's tables in an interactive table, or prints them when --no-gui is set or the output is not a terminal. Row indices are the ones used by \"sheetmerge merge\".",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "browse every sheet of an XLSX file",
				Line:    "sheetmerge preview budget.xlsx",
			},
			{
				Comment: "print a single table",
				Line:    "sheetmerge preview budget.xlsx --table Q1 --no-gui",
			},
		}),
		Args: cobra.ExactArgs(1),
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
			name, err := cmd.Flags().GetString("table")
			if err != nil {
				return err
			}
			noGUI, err := cmd.Flags().GetBool("no-gui")
			if err != nil {
				return err
			}
			opts, err := utils.SheetOptions(c)
			if err != nil {
				return err
			}
			wb, err := openWorkbook(utils.Logger(cmd), args[0], opts)
			if err != nil {
				return err
			}
			if name != "" {
				t, ok := wb.Table(name)
				if !ok {
					return errors.Errorf(errors.KindParse, "table %q not found in %s", name, args[0])
				}
				single := sheet.New(wb.Name)
				if err = single.Add(name, t); err != nil {
					return err
				}
				wb = single
			}
			if noGUI || !utils.IsTerminal(cmd.OutOrStdout()) {
				printWorkbook(cmd.OutOrStdout(), wb)
				return nil
			}
			return previewWorkbook(args[0], wb)
		},
	}
	cmd.Flags().String("table", "", "only show this table")
	cmd.Flags().Bool("no-gui", false, "print tables instead of showing the interactive table")
	return cmd
}

func printWorkbook(out io.Writer, wb *sheet.Workbook) {
	cs := utils.Colorize(out)
	for i, name := range wb.Names() {
		t, _ := wb.Table(name)
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, cs.Color(fmt.Sprintf("[bold]%s[reset] (%d rows)", name, t.NumRows())))
		width := t.MaxWidth()
		rows := make([][]string, len(t))
		for j, row := range t {
			rows[j] = append([]string{strconv.Itoa(j)}, row.Pad(width).Strings()...)
		}
		utils.PrintTable(out, rows, 2)
	}
}

func previewWorkbook(fp string, wb *sheet.Workbook) error {
	app := tview.NewApplication()
	titleBar := tview.NewTextView().SetDynamicColors(true)
	fmt.Fprintf(titleBar, "[yellow]%s[white]  ([teal]%d[white] tables)", tview.Escape(fp), wb.Len())
	tabs := widgets.NewTabPages(app)
	for _, name := range wb.Names() {
		t, _ := wb.Table(name)
		tabs.AddTab(fmt.Sprintf("%s (%d)", name, t.NumRows()), widgets.NewPreviewTable(t))
	}
	usageBar := widgets.NewUsageBar([][2]string{
		{"1-9", "Switch table"},
		{"[ ]", "Previous/next table"},
		{"q", "Quit"},
	}, 2)
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(titleBar, 1, 1, false).
		AddItem(tabs, 0, 1, true).
		AddItem(usageBar, 1, 1, false)
	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		usageBar.BeforeDraw(screen, flex)
		return false
	})
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return tabs.ProcessInput(event)
	})
	if item := tabs.CurrentItem(); item != nil {
		app.SetFocus(item)
	}
	return app.SetRoot(flex, true).Run()
}
