// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package main

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/pkg/sheet"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetgen INPUT OUTPUT",
		Short: "Write a randomly modified copy of a workbook",
		Long: "Write a randomly modified copy of a workbook. Comparing INPUT with OUTPUT using sheetmerge " +
			"shows modified, added and deleted rows in every table. Useful to try out or benchmark sheetmerge.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modRows, err := cmd.Flags().GetBool("mod-rows")
			if err != nil {
				return err
			}
			moveRows, err := cmd.Flags().GetBool("move-rows")
			if err != nil {
				return err
			}
			seed, err := cmd.Flags().GetInt64("seed")
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			pattern, err := cmd.Flags().GetString("tables")
			if err != nil {
				return err
			}
			g, err := glob.Compile(pattern)
			if err != nil {
				return fmt.Errorf("invalid table pattern %q: %v", pattern, err)
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			wb, err := sheet.Open(args[0])
			if err != nil {
				return err
			}
			m := newMutator(seed)
			res := sheet.New(wb.Name)
			for _, name := range wb.Names() {
				t, _ := wb.Table(name)
				if g.Match(name) {
					n := len(t)
					t = m.mutateTable(t, mutation{modRows: modRows, moveRows: moveRows})
					if verbose {
						cmd.Printf("%s: %d rows -> %d rows\n", name, n, len(t))
					}
				}
				if err = res.Add(name, t); err != nil {
					return err
				}
			}
			return sheet.Save(args[1], res)
		},
	}
	cmd.Flags().Bool("mod-rows", true, "randomly add, remove and modify rows")
	cmd.Flags().Bool("move-rows", false, "randomly move rows")
	cmd.Flags().Int64("seed", 0, "random seed, a fixed seed always produces the same output. Defaults to the current time")
	cmd.Flags().String("tables", "*", "only modify tables matching this glob pattern, other tables are copied")
	cmd.Flags().BoolP("verbose", "v", false, "print row counts of modified tables")
	return cmd
}
