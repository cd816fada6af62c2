// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package config

import (
	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/dotno"
)

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Set value for a field.",
		Long:  "Set value for a field. List fields such as compare.tables take a comma separated list. For boolean fields, only \"true\" or \"false\" value can be set.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "alter setting in the local config",
				Line:    "sheetmerge config set compare.maxRows 5000",
			},
			{
				Comment: "only compare tables whose name starts with \"2022\"",
				Line:    "sheetmerge config set compare.tables '2022*' --global",
			},
			{
				Comment: "wait a second before comparing again in watch mode",
				Line:    "sheetmerge config set diff.watchDebounce 1s --system",
			},
		}),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := writeableConfigStore(cmd)
			if err != nil {
				return err
			}
			c, err := s.Open()
			if err != nil {
				return err
			}
			if err = dotno.SetWithDotNotation(c, args[0], args[1]); err != nil {
				return err
			}
			return s.Save(c)
		},
	}
	return cmd
}
