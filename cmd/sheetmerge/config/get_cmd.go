// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
	"github.com/wrgl/sheetmerge/pkg/dotno"
)

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get value of a field.",
		Long:  "Get value of a field. Returns error code 1 if the key was not found.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "get the largest number of rows a table can have",
				Line:    "sheetmerge config get compare.maxRows",
			},
			{
				Comment: "print a whole section as YAML",
				Line:    "sheetmerge config get compare",
			},
		}),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readableConfigStore(cmd)
			if err != nil {
				return err
			}
			c, err := s.Open()
			if err != nil {
				return err
			}
			v, err := dotno.GetFieldValue(c, args[0], false)
			if err != nil {
				return fmt.Errorf("key %q is not set", args[0])
			}
			str, err := dotno.MarshalText(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), str)
			return nil
		},
	}
	return cmd
}
