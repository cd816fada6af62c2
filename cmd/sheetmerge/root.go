// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/config"
	"github.com/wrgl/sheetmerge/cmd/sheetmerge/utils"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sheetmerge",
		Short:         "Compare and merge spreadsheets row by row",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	rootCmd.PersistentFlags().String("config", "", "use this config file instead of layering .sheetmerge.yaml, the global and the system config files")
	viper.BindEnv("config", "SHEETMERGE_CONFIG")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	utils.AddLoggerFlags(rootCmd.PersistentFlags())
	utils.SetupProgressBarFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(config.RootCmd())
	return rootCmd
}
