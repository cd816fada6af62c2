// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wrgl/sheetmerge/pkg/pbar"
)

func SetupProgressBarFlags(flags *pflag.FlagSet) {
	flags.Bool("no-progress", false, "don't display progress bar")
}

// GetProgressBarContainer returns a container that renders to stderr, or a
// quiet one when --no-progress is set or stderr is not a terminal.
func GetProgressBarContainer(cmd *cobra.Command) (*pbar.Container, error) {
	noP, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return nil, err
	}
	out := cmd.ErrOrStderr()
	return pbar.NewContainer(out, noP || !IsTerminal(out)), nil
}
