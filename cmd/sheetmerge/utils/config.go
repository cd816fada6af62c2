// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/sheetmerge/pkg/conf"
	conffs "github.com/wrgl/sheetmerge/pkg/conf/fs"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/sheet"
)

// ConfigFile is the config file given with --config or SHEETMERGE_CONFIG.
func ConfigFile() string {
	return viper.GetString("config")
}

// OpenConfig reads the config file given with --config or, without one, the
// local, global and system config files layered on top of each other.
func OpenConfig(cmd *cobra.Command) (*conf.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.WrapKind(errors.KindIO, "error getting working directory", err)
	}
	return conffs.NewStore(wd, conffs.AggregateSource, ConfigFile()).Open()
}

// SheetOptions turns the CSV settings of c into reader options.
func SheetOptions(c *conf.Config) ([]sheet.Option, error) {
	delim, err := c.Delimiter()
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, "invalid compare.delimiter", err)
	}
	return []sheet.Option{
		sheet.WithDelimiter(delim),
		sheet.WithTypeInference(c.InferTypes()),
	}, nil
}
