// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

//go:build windows

package conffs

// Roaming APPDATA is only used when LOCALAPPDATA is missing since sheetmerge
// config often names machine specific paths such as merge.output.
var configDirEnvs = []string{"LOCALAPPDATA", "APPDATA"}

var homeConfigDir = []string{"AppData", "Local"}
