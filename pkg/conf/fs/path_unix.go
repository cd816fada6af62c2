// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

//go:build !windows

package conffs

// configDirEnvs name the variables that may hold the user's config directory,
// in order of preference.
var configDirEnvs = []string{"XDG_CONFIG_HOME"}

// homeConfigDir is joined to the home directory when no variable is set.
var homeConfigDir = []string{".config"}
