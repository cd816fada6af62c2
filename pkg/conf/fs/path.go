// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"os"
	"path/filepath"

	"github.com/wrgl/sheetmerge/pkg/errors"
)

const LocalConfigName = ".sheetmerge.yaml"

func systemConfigPath() string {
	if s := os.Getenv("SHEETMERGE_SYSTEM_CONFIG_DIR"); s != "" {
		return filepath.Join(s, "config.yaml")
	}
	return "/usr/local/etc/sheetmerge/config.yaml"
}

// globalConfigPath returns the per-user config file under the first config
// directory named by configDirEnvs, falling back to homeConfigDir.
func globalConfigPath() (string, error) {
	for _, name := range configDirEnvs {
		if dir := os.Getenv(name); dir != "" {
			return filepath.Join(dir, "sheetmerge", "config.yaml"), nil
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{homeDir}, homeConfigDir...), "sheetmerge", "config.yaml")...), nil
}

func localPath(rootDir string) string {
	return filepath.Join(rootDir, LocalConfigName)
}

func (s *Store) path() (string, error) {
	switch s.source {
	case SystemSource:
		return systemConfigPath(), nil
	case GlobalSource:
		fp, err := globalConfigPath()
		if err != nil {
			return "", errors.WrapKind(errors.KindIO, "error locating global config", err)
		}
		return fp, nil
	case LocalSource:
		return localPath(s.rootDir), nil
	case FileSource:
		return s.fp, nil
	default:
		return "", errors.Errorf(errors.KindConfig, "unrecognized source: %v", s.source)
	}
}
