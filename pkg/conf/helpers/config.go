// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package confhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func MockEnv(t *testing.T, key, val string) func() {
	t.Helper()
	orig, ok := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, val))
	return func() {
		if ok {
			require.NoError(t, os.Setenv(key, orig))
		} else {
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

// MockGlobalConf points the global config at a temporary directory, either
// through XDG_CONFIG_HOME or through HOME.
func MockGlobalConf(t *testing.T, setXDGConfigHome bool) func() {
	t.Helper()
	name, err := testutils.TempDir("", "test_sheetmerge_config")
	require.NoError(t, err)
	var cleanup1, cleanup2 func()
	if setXDGConfigHome {
		cleanup1 = MockEnv(t, "XDG_CONFIG_HOME", name)
	} else {
		cleanup1 = MockEnv(t, "XDG_CONFIG_HOME", "")
		cleanup2 = MockEnv(t, "HOME", name)
	}
	return func() {
		require.NoError(t, os.RemoveAll(name))
		cleanup1()
		if cleanup2 != nil {
			cleanup2()
		}
	}
}

func MockSystemConf(t *testing.T) func() {
	t.Helper()
	dir, err := testutils.TempDir("", "test_sheetmerge_config")
	require.NoError(t, err)
	cleanup := MockEnv(t, "SHEETMERGE_SYSTEM_CONFIG_DIR", dir)
	return func() {
		require.NoError(t, os.RemoveAll(dir))
		cleanup()
	}
}
