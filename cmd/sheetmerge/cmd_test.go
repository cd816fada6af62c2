// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheetmerge

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	confhelpers "github.com/wrgl/sheetmerge/pkg/conf/helpers"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func assertCmdOutput(t *testing.T, cmd *cobra.Command, output string) {
	t.Helper()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	err := cmd.Execute()
	assert.Equal(t, output, buf.String())
	require.NoError(t, err)
}

func assertCmdFailed(t *testing.T, cmd *cobra.Command, output string, err error) {
	t.Helper()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	exErr := cmd.Execute()
	assert.True(t, errors.Contains(exErr, err), "expecting error %v to contain error %v", exErr, err)
	assert.Equal(t, output, buf.String())
}

// setupTest isolates config files and moves into a temporary directory that
// holds the local config file.
func setupTest(t *testing.T) (dir string, cleanup func()) {
	t.Helper()
	cleanGlobal := confhelpers.MockGlobalConf(t, true)
	cleanSystem := confhelpers.MockSystemConf(t)
	cleanEnv := confhelpers.MockEnv(t, "SHEETMERGE_CONFIG", "")
	dir, cleanDir := testutils.ChTempDir(t)
	return dir, func() {
		cleanDir()
		cleanEnv()
		cleanSystem()
		cleanGlobal()
	}
}

func rootCmd(args ...string) *cobra.Command {
	cmd := RootCmd()
	cmd.SetArgs(append(args, "--no-progress"))
	cmd.SetErr(bytes.NewBuffer(nil))
	return cmd
}

// syncBuffer is written by a running command while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFixture(t *testing.T, dir string) (src, inc string) {
	t.Helper()
	src = testutils.WriteFile(t, dir, "src.csv", []string{"A,1", "B,2", "C,3"})
	inc = testutils.WriteFile(t, dir, "inc.csv", []string{"A,1", "B,9", "D,4"})
	return
}

func readFile(t *testing.T, fp string) string {
	t.Helper()
	b, err := os.ReadFile(fp)
	require.NoError(t, err)
	return string(b)
}
