// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/compare"
	"github.com/wrgl/sheetmerge/pkg/sheet"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func TestRootCmd(t *testing.T) {
	dir, err := testutils.TempDir("", "sheetgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	wb := sheet.New("book")
	require.NoError(t, wb.Add("orders", testutils.UniqueTable(t, 20, 4)))
	require.NoError(t, wb.Add("people", testutils.UniqueTable(t, 5, 2)))
	in := filepath.Join(dir, "book.xlsx")
	out := filepath.Join(dir, "book2.xlsx")
	require.NoError(t, sheet.Save(in, wb))

	cmd := newRootCmd()
	buf := bytes.NewBuffer(nil)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{in, out, "--seed", "42", "--tables", "ord*", "-v"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "orders: 20 rows -> 20 rows\n", buf.String())

	src, err := sheet.Open(in)
	require.NoError(t, err)
	inc, err := sheet.Open(out)
	require.NoError(t, err)
	c, err := compare.NewComparer()
	require.NoError(t, err)
	results, err := c.Compare(context.Background(), src, inc)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "orders", results[0].Name)
	assert.Equal(t, 4, results[0].Summary.Modified)
	assert.Equal(t, 4, results[0].Summary.Added)
	assert.Equal(t, 4, results[0].Summary.Deleted)
	assert.False(t, results[1].HasChanges())
}

func TestRootCmdBadPattern(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a.csv", "b.csv", "--tables", "[a-"})
	assert.Error(t, cmd.Execute())
}
