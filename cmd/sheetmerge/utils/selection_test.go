// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/merge"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func TestParseKeepFlag(t *testing.T) {
	name, indices, err := ParseKeepFlag("orders:1, 2,5")
	require.NoError(t, err)
	assert.Equal(t, "orders", name)
	assert.Equal(t, []int{1, 2, 5}, indices)

	name, indices, err = ParseKeepFlag("2022:Q1:3")
	require.NoError(t, err)
	assert.Equal(t, "2022:Q1", name)
	assert.Equal(t, []int{3}, indices)

	for _, v := range []string{"orders", ":1", "orders:", "orders:a", "orders:-1"} {
		_, _, err = ParseKeepFlag(v)
		assert.True(t, errors.IsKind(err, errors.KindConfig), "%q: %v", v, err)
	}
}

func TestApplyKeepFlags(t *testing.T) {
	sels := Selections{
		"orders": {KeepDeleted: merge.NewIndexSet(7)},
	}
	require.NoError(t, ApplyKeepFlags(sels,
		[]string{"orders:1,2"},
		[]string{"people:0"},
		[]string{"orders:4", "people:3"},
	))
	assert.Equal(t, merge.NewIndexSet(1, 2, 7), sels["orders"].KeepDeleted)
	assert.True(t, sels["orders"].KeepsIncoming(4))
	assert.Equal(t, merge.NewIndexSet(0), sels["people"].KeepAdded)
	assert.True(t, sels["people"].KeepsIncoming(3))

	assert.Error(t, ApplyKeepFlags(sels, nil, []string{"bad"}, nil))
}

func TestSaveLoadSelections(t *testing.T) {
	dir, err := testutils.TempDir("", "selections")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	fp := filepath.Join(dir, "sel.yaml")

	sels := Selections{
		"orders": {
			KeepDeleted:  merge.NewIndexSet(2, 1),
			KeepIncoming: merge.NewIndexSet(0),
		},
	}
	require.NoError(t, SaveSelections(fp, sels))
	loaded, err := LoadSelections(fp)
	require.NoError(t, err)
	require.Contains(t, loaded, "orders")
	assert.Equal(t, merge.NewIndexSet(1, 2), loaded["orders"].KeepDeleted)
	assert.Equal(t, merge.NewIndexSet(0), loaded["orders"].KeepIncoming)

	_, err = LoadSelections(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.IsKind(err, errors.KindIO), "%v", err)

	require.NoError(t, os.WriteFile(fp, []byte("orders: [1, 2"), 0644))
	_, err = LoadSelections(fp)
	assert.True(t, errors.IsKind(err, errors.KindParse), "%v", err)
}

func TestSelectionsGet(t *testing.T) {
	sels := Selections{"a": nil}
	sel := sels.Get("a")
	require.NotNil(t, sel)
	assert.Same(t, sel, sels.Get("a"))
	assert.NotNil(t, sels.Get("b").KeepAdded)
}
