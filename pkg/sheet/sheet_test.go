// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/table"
	"github.com/wrgl/sheetmerge/pkg/testutils"
)

func TestWorkbook(t *testing.T) {
	wb := New("book")
	require.NoError(t, wb.Add("b", table.FromStrings([][]string{{"1"}})))
	require.NoError(t, wb.Add("a", table.FromStrings([][]string{{"2"}})))
	assert.Error(t, wb.Add("b", nil))
	assert.Equal(t, []string{"b", "a"}, wb.Names())
	assert.Equal(t, 2, wb.Len())
	tbl, ok := wb.Table("a")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"2"}}, tbl.Strings())
	_, ok = wb.Table("c")
	assert.False(t, ok)

	names := wb.Names()
	names[0] = "z"
	assert.Equal(t, []string{"b", "a"}, wb.Names())
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, FormatDir, DetectFormat(dir))
	assert.Equal(t, FormatDir, DetectFormat("out"+string(filepath.Separator)))
	assert.Equal(t, FormatCSV, DetectFormat("a.CSV"))
	assert.Equal(t, FormatTSV, DetectFormat("a.tsv"))
	assert.Equal(t, FormatCSVGzip, DetectFormat("a.csv.gz"))
	assert.Equal(t, FormatXLSX, DetectFormat("a.xlsx"))
	assert.Equal(t, FormatUnknown, DetectFormat("a.txt"))
	assert.Equal(t, "people", TableName("/tmp/people.csv.gz"))
	assert.Equal(t, "Book", TableName("Book.XLSX"))
}

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,,1\nb\n"))
	require.NoError(t, err)
	require.Len(t, tbl, 2)
	assert.Equal(t, table.Row{table.String("a"), table.Absent(), table.String("1")}, tbl[0])
	assert.Equal(t, table.Row{table.String("b")}, tbl[1])

	tbl, err = ReadCSV(strings.NewReader("a;1;true\n"), WithDelimiter(';'), WithTypeInference(true))
	require.NoError(t, err)
	assert.Equal(t, table.Row{table.String("a"), table.Number(1), table.Bool(true)}, tbl[0])

	_, err = ReadCSV(strings.NewReader("a,b\"c\n"))
	assert.True(t, errors.IsKind(err, errors.KindParse), "%v", err)
}

func TestWriteCSV(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	tbl := table.Table{
		{table.String("a"), table.Absent(), table.Number(1.5)},
		{table.Bool(true)},
	}
	require.NoError(t, WriteCSV(buf, tbl, WithDelimiter('\t')))
	assert.Equal(t, "a\t\t1.5\nTRUE\n", buf.String())
}

func TestOpenCSV(t *testing.T) {
	dir := t.TempDir()
	fp := testutils.WriteFile(t, dir, "people.csv", []string{"name,age", "alice,30"})
	wb, err := Open(fp)
	require.NoError(t, err)
	assert.Equal(t, []string{"people"}, wb.Names())
	tbl, _ := wb.Table("people")
	assert.Equal(t, [][]string{{"name", "age"}, {"alice", "30"}}, tbl.Strings())

	fp = testutils.WriteFile(t, dir, "pets.tsv", []string{"cat\t2"})
	wb, err = Open(fp)
	require.NoError(t, err)
	tbl, _ = wb.Table("pets")
	assert.Equal(t, [][]string{{"cat", "2"}}, tbl.Strings())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.IsKind(err, errors.KindIO), "%v", err)

	fp := testutils.WriteFile(t, dir, "notes.txt", []string{"hello"})
	_, err = Open(fp)
	assert.True(t, errors.IsKind(err, errors.KindParse), "%v", err)

	fp = testutils.WriteFile(t, dir, "broken.xlsx", []string{"not a zip"})
	_, err = Open(fp)
	assert.True(t, errors.IsKind(err, errors.KindParse), "%v", err)

	fp = testutils.WriteFile(t, dir, "broken.csv.gz", []string{"not gzip"})
	_, err = Open(fp)
	assert.True(t, errors.IsKind(err, errors.KindParse), "%v", err)
}

func TestGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tbl := testutils.UniqueTable(t, 30, 3)
	wb := New("data")
	require.NoError(t, wb.Add("data", tbl))
	fp := filepath.Join(dir, "data.csv.gz")
	require.NoError(t, Save(fp, wb))

	res, err := Open(fp)
	require.NoError(t, err)
	got, ok := res.Table("data")
	require.True(t, ok)
	assert.Equal(t, tbl.Strings(), got.Strings())
}

func TestSaveCSVRequiresSingleTable(t *testing.T) {
	wb := New("book")
	require.NoError(t, wb.Add("a", table.Table{}))
	require.NoError(t, wb.Add("b", table.Table{}))
	err := Save(filepath.Join(t.TempDir(), "out.csv"), wb)
	assert.True(t, errors.IsKind(err, errors.KindIO), "%v", err)
}

func TestDirRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "book")
	wb := New("book")
	require.NoError(t, wb.Add("zeta", table.FromStrings([][]string{{"z", "1"}})))
	require.NoError(t, wb.Add("alpha", table.FromStrings([][]string{{"a", "2"}, {"b"}})))
	require.NoError(t, Save(dir+string(filepath.Separator), wb))

	_, err := os.Stat(filepath.Join(dir, "zeta.csv"))
	require.NoError(t, err)
	testutils.WriteFile(t, dir, "ignored.txt", []string{"x"})

	res, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "book", res.Name)
	assert.Equal(t, []string{"alpha", "zeta"}, res.Names())
	tbl, _ := res.Table("alpha")
	assert.Equal(t, [][]string{{"a", "2"}, {"b"}}, tbl.Strings())
}

func TestXLSXRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "book.xlsx")
	wb := New("book")
	orders := table.Table{
		{table.String("id"), table.String("qty"), table.String("paid")},
		{table.String("007"), table.Number(2.5), table.Bool(true)},
		{table.String("008"), table.Absent(), table.Bool(false)},
	}
	require.NoError(t, wb.Add("orders", orders))
	require.NoError(t, wb.Add("Sheet1", table.FromStrings([][]string{{"x"}})))
	require.NoError(t, wb.Add("empty", table.Table{}))
	require.NoError(t, Save(fp, wb))

	res, err := Open(fp)
	require.NoError(t, err)
	assert.Equal(t, "book", res.Name)
	assert.Equal(t, []string{"orders", "Sheet1", "empty"}, res.Names())
	got, _ := res.Table("orders")
	assert.True(t, orders.Equal(got), "%v", got.Strings())
	got, _ = res.Table("empty")
	assert.Empty(t, got)
}

func TestXLSXDefaultSheetRemoved(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "book.xlsx")
	wb := New("book")
	require.NoError(t, wb.Add("only", table.FromStrings([][]string{{"a"}})))
	require.NoError(t, Save(fp, wb))
	res, err := Open(fp)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, res.Names())
}

func TestFormatSingleTable(t *testing.T) {
	assert.True(t, FormatCSV.SingleTable())
	assert.True(t, FormatTSV.SingleTable())
	assert.True(t, FormatCSVGzip.SingleTable())
	assert.False(t, FormatXLSX.SingleTable())
	assert.False(t, FormatDir.SingleTable())
	assert.False(t, FormatUnknown.SingleTable())
}
