// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

import (
	"encoding/csv"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/table"
)

// ReadCSV reads a whole CSV stream into a table. Rows may have different
// lengths. Empty fields become absent cells.
func ReadCSV(r io.Reader, opts ...Option) (table.Table, error) {
	o := buildOptions(opts)
	return readCSV(r, o.delimiter, o.infer)
}

func readCSV(r io.Reader, delim rune, infer bool) (table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if delim != 0 {
		reader.Comma = delim
	}
	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, errors.WrapKind(errors.KindParse, "error parsing csv", err)
		}
		return nil, errors.WrapKind(errors.KindIO, "error reading csv", err)
	}
	if infer {
		return table.FromText(records), nil
	}
	t := make(table.Table, len(records))
	for i, rec := range records {
		row := make(table.Row, len(rec))
		for j, s := range rec {
			if s == "" {
				row[j] = table.Absent()
			} else {
				row[j] = table.String(s)
			}
		}
		t[i] = row
	}
	return t, nil
}

// WriteCSV writes every row of t. Absent cells are written as empty fields.
func WriteCSV(w io.Writer, t table.Table, opts ...Option) error {
	o := buildOptions(opts)
	return writeCSV(w, t, o.delimiter)
}

func writeCSV(w io.Writer, t table.Table, delim rune) error {
	writer := csv.NewWriter(w)
	if delim != 0 {
		writer.Comma = delim
	}
	if err := writer.WriteAll(t.Strings()); err != nil {
		return errors.WrapKind(errors.KindIO, "error writing csv", err)
	}
	return nil
}

func readGzipCSV(r io.Reader, delim rune, infer bool) (table.Table, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.WrapKind(errors.KindParse, "error opening gzip stream", err)
	}
	defer gzr.Close()
	return readCSV(gzr, delim, infer)
}

func writeGzipCSV(w io.Writer, t table.Table, delim rune) error {
	gzw := gzip.NewWriter(w)
	if err := writeCSV(gzw, t, delim); err != nil {
		return err
	}
	if err := gzw.Close(); err != nil {
		return errors.WrapKind(errors.KindIO, "error closing gzip stream", err)
	}
	return nil
}
