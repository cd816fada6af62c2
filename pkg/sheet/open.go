// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/table"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatCSV
	FormatTSV
	FormatCSVGzip
	FormatDir
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatCSVGzip:
		return "csv.gz"
	case FormatDir:
		return "dir"
	}
	return "unknown"
}

// SingleTable reports whether files of this format hold exactly one table.
func (f Format) SingleTable() bool {
	return f == FormatCSV || f == FormatTSV || f == FormatCSVGzip
}

// DetectFormat picks a format from the path. Existing directories and paths
// ending with a separator are directories.
func DetectFormat(path string) Format {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return FormatDir
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return FormatDir
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv.gz"):
		return FormatCSVGzip
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lower, ".tsv"):
		return FormatTSV
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX
	}
	return FormatUnknown
}

// TableName derives a table name from a file path by dropping its directory
// and known extensions.
func TableName(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".csv.gz", ".csv", ".tsv", ".xlsx"} {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

func (o *options) delimiterFor(f Format) rune {
	if o.delimiter != 0 {
		return o.delimiter
	}
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Open reads the workbook at path. A single CSV file yields a workbook with
// one table named after the file.
func Open(path string, opts ...Option) (*Workbook, error) {
	o := buildOptions(opts)
	format := DetectFormat(path)
	switch format {
	case FormatDir:
		return openDir(path, o)
	case FormatXLSX:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapKind(errors.KindIO, "error opening file", err)
		}
		defer f.Close()
		wb, err := ReadXLSX(f, TableName(path))
		if err != nil {
			return nil, errors.Wrap(fmt.Sprintf("error reading %q", path), err)
		}
		return wb, nil
	case FormatCSV, FormatTSV, FormatCSVGzip:
		t, err := openTable(path, format, o)
		if err != nil {
			return nil, err
		}
		name := TableName(path)
		wb := New(name)
		if err := wb.Add(name, t); err != nil {
			return nil, err
		}
		return wb, nil
	}
	return nil, errors.Errorf(errors.KindParse, "unrecognized file format %q", path)
}

func openTable(path string, format Format, o *options) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapKind(errors.KindIO, "error opening file", err)
	}
	defer f.Close()
	var t table.Table
	if format == FormatCSVGzip {
		t, err = readGzipCSV(f, o.delimiterFor(format), o.infer)
	} else {
		t, err = readCSV(f, o.delimiterFor(format), o.infer)
	}
	if err != nil {
		return nil, errors.Wrap(fmt.Sprintf("error reading %q", path), err)
	}
	return t, nil
}

func openDir(dir string, o *options) (*Workbook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapKind(errors.KindIO, "error reading directory", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch DetectFormat(e.Name()) {
		case FormatCSV, FormatTSV, FormatCSVGzip:
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	wb := New(filepath.Base(filepath.Clean(dir)))
	for _, n := range names {
		p := filepath.Join(dir, n)
		t, err := openTable(p, DetectFormat(n), o)
		if err != nil {
			return nil, err
		}
		if err := wb.Add(TableName(n), t); err != nil {
			return nil, errors.WrapKind(errors.KindParse, "error reading directory", err)
		}
	}
	return wb, nil
}

// Save writes wb to path. CSV paths accept exactly one table, directories
// get one CSV file per table.
func Save(path string, wb *Workbook, opts ...Option) error {
	o := buildOptions(opts)
	format := DetectFormat(path)
	switch format {
	case FormatDir:
		return saveDir(path, wb, o)
	case FormatXLSX:
		return writeFile(path, func(w io.Writer) error {
			return WriteXLSX(w, wb)
		})
	case FormatCSV, FormatTSV, FormatCSVGzip:
		if wb.Len() != 1 {
			return errors.Errorf(errors.KindIO, "cannot write %d tables to a single %s file, use .xlsx or a directory", wb.Len(), format)
		}
		t, _ := wb.Table(wb.Names()[0])
		return saveTable(path, t, format, o)
	}
	return errors.Errorf(errors.KindParse, "unrecognized file format %q", path)
}

func saveTable(path string, t table.Table, format Format, o *options) error {
	return writeFile(path, func(w io.Writer) error {
		if format == FormatCSVGzip {
			return writeGzipCSV(w, t, o.delimiterFor(format))
		}
		return writeCSV(w, t, o.delimiterFor(format))
	})
}

func saveDir(dir string, wb *Workbook, o *options) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapKind(errors.KindIO, "error creating directory", err)
	}
	for _, name := range wb.Names() {
		if strings.ContainsAny(name, `/\`) {
			return errors.Errorf(errors.KindIO, "table name %q cannot be used as a file name", name)
		}
		t, _ := wb.Table(name)
		if err := saveTable(filepath.Join(dir, name+".csv"), t, FormatCSV, o); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapKind(errors.KindIO, "error creating file", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrap(fmt.Sprintf("error writing %q", path), err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapKind(errors.KindIO, "error closing file", err)
	}
	return nil
}
