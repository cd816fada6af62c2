// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

import (
	"io"
	"strconv"

	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/table"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// ReadXLSX reads every sheet of an XLSX workbook in sheet order.
func ReadXLSX(r io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapKind(errors.KindParse, "error opening xlsx", err)
	}
	defer f.Close()
	wb := New(name)
	for _, sheetName := range f.GetSheetList() {
		t, err := readSheet(f, sheetName)
		if err != nil {
			return nil, err
		}
		if err := wb.Add(sheetName, t); err != nil {
			return nil, errors.WrapKind(errors.KindParse, "error adding sheet", err)
		}
	}
	return wb, nil
}

func readSheet(f *excelize.File, sheetName string) (table.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapKind(errors.KindParse, "error reading sheet "+sheetName, err)
	}
	t := make(table.Table, len(rows))
	for i, cols := range rows {
		row := make(table.Row, len(cols))
		for j, v := range cols {
			if v == "" {
				row[j] = table.Absent()
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, errors.WrapKind(errors.KindParse, "error locating cell", err)
			}
			typ, err := f.GetCellType(sheetName, axis)
			if err != nil {
				return nil, errors.WrapKind(errors.KindParse, "error reading cell type at "+axis, err)
			}
			row[j] = cellFromXLSX(typ, v)
		}
		t[i] = row
	}
	return t, nil
}

func cellFromXLSX(typ excelize.CellType, v string) table.Cell {
	switch typ {
	case excelize.CellTypeBool:
		return table.Bool(v == "1" || v == "TRUE" || v == "true")
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		// cells without a type attribute hold numbers
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return table.Number(n)
		}
	}
	return table.String(v)
}

// WriteXLSX writes every table of wb as a sheet in workbook order. An empty
// workbook is written with a single blank sheet.
func WriteXLSX(w io.Writer, wb *Workbook) error {
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range wb.Names() {
		if i == 0 {
			f.SetSheetName(defaultSheet, name)
			if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
				return errors.Errorf(errors.KindIO, "error naming sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.WrapKind(errors.KindIO, "error creating sheet "+name, err)
		}
		t, _ := wb.Table(name)
		if err := writeSheet(f, name, t); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return errors.WrapKind(errors.KindIO, "error writing xlsx", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t table.Table) error {
	for i, row := range t {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WrapKind(errors.KindIO, "error locating row", err)
		}
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c.Value()
		}
		if err := f.SetSheetRow(name, axis, &values); err != nil {
			return errors.WrapKind(errors.KindIO, "error writing row to "+name, err)
		}
	}
	return nil
}
