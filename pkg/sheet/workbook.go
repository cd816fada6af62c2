// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sheet

import (
	"fmt"

	"github.com/wrgl/sheetmerge/pkg/table"
)

// Workbook is an ordered collection of uniquely named tables.
type Workbook struct {
	Name   string
	names  []string
	tables map[string]table.Table
}

func New(name string) *Workbook {
	return &Workbook{
		Name:   name,
		tables: map[string]table.Table{},
	}
}

// Add appends a table. Names must be unique within the workbook.
func (w *Workbook) Add(name string, t table.Table) error {
	if _, ok := w.tables[name]; ok {
		return fmt.Errorf("duplicate table name %q", name)
	}
	w.names = append(w.names, name)
	w.tables[name] = t
	return nil
}

// Names returns table names in workbook order.
func (w *Workbook) Names() []string {
	return append([]string{}, w.names...)
}

func (w *Workbook) Table(name string) (table.Table, bool) {
	t, ok := w.tables[name]
	return t, ok
}

func (w *Workbook) Len() int {
	return len(w.names)
}
