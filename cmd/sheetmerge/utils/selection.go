// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wrgl/sheetmerge/pkg/diff"
	"github.com/wrgl/sheetmerge/pkg/errors"
	"github.com/wrgl/sheetmerge/pkg/merge"
	"gopkg.in/yaml.v3"
)

// Selections maps table names to the reviewer's decisions for that table.
type Selections map[string]*merge.Selection

func (s Selections) Get(name string) *merge.Selection {
	if sel, ok := s[name]; ok && sel != nil {
		return sel
	}
	sel := merge.NewSelection()
	s[name] = sel
	return sel
}

// LoadSelections reads a selection file written by SaveSelections.
func LoadSelections(fp string) (Selections, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, errors.WrapKind(errors.KindIO, "error reading selection file", err)
	}
	sels := Selections{}
	if err = yaml.Unmarshal(b, &sels); err != nil {
		return nil, errors.WrapKind(errors.KindParse, fmt.Sprintf("error parsing selection file %q", fp), err)
	}
	return sels, nil
}

func SaveSelections(fp string, sels Selections) error {
	b, err := yaml.Marshal(sels)
	if err != nil {
		return errors.WrapKind(errors.KindParse, "error encoding selections", err)
	}
	if err = os.WriteFile(fp, b, 0644); err != nil {
		return errors.WrapKind(errors.KindIO, "error writing selection file", err)
	}
	return nil
}

// ParseKeepFlag parses a value of the form "TABLE:1,2,5" into a table name and
// row indices. The last colon separates the table name so names may contain
// colons themselves.
func ParseKeepFlag(v string) (name string, indices []int, err error) {
	i := strings.LastIndex(v, ":")
	if i <= 0 {
		return "", nil, errors.Errorf(errors.KindConfig, "invalid value %q, expected TABLE:ROW[,ROW...]", v)
	}
	name = v[:i]
	for _, s := range strings.Split(v[i+1:], ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return "", nil, errors.Errorf(errors.KindConfig, "invalid row index %q in %q", s, v)
		}
		indices = append(indices, n)
	}
	if len(indices) == 0 {
		return "", nil, errors.Errorf(errors.KindConfig, "no row index in %q", v)
	}
	return name, indices, nil
}

// ApplyKeepFlags records --keep-deleted, --keep-added and --keep-incoming
// values into sels.
func ApplyKeepFlags(sels Selections, keepDeleted, keepAdded, keepIncoming []string) error {
	for _, kf := range []struct {
		values []string
		apply  func(sel *merge.Selection, i int)
	}{
		{keepDeleted, func(sel *merge.Selection, i int) { sel.SetKeep(diff.DeletedEvent(i), true) }},
		{keepAdded, func(sel *merge.Selection, i int) { sel.SetKeep(diff.AddedEvent(i), true) }},
		{keepIncoming, func(sel *merge.Selection, i int) { sel.UseIncoming(i) }},
	} {
		for _, v := range kf.values {
			name, indices, err := ParseKeepFlag(v)
			if err != nil {
				return err
			}
			sel := sels.Get(name)
			for _, i := range indices {
				kf.apply(sel, i)
			}
		}
	}
	return nil
}
