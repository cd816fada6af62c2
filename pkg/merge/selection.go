// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package merge

import (
	"sort"

	"github.com/wrgl/sheetmerge/pkg/diff"
	"gopkg.in/yaml.v3"
)

// IndexSet is a set of row indices. It is written to YAML as a sorted list.
type IndexSet map[int]struct{}

func NewIndexSet(indices ...int) IndexSet {
	s := IndexSet{}
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

func (s IndexSet) Add(i int) {
	s[i] = struct{}{}
}

func (s IndexSet) Remove(i int) {
	delete(s, i)
}

func (s IndexSet) Sorted() []int {
	sl := make([]int, 0, len(s))
	for i := range s {
		sl = append(sl, i)
	}
	sort.Ints(sl)
	return sl
}

func (s IndexSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

func (s *IndexSet) UnmarshalYAML(value *yaml.Node) error {
	sl := []int{}
	if err := value.Decode(&sl); err != nil {
		return err
	}
	*s = NewIndexSet(sl...)
	return nil
}

// Selection records the reviewer's decisions for one table. Deleted and
// added rows are discarded unless kept. Modified rows keep the source
// version unless their source index is in KeepIncoming, which takes
// precedence over KeepSource.
type Selection struct {
	// KeepDeleted holds source indices of deleted rows to keep.
	KeepDeleted IndexSet `yaml:"keepDeleted,omitempty" json:"keepDeleted,omitempty"`

	// KeepAdded holds incoming indices of added rows to keep.
	KeepAdded IndexSet `yaml:"keepAdded,omitempty" json:"keepAdded,omitempty"`

	// KeepSource holds source indices of modified rows explicitly kept as is.
	KeepSource IndexSet `yaml:"keepSource,omitempty" json:"keepSource,omitempty"`

	// KeepIncoming holds source indices of modified rows replaced by their
	// incoming version.
	KeepIncoming IndexSet `yaml:"keepIncoming,omitempty" json:"keepIncoming,omitempty"`
}

func NewSelection() *Selection {
	return &Selection{
		KeepDeleted:  IndexSet{},
		KeepAdded:    IndexSet{},
		KeepSource:   IndexSet{},
		KeepIncoming: IndexSet{},
	}
}

func (s *Selection) ensure() {
	if s.KeepDeleted == nil {
		s.KeepDeleted = IndexSet{}
	}
	if s.KeepAdded == nil {
		s.KeepAdded = IndexSet{}
	}
	if s.KeepSource == nil {
		s.KeepSource = IndexSet{}
	}
	if s.KeepIncoming == nil {
		s.KeepIncoming = IndexSet{}
	}
}

// KeepsIncoming reports whether the matched pair keyed by source index s
// resolves to the incoming row.
func (s *Selection) KeepsIncoming(src int) bool {
	if s == nil {
		return false
	}
	return s.KeepIncoming.Has(src)
}

// UseIncoming switches a modified row to its incoming version.
func (s *Selection) UseIncoming(src int) {
	s.ensure()
	s.KeepSource.Remove(src)
	s.KeepIncoming.Add(src)
}

// UseSource switches a modified row back to its source version.
func (s *Selection) UseSource(src int) {
	s.ensure()
	s.KeepIncoming.Remove(src)
	s.KeepSource.Add(src)
}

// Keeps reports whether the row behind a Deleted or Added event survives the
// merge. It returns false for other events.
func (s *Selection) Keeps(e diff.RowEvent) bool {
	if s == nil {
		return false
	}
	switch e.Type {
	case diff.Deleted:
		return s.KeepDeleted.Has(e.Source)
	case diff.Added:
		return s.KeepAdded.Has(e.Incoming)
	}
	return false
}

// SetKeep keeps or discards the row behind a Deleted or Added event.
func (s *Selection) SetKeep(e diff.RowEvent, keep bool) {
	s.ensure()
	var set IndexSet
	var idx int
	switch e.Type {
	case diff.Deleted:
		set, idx = s.KeepDeleted, e.Source
	case diff.Added:
		set, idx = s.KeepAdded, e.Incoming
	default:
		return
	}
	if keep {
		set.Add(idx)
	} else {
		set.Remove(idx)
	}
}

// IsEmpty reports whether the selection keeps nothing and switches nothing.
func (s *Selection) IsEmpty() bool {
	return s == nil || (len(s.KeepDeleted) == 0 && len(s.KeepAdded) == 0 && len(s.KeepIncoming) == 0)
}

// Prune returns a copy of the selection without indices that do not belong
// to a selectable event: deleted indices must name Deleted events, added
// indices Added events and side choices Modified events.
func (s *Selection) Prune(events []diff.RowEvent) *Selection {
	res := NewSelection()
	if s == nil {
		return res
	}
	for _, e := range events {
		switch e.Type {
		case diff.Deleted:
			if s.KeepDeleted.Has(e.Source) {
				res.KeepDeleted.Add(e.Source)
			}
		case diff.Added:
			if s.KeepAdded.Has(e.Incoming) {
				res.KeepAdded.Add(e.Incoming)
			}
		case diff.Modified:
			if s.KeepIncoming.Has(e.Source) {
				res.KeepIncoming.Add(e.Source)
			} else if s.KeepSource.Has(e.Source) {
				res.KeepSource.Add(e.Source)
			}
		}
	}
	return res
}
