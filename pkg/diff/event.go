// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package diff

import "fmt"

type EventType int

const (
	Unspecified EventType = iota
	Unchanged
	Modified
	Added
	Deleted
)

func (t EventType) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	default:
		return "unspecified"
	}
}

// RowEvent is one classified row in walk order. Source is -1 for Added
// events and Incoming is -1 for Deleted events.
type RowEvent struct {
	Type     EventType `json:"t"`
	Source   int       `json:"s"`
	Incoming int       `json:"i"`
}

func UnchangedEvent(s, i int) RowEvent {
	return RowEvent{Type: Unchanged, Source: s, Incoming: i}
}

func ModifiedEvent(s, i int) RowEvent {
	return RowEvent{Type: Modified, Source: s, Incoming: i}
}

func AddedEvent(i int) RowEvent {
	return RowEvent{Type: Added, Source: -1, Incoming: i}
}

func DeletedEvent(s int) RowEvent {
	return RowEvent{Type: Deleted, Source: s, Incoming: -1}
}

// IsMatched reports whether the event pairs a source row with an incoming row.
func (e RowEvent) IsMatched() bool {
	return e.Type == Unchanged || e.Type == Modified
}

// IsChange reports whether the event needs a decision from the reviewer.
func (e RowEvent) IsChange() bool {
	return e.Type == Modified || e.Type == Added || e.Type == Deleted
}

func (e RowEvent) String() string {
	switch e.Type {
	case Added:
		return fmt.Sprintf("%s(%d)", e.Type, e.Incoming)
	case Deleted:
		return fmt.Sprintf("%s(%d)", e.Type, e.Source)
	default:
		return fmt.Sprintf("%s(%d, %d)", e.Type, e.Source, e.Incoming)
	}
}

// Summary counts events per type.
type Summary struct {
	Unchanged int `json:"unchanged"`
	Modified  int `json:"modified"`
	Added     int `json:"added"`
	Deleted   int `json:"deleted"`
}

func Summarize(events []RowEvent) Summary {
	s := Summary{}
	for _, e := range events {
		switch e.Type {
		case Unchanged:
			s.Unchanged++
		case Modified:
			s.Modified++
		case Added:
			s.Added++
		case Deleted:
			s.Deleted++
		}
	}
	return s
}

func (s Summary) HasChanges() bool {
	return s.Modified > 0 || s.Added > 0 || s.Deleted > 0
}

func (s Summary) Total() int {
	return s.Unchanged + s.Modified + s.Added + s.Deleted
}
