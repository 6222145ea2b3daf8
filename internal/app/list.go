package app

import "github.com/sevenam/glance/internal/gitlog"

// selectionCapacity bounds the selections FIFO. It is modeled as a
// queue, not a single optional index, to leave room for raising the
// bound to support multi-select later without reshaping callers.
const selectionCapacity = 1

// Entry wraps one decoded commit row with its multi-select state.
type Entry struct {
	gitlog.LogEntry
	Selected bool
}

// List is the ordered, append-only sequence of Entry rows ingestion
// appends into, plus the selection FIFO.
type List struct {
	entries    []Entry
	selections []int
}

// Reset clears the list and all selections.
func (l *List) Reset() {
	l.entries = nil
	l.selections = nil
}

// Append adds newly-ingested entries to the end of the list.
func (l *List) Append(entries []gitlog.LogEntry) {
	for _, e := range entries {
		l.entries = append(l.entries, Entry{LogEntry: e})
	}
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// At returns the entry at index i.
func (l *List) At(i int) Entry { return l.entries[i] }

// ToggleSelect flips entry i's selection. If i is already selected, it
// is deselected. Otherwise, if the FIFO is at capacity, the oldest
// selection is evicted and deselected before i is selected and pushed.
func (l *List) ToggleSelect(i int) {
	if i < 0 || i >= len(l.entries) {
		return
	}
	for idx, sel := range l.selections {
		if sel == i {
			l.entries[i].Selected = false
			l.selections = append(l.selections[:idx], l.selections[idx+1:]...)
			return
		}
	}
	if len(l.selections) >= selectionCapacity {
		evict := l.selections[0]
		l.entries[evict].Selected = false
		l.selections = l.selections[1:]
	}
	l.entries[i].Selected = true
	l.selections = append(l.selections, i)
}

// SelectedIndex returns the oldest (and, at capacity 1, only) selected
// index.
func (l *List) SelectedIndex() (int, bool) {
	if len(l.selections) == 0 {
		return 0, false
	}
	return l.selections[0], true
}
