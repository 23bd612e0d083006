// Package tui provides a Bubble Tea terminal UI for the Ember engine.
package tui

// History keeps the most recent commands for Up/Down recall. Repeating a
// command moves it to the newest slot instead of storing it twice.
type History struct {
	entries []string
	max     int
	cursor  int // -1 while composing a fresh line
}

// NewHistory creates a history holding at most max commands.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.entries)
}

// Push records cmd as the newest entry and resets navigation.
func (h *History) Push(cmd string) {
	h.cursor = -1
	if cmd == "" {
		return
	}
	for i, e := range h.entries {
		if e == cmd {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Prev steps to the next older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps to the next newer entry. Stepping past the newest returns
// false and leaves navigation.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation without changing the entries.
func (h *History) ResetCursor() {
	h.cursor = -1
}
