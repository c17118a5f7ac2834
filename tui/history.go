// Package tui provides a Bubble Tea terminal UI for the Vantage engine.
package tui

// History keeps the most recent commands for up/down recall. The cursor
// sits at len(entries) when the player is typing a fresh line and walks
// backward through the slice while navigating.
type History struct {
	entries []string
	max     int
	cursor  int
}

// NewHistory creates a history buffer holding at most max commands.
func NewHistory(max int) *History {
	return &History{entries: make([]string, 0, max), max: max}
}

// Push records a submitted command and puts the cursor back on the fresh
// line. Repeating the most recent command adds nothing; the oldest entry
// is evicted once the buffer is full.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.max {
			h.entries = h.entries[1:]
		}
	}
	h.cursor = len(h.entries)
}

// Prev moves one step toward the oldest entry and returns it. It reports
// false only when there is no history at all; at the oldest entry it
// keeps returning that entry.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves one step toward the newest entry. Stepping past it reports
// false and leaves the cursor on the fresh line.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		h.cursor = len(h.entries)
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// ResetCursor abandons navigation and returns to the fresh line.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}
