package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marisk/vantage/types"
)

// roomDisplayName derives a human-readable name from a room ID.
// "grand_atrium" -> "Grand Atrium".
func roomDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// current room, its exits, and the turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	room := m.engine.Room()

	name := room.Title
	if name == "" {
		name = roomDisplayName(s.CurrentRoom)
	}

	var dirs []string
	for _, d := range types.Directions {
		if _, ok := room.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}

	left := fmt.Sprintf(" %s | Exits: %s", name, strings.Join(dirs, ","))
	right := fmt.Sprintf("T:%d ", s.TurnCount)
	if m.trace {
		right = fmt.Sprintf("fun:%d | %s", s.FunValue, right)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
