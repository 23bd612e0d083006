package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/ember/engine/direction"
	"github.com/nathoo/ember/engine/state"
)

// renderStatusBar produces a full-width status line showing the current
// room, facing, relative exits, inventory and move count.
func (m Model) renderStatusBar() string {
	p := m.engine.Player

	roomName := state.DisplayName(p.Room)
	var exits []string
	if room, ok := m.engine.World.Rooms[p.Room]; ok {
		roomName = room.DisplayName()
		for _, abs := range direction.Compass {
			if _, ok := room.Exits[abs]; !ok {
				continue
			}
			if rel, err := direction.Relative(p.Facing, abs); err == nil {
				exits = append(exits, rel)
			}
		}
	}

	left := fmt.Sprintf(" %s | Facing %s | Exits: %s", roomName, p.Facing, strings.Join(exits, ","))
	right := fmt.Sprintf("M:%d ", p.MoveCount)

	// Show inventory items if they fit, otherwise just count.
	if n := len(p.Inventory); n > 0 {
		candidate := fmt.Sprintf("Inv: %s | M:%d ", strings.Join(state.ItemNames(p.Inventory), ", "), p.MoveCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | M:%d ", n, p.MoveCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
