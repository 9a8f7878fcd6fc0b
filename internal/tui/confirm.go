package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmState holds the pending removal.
type confirmState struct {
	name string
}

// updateConfirm waits for the removal decision: enter removes the
// contact and restarts the browse listing, esc returns to it unchanged.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		removed := m.session.Delete(m.confirm.name)
		m.mode = ModeBrowse
		m.browse = m.browse.restart(m.session)
		if removed {
			m.setInfo(fmt.Sprintf("removed %s", m.confirm.name))
		}
		return m, nil

	case "esc":
		m.mode = ModeBrowse
		return m, nil
	}

	return m, nil
}

// View renders the removal confirmation.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Remove %s from the book?\n", cs.name)
	b.WriteString("\n  The removal is kept on the next save.")
	b.WriteString("\n\n  [Enter] Confirm   [Esc] Cancel")
	return b.String()
}
