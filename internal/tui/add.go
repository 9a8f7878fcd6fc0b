package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// addFieldCount is the number of inputs on the add form.
const addFieldCount = 4

// addLabels name the form inputs in walk order.
var addLabels = [addFieldCount]string{"Name", "Phone", "Email", "Birthday"}

// addState holds the add-contact form inputs and focus position.
type addState struct {
	inputs [addFieldCount]textinput.Model
	focus  int
}

// newAddState builds a fresh form with the first input focused.
func newAddState() (addState, tea.Cmd) {
	placeholders := [addFieldCount]string{
		"Anna",
		"+0123456789",
		"anna@example.com",
		"1996-05-20 (optional)",
	}

	var st addState
	for i := range st.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 40
		st.inputs[i] = ti
	}
	cmd := st.inputs[0].Focus()
	return st, cmd
}

// updateAdd routes keys to the form: tab and shift+tab cycle focus,
// enter advances and submits from the last input, esc abandons the
// form. Everything else goes to the focused text input.
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeMenu
		m.setInfo("add cancelled")
		return m, nil

	case "enter":
		if m.add.focus == addFieldCount-1 {
			return m.submitAdd()
		}
		return m.focusAdd(m.add.focus + 1)

	case "tab", "down":
		return m.focusAdd((m.add.focus + 1) % addFieldCount)

	case "shift+tab", "up":
		return m.focusAdd((m.add.focus + addFieldCount - 1) % addFieldCount)
	}

	var cmd tea.Cmd
	m.add.inputs[m.add.focus], cmd = m.add.inputs[m.add.focus].Update(msg)
	return m, cmd
}

// focusAdd moves form focus to index i.
func (m Model) focusAdd(i int) (tea.Model, tea.Cmd) {
	m.add.inputs[m.add.focus].Blur()
	m.add.focus = i
	cmd := m.add.inputs[i].Focus()
	return m, cmd
}

// submitAdd validates the four inputs and stores the record. A
// validation failure returns to the menu with the error shown and the
// book untouched.
func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	r, err := m.session.Add(
		m.add.inputs[0].Value(),
		m.add.inputs[1].Value(),
		m.add.inputs[2].Value(),
		m.add.inputs[3].Value(),
	)
	m.mode = ModeMenu
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.setInfo(fmt.Sprintf("added %s", r.Name()))
	return m, nil
}

// viewAdd renders the labeled form.
func (m Model) viewAdd() string {
	var b strings.Builder
	b.WriteString("Add contact\n\n")
	for i := range m.add.inputs {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := fmt.Sprintf("%-9s", addLabels[i])
		if i == m.add.focus {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString(m.add.inputs[i].View())
	}
	return b.String()
}
