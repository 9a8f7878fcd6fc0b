package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
)

// borderChrome is the number of cells consumed by left + right borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the interactive surface. It
// routes key messages to the active mode and renders the composed view:
// title, mode body, notice line, help bar.
type Model struct {
	session *Session
	mode    Mode
	cursor  int // menu cursor
	width   int
	height  int

	add     addState
	search  searchState
	results resultsState
	browse  browseState
	confirm confirmState

	help        help.Model
	notice      string
	noticeIsErr bool
	quitting    bool
}

// NewModel creates a menu-mode Model over the given session.
func NewModel(session *Session) Model {
	return Model{
		session: session,
		mode:    ModeMenu,
		help:    help.New(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key messages to the active mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeAdd:
		return m.updateAdd(msg)
	case ModeSearch:
		return m.updateSearch(msg)
	case ModeResults:
		return m.updateResults(msg)
	case ModeBrowse:
		return m.updateBrowse(msg)
	case ModeConfirm:
		return m.updateConfirm(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu processes keys for the action menu: cursor movement,
// enter to select, or the on-screen number directly. Digits outside
// the menu range produce an invalid-choice notice and the menu stays up.
func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(menuItems) - 1
		}
		return m, nil

	case "down", "j":
		m.cursor++
		if m.cursor >= len(menuItems) {
			m.cursor = 0
		}
		return m, nil

	case "enter":
		return m.dispatch(menuAction(m.cursor))

	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		action, ok := parseChoice(msg.String())
		if !ok {
			m.setError(fmt.Sprintf("invalid choice %q: enter a number from 1 to %d", msg.String(), len(menuItems)))
			return m, nil
		}
		m.cursor = int(action)
		return m.dispatch(action)
	}

	return m, nil
}

// dispatch runs the selected menu action.
func (m Model) dispatch(action menuAction) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.noticeIsErr = false

	switch action {
	case actionAdd:
		var cmd tea.Cmd
		m.add, cmd = newAddState()
		m.mode = ModeAdd
		return m, cmd

	case actionSave:
		if err := m.session.Save(); err != nil {
			m.setError(fmt.Sprintf("save failed: %v", err))
			return m, nil
		}
		m.setInfo(fmt.Sprintf("saved %d contacts to %s", m.session.Len(), m.session.Path()))
		return m, nil

	case actionLoad:
		res := m.session.Load()
		switch {
		case res.Err != nil:
			m.setError(fmt.Sprintf("book not loaded: %v", res.Err))
		case !res.Found:
			m.setInfo(fmt.Sprintf("no saved book at %s yet", m.session.Path()))
		default:
			m.setInfo(fmt.Sprintf("loaded %d contacts from %s", res.Count, m.session.Path()))
		}
		return m, nil

	case actionSearch:
		var cmd tea.Cmd
		m.search, cmd = newSearchState()
		m.mode = ModeSearch
		return m, cmd

	case actionBrowse:
		m.browse = newBrowseState(m.session)
		m.mode = ModeBrowse
		return m, nil

	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// setError records a notice rendered in the error style.
func (m *Model) setError(text string) {
	m.notice = text
	m.noticeIsErr = true
}

// setInfo records a notice rendered in the muted style.
func (m *Model) setInfo(text string) {
	m.notice = text
	m.noticeIsErr = false
}

// View renders the composed screen for the active mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Rolodex (%d contacts)", m.session.Len())))
	b.WriteString("\n\n")

	switch m.mode {
	case ModeAdd:
		b.WriteString(m.viewAdd())
	case ModeSearch:
		b.WriteString(m.viewSearch())
	case ModeResults:
		b.WriteString(m.viewResults())
	case ModeBrowse:
		b.WriteString(m.browse.View(m.width, m.session))
	case ModeConfirm:
		b.WriteString(m.confirm.View())
	default:
		b.WriteString(m.viewMenu())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		if m.noticeIsErr {
			b.WriteString(errorText.Render(m.notice))
		} else {
			b.WriteString(mutedText.Render(m.notice))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(HelpBindings(m.mode)))
	return b.String()
}

// viewMenu renders the numbered action list with the cursor marker.
func (m Model) viewMenu() string {
	var b strings.Builder
	for i, item := range menuItems {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(CursorMarker + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return b.String()
}

// summaryLine renders a one-line listing for search results and browse rows.
func summaryLine(s *Session, r contact.Record) string {
	line := r.Name().String() + "  " + r.Phone().String()
	if !r.Email().IsZero() {
		line += "  " + r.Email().String()
	}
	if days, ok := s.DaysToBirthday(r); ok {
		line += "  " + birthdayHint(days)
	}
	return line
}

// birthdayHint phrases a days-to-birthday count.
func birthdayHint(days int) string {
	switch days {
	case 0:
		return "(birthday today)"
	case 1:
		return "(birthday tomorrow)"
	default:
		return fmt.Sprintf("(birthday in %d days)", days)
	}
}

// detailLines renders the full record for the browse detail pane.
func detailLines(s *Session, r contact.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:     %s\n", r.Name())
	fmt.Fprintf(&b, "Phone:    %s\n", r.Phone())
	email := r.Email().String()
	if email == "" {
		email = "(none)"
	}
	fmt.Fprintf(&b, "Email:    %s\n", email)
	if r.HasBirthday() {
		fmt.Fprintf(&b, "Birthday: %s", r.Birthday())
		if days, ok := s.DaysToBirthday(r); ok {
			fmt.Fprintf(&b, " %s", birthdayHint(days))
		}
	} else {
		b.WriteString("Birthday: (none)")
	}
	return b.String()
}
