package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
)

// searchState holds the query input.
type searchState struct {
	input textinput.Model
}

// newSearchState builds a fresh query input with focus.
func newSearchState() (searchState, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "name, email, or phone fragment"
	ti.CharLimit = 64
	ti.Width = 40
	cmd := ti.Focus()
	return searchState{input: ti}, cmd
}

// updateSearch routes keys to the query input: enter runs the search,
// esc returns to the menu.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeMenu
		return m, nil

	case "enter":
		query := m.search.input.Value()
		m.results = resultsState{query: query, matches: m.session.Search(query)}
		m.mode = ModeResults
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

// viewSearch renders the query prompt.
func (m Model) viewSearch() string {
	return "Search contacts\n\n" + m.search.input.View()
}

// resultsState holds the outcome of the last search.
type resultsState struct {
	query   string
	matches []contact.Record
}

// updateResults waits for the user to leave the result listing.
func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.mode = ModeMenu
	}
	return m, nil
}

// viewResults renders the matches in insertion order.
func (m Model) viewResults() string {
	if len(m.results.matches) == 0 {
		return fmt.Sprintf("No matches for %q", m.results.query)
	}

	word := "matches"
	if len(m.results.matches) == 1 {
		word = "match"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s for %q\n", len(m.results.matches), word, m.results.query)
	for _, r := range m.results.matches {
		b.WriteByte('\n')
		b.WriteString("  " + summaryLine(m.session, r))
	}
	return b.String()
}
