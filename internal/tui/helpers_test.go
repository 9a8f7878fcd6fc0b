package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/snapshot"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// keyRunes builds a rune key message for s.
func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// enterKey is the enter key message.
func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// escKey is the escape key message.
func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

// send feeds messages through Update in order and returns the final model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		newModel, _ := m.Update(msg)
		m = newModel.(Model)
	}
	return m
}

// testSession builds a Session over a temp-dir JSON store with a page
// size of 3.
func testSession(t *testing.T) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.json")
	store := snapshot.NewFileStore(path, snapshot.JSONCodec{})
	return NewSession(store, 3, nil)
}

// mustAdd stores a record, failing the test on invalid input.
func mustAdd(t *testing.T, s *Session, name, phone, email, birthday string) contact.Record {
	t.Helper()
	r, err := s.Add(name, phone, email, birthday)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", name, err)
	}
	return r
}
