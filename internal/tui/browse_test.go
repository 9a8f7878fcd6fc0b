package tui

import (
	"strings"
	"testing"
)

// seedFive fills the session with five contacts so the page size of
// three yields two pages.
func seedFive(t *testing.T, s *Session) {
	t.Helper()
	mustAdd(t, s, "Anna", "0123456789", "anna@x.com", "")
	mustAdd(t, s, "Bob", "0123456780", "bob@x.com", "")
	mustAdd(t, s, "Cara", "0123456781", "", "")
	mustAdd(t, s, "Dave", "0123456782", "", "")
	mustAdd(t, s, "Eve", "0123456783", "", "")
}

func TestBrowse_FirstPage(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)

	m = send(t, m, keyRunes("5"))

	if m.mode != ModeBrowse {
		t.Fatalf("mode = %d, want ModeBrowse", m.mode)
	}
	if m.browse.pageNum != 1 {
		t.Errorf("pageNum = %d, want 1", m.browse.pageNum)
	}
	if len(m.browse.page) != 3 {
		t.Errorf("page size = %d, want 3", len(m.browse.page))
	}
	if got := m.browse.page[0].Name().String(); got != "Anna" {
		t.Errorf("page[0] = %q, want Anna", got)
	}
}

func TestBrowse_NextPage_ThenWrapsToFreshPass(t *testing.T) {
	// Given: browse mode over five contacts paged by three
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"))

	// When: advancing to the second page
	m = send(t, m, keyRunes("n"))

	// Then: the short final page holds the remaining two contacts
	if m.browse.pageNum != 2 {
		t.Fatalf("pageNum = %d, want 2", m.browse.pageNum)
	}
	if len(m.browse.page) != 2 {
		t.Fatalf("page size = %d, want 2", len(m.browse.page))
	}
	if got := m.browse.page[0].Name().String(); got != "Dave" {
		t.Errorf("page[0] = %q, want Dave", got)
	}

	// When: advancing past the end
	m = send(t, m, keyRunes("n"))

	// Then: a fresh pass begins at page one
	if m.browse.pageNum != 1 {
		t.Errorf("pageNum = %d, want 1 after wrap", m.browse.pageNum)
	}
	if got := m.browse.page[0].Name().String(); got != "Anna" {
		t.Errorf("page[0] = %q, want Anna after wrap", got)
	}
}

func TestBrowse_RestartKey(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"), keyRunes("n"))

	m = send(t, m, keyRunes("r"))

	if m.browse.pageNum != 1 {
		t.Errorf("pageNum = %d, want 1 after restart", m.browse.pageNum)
	}
}

func TestBrowse_CursorWrapsWithinPage(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"))

	// Up from the top wraps to the last row of the page.
	m = send(t, m, keyRunes("k"))
	if m.browse.cursor != 2 {
		t.Errorf("after k: cursor = %d, want 2", m.browse.cursor)
	}

	// Down from the bottom wraps back.
	m = send(t, m, keyRunes("j"))
	if m.browse.cursor != 0 {
		t.Errorf("after j: cursor = %d, want 0", m.browse.cursor)
	}
}

func TestBrowse_View_ShowsListAndDetail(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"))

	view := stripANSI(m.View())

	if !strings.Contains(view, "Page 1 (3 per page)") {
		t.Errorf("view should contain the page header, got:\n%s", view)
	}
	if !strings.Contains(view, "Anna") {
		t.Errorf("view should list the first contact, got:\n%s", view)
	}
	if !strings.Contains(view, "anna@x.com") {
		t.Errorf("detail pane should show the selected email, got:\n%s", view)
	}
}

func TestBrowse_EmptyBook_View(t *testing.T) {
	m := NewModel(testSession(t))

	m = send(t, m, keyRunes("5"))

	view := stripANSI(m.View())
	if !strings.Contains(view, "Book is empty") {
		t.Errorf("view should contain the empty notice, got:\n%s", view)
	}
}

func TestBrowse_EscReturnsToMenu(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"))

	m = send(t, m, escKey())

	if m.mode != ModeMenu {
		t.Errorf("mode = %d, want ModeMenu", m.mode)
	}
}

func TestBrowse_DeleteFlow_RemovesSelected(t *testing.T) {
	// Given: browse mode with the cursor on the second row
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"), keyRunes("j"))

	// When: requesting removal
	m = send(t, m, keyRunes("d"))

	// Then: the confirmation names the selection
	if m.mode != ModeConfirm {
		t.Fatalf("mode = %d, want ModeConfirm", m.mode)
	}
	if m.confirm.name != "Bob" {
		t.Fatalf("confirm.name = %q, want Bob", m.confirm.name)
	}
	if !strings.Contains(stripANSI(m.View()), "Remove Bob from the book?") {
		t.Errorf("view should ask for confirmation, got:\n%s", stripANSI(m.View()))
	}

	// When: confirming
	m = send(t, m, enterKey())

	// Then: the record is gone and browsing restarts
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want ModeBrowse", m.mode)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if _, ok := s.Find("Bob"); ok {
		t.Error("Find(Bob) = found, want removed")
	}
	if m.browse.pageNum != 1 {
		t.Errorf("pageNum = %d, want 1 after restart", m.browse.pageNum)
	}
	if !strings.Contains(stripANSI(m.View()), "removed Bob") {
		t.Errorf("view should contain the removal notice, got:\n%s", stripANSI(m.View()))
	}
}

func TestBrowse_DeleteCancel_KeepsRecord(t *testing.T) {
	s := testSession(t)
	seedFive(t, s)
	m := NewModel(s)
	m = send(t, m, keyRunes("5"), keyRunes("d"))

	m = send(t, m, escKey())

	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want ModeBrowse", m.mode)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}
