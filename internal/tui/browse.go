package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// browseState pages through the book with a cursor and a detail pane.
// Each page is one batch from the book's batcher; advancing past the
// last page wraps around to a fresh pass.
type browseState struct {
	batcher *book.Batcher
	page    []contact.Record
	pageNum int
	cursor  int
}

// newBrowseState starts paging from the first batch.
func newBrowseState(s *Session) browseState {
	return browseState{}.restart(s)
}

// restart begins a fresh pass from the first page.
func (bs browseState) restart(s *Session) browseState {
	bs.batcher = s.Batches()
	bs.pageNum = 0
	return bs.advance(s)
}

// advance moves to the next page, wrapping to a fresh pass when the
// current one is exhausted.
func (bs browseState) advance(s *Session) browseState {
	page, ok := bs.batcher.Next()
	if !ok {
		if bs.pageNum == 0 {
			// Empty book: nothing to page over.
			bs.page = nil
			bs.cursor = 0
			return bs
		}
		bs.batcher = s.Batches()
		bs.pageNum = 0
		page, ok = bs.batcher.Next()
		if !ok {
			bs.page = nil
			bs.cursor = 0
			return bs
		}
	}
	bs.page = page
	bs.pageNum++
	bs.cursor = 0
	return bs
}

// selected returns the record under the cursor.
func (bs browseState) selected() (contact.Record, bool) {
	if len(bs.page) == 0 || bs.cursor < 0 || bs.cursor >= len(bs.page) {
		return contact.Record{}, false
	}
	return bs.page[bs.cursor], true
}

// updateBrowse processes keys for browse mode: cursor movement within
// the page, n for the next page, r to restart, d to remove the selected
// contact, esc back to the menu.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeMenu
		return m, nil

	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if len(m.browse.page) > 0 {
			m.browse.cursor--
			if m.browse.cursor < 0 {
				m.browse.cursor = len(m.browse.page) - 1
			}
		}
		return m, nil

	case "down", "j":
		if len(m.browse.page) > 0 {
			m.browse.cursor++
			if m.browse.cursor >= len(m.browse.page) {
				m.browse.cursor = 0
			}
		}
		return m, nil

	case "n", "right":
		if len(m.browse.page) > 0 {
			m.browse = m.browse.advance(m.session)
		}
		return m, nil

	case "r":
		m.browse = m.browse.restart(m.session)
		return m, nil

	case "d":
		if r, ok := m.browse.selected(); ok {
			m.confirm = confirmState{name: r.Name().String()}
			m.mode = ModeConfirm
		}
		return m, nil
	}

	return m, nil
}

// View renders the two-pane browse layout: the current page on the
// left, the selected record's detail on the right.
func (bs browseState) View(width int, s *Session) string {
	if len(bs.page) == 0 {
		return "Book is empty. Add a contact first."
	}

	if width <= 0 {
		width = 80
	}
	listWidth, detailWidth := PaneWidths(width)

	var list strings.Builder
	fmt.Fprintf(&list, "Page %d (%d per page)\n", bs.pageNum, s.BatchSize())
	for i, r := range bs.page {
		list.WriteByte('\n')
		line := r.Name().String() + "  " + r.Phone().String()
		if i == bs.cursor {
			list.WriteString(selectedStyle.Render(CursorMarker + line))
		} else {
			list.WriteString("  " + line)
		}
	}

	var detail string
	if r, ok := bs.selected(); ok {
		detail = detailLines(s, r)
	}

	left := FocusedBorder().
		Width(paneContentWidth(listWidth)).
		Render(list.String())
	right := UnfocusedBorder().
		Width(paneContentWidth(detailWidth)).
		Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// paneContentWidth converts a pane width to its inner content width.
func paneContentWidth(paneWidth int) int {
	w := paneWidth - borderChrome
	if w < 0 {
		return 0
	}
	return w
}
