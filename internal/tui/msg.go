// Package tui implements the interactive address book surface: a Bubble
// Tea menu model for terminals and a line-oriented fallback for plain
// output. Both renderings drive the same Session and dispatch on the
// same menu list, so the two surfaces cannot drift.
package tui

import (
	"strconv"
	"strings"
)

// Mode represents the current view mode.
type Mode int

const (
	ModeMenu    Mode = iota // Numbered action menu.
	ModeAdd                 // Add-contact form.
	ModeSearch              // Search query input.
	ModeResults             // Search result listing.
	ModeBrowse              // Paged book listing with detail pane.
	ModeConfirm             // Removal confirmation.
)

// menuAction identifies a numbered menu entry.
type menuAction int

const (
	actionAdd menuAction = iota
	actionSave
	actionLoad
	actionSearch
	actionBrowse
	actionQuit
)

// menuItems are the numbered actions in display order, indexed by
// menuAction. Selections on both surfaces resolve through parseChoice
// against this list.
var menuItems = [...]string{
	actionAdd:    "Add contact",
	actionSave:   "Save book",
	actionLoad:   "Load book",
	actionSearch: "Search",
	actionBrowse: "Browse contacts",
	actionQuit:   "Quit",
}

// parseChoice maps a menu selection line to an action. It accepts the
// 1-based numbering shown on screen.
func parseChoice(line string) (menuAction, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(menuItems) {
		return 0, false
	}
	return menuAction(n - 1), true
}
