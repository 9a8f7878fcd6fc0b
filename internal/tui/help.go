package tui

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the given mode, providing
// context-aware help bar content.
func HelpBindings(mode Mode) help.KeyMap {
	switch mode {
	case ModeAdd, ModeSearch:
		return FormKeyMap()
	case ModeResults:
		return ResultsKeyMap()
	case ModeBrowse:
		return BrowseKeyMap()
	case ModeConfirm:
		return ConfirmKeyMap()
	default:
		return MenuKeyMap()
	}
}
