package tui

import "github.com/charmbracelet/lipgloss"

// MinListWidth is the minimum character width for the browse list pane.
const MinListWidth = 32

// CursorMarker is the prefix shown on the selected row.
const CursorMarker = "▸ "

var (
	// titleStyle renders the header line above every view.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	// selectedStyle highlights the row or input label under the cursor.
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	// errorText renders recoverable error notices.
	errorText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	// mutedText renders secondary information.
	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// PaneWidths calculates the list and detail pane widths from a total
// width. The list gets half (minimum MinListWidth), the detail pane
// gets the rest.
func PaneWidths(totalWidth int) (list, detail int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	list = totalWidth / 2
	if list < MinListWidth {
		list = MinListWidth
	}
	detail = totalWidth - list
	if detail < 0 {
		detail = 0
	}
	return list, detail
}
