package tui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Options configures how the interactive surface runs.
type Options struct {
	Input      io.Reader // Selection source (default: os.Stdin).
	Output     io.Writer // Render destination (default: os.Stdout).
	ForcePlain bool      // Force the line-oriented surface even on a TTY.
}

// Run starts the menu over the given session: a Bubble Tea program when
// the output is a terminal, the plain line-oriented loop otherwise.
// ForcePlain overrides TTY detection.
func Run(session *Session, opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Output) {
		return NewPlainRunner(session, opts.Input, opts.Output).Run()
	}

	p := tea.NewProgram(NewModel(session),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output))
	if _, err := p.Run(); err != nil {
		// Fall back to the plain loop when the TUI cannot start.
		return NewPlainRunner(session, opts.Input, opts.Output).Run()
	}
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
