package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles for human-readable output. Colour is only applied when stdout is
// a terminal; piped output stays plain so it composes with other tools.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailure = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// stdoutIsTTY reports whether stdout is attached to a terminal.
func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// render applies the style when stdout is a TTY, otherwise returns the
// text unchanged.
func render(style lipgloss.Style, text string) string {
	if !stdoutIsTTY() {
		return text
	}
	return style.Render(text)
}
