package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/punchclock/internal/record"
)

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// clockTickMsg drives the header clock.
type clockTickMsg time.Time

type exportDoneMsg struct {
	path  string
	count int
}

type importLoadedMsg struct {
	path    string
	records []record.Record
}

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(format string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, err), isError: true}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
