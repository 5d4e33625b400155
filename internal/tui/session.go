package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/punchclock/internal/timefmt"
)

// sessionModel renders the running work timer while the ledger is checked in.
type sessionModel struct {
	open   bool
	start  time.Time
	budget int64

	// gen identifies the live tick chain. Ticks from an older chain are
	// dropped, which is how a running timer is cancelled.
	gen int

	passed string
	left   string
}

type sessionTickMsg struct {
	gen int
	at  time.Time
}

func sessionTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return sessionTickMsg{gen: gen, at: t}
	})
}

// sync points the timer at the current session and budget. Any change
// starts a new tick chain.
func (s sessionModel) sync(start time.Time, open bool, budget int64, now time.Time) (sessionModel, tea.Cmd) {
	if open == s.open && budget == s.budget && start.Equal(s.start) {
		return s, nil
	}
	s.gen++
	s.open = open
	s.start = start
	s.budget = budget
	if !open {
		s.passed, s.left = "", ""
		return s, nil
	}
	s.recompute(now)
	return s, sessionTick(s.gen)
}

func (s sessionModel) update(msg sessionTickMsg) (sessionModel, tea.Cmd) {
	if !s.open || msg.gen != s.gen {
		return s, nil
	}
	s.recompute(msg.at)
	return s, sessionTick(s.gen)
}

func (s *sessionModel) recompute(now time.Time) {
	passed := now.Sub(s.start).Milliseconds()
	s.passed = timefmt.Duration(passed, false)
	s.left = timefmt.Duration(s.budget-passed, true)
}

// running reports whether a tick chain is live.
func (s sessionModel) running() bool { return s.open }
