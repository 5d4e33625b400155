package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/punchclock/internal/record"
	"github.com/sadopc/punchclock/internal/timefmt"
)

// recordList is the cursor over the log. Index 0 is the newest record.
type recordList struct {
	cursor int
	offset int
}

func (l recordList) move(delta, n int) recordList {
	l.cursor += delta
	return l.clamp(n)
}

// clamp keeps the cursor on a record after the log changed size.
func (l recordList) clamp(n int) recordList {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return l
}

// window returns the first visible row so that the cursor stays on screen.
func (l recordList) window(rows int) recordList {
	if rows < 1 {
		rows = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	return l
}

func (l recordList) view(th theme, records []record.Record, w, rows int) string {
	title := th.title.Render("Records")
	if len(records) == 0 {
		return th.panel.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			th.muted.Render("No records yet. Press space to check in."),
		))
	}

	l = l.window(rows)
	end := min(l.offset+rows, len(records))

	lines := []string{title + th.muted.Render(fmt.Sprintf("  %d/%d", l.cursor+1, len(records)))}
	for i := l.offset; i < end; i++ {
		lines = append(lines, renderRecordRow(th, records[i], i == l.cursor))
	}
	return th.panel.Width(w).Render(strings.Join(lines, "\n"))
}

func renderRecordRow(th theme, r record.Record, selected bool) string {
	cursor := "  "
	style := th.normal
	if selected {
		cursor = "> "
		style = th.selected
	}

	in := timefmt.Long(timefmt.FromMillis(r.CheckIn))
	out := th.success.Render("● running")
	if v, ok := r.CheckOut.Get(); ok {
		out = timefmt.Long(timefmt.FromMillis(v))
	}

	dur := ""
	if d, ok := r.TotalDuration.Get(); ok {
		if d < 0 {
			dur = th.negative.Render("-" + timefmt.Clock(d))
		} else {
			dur = th.value.Render(timefmt.Clock(d))
		}
	}

	return fmt.Sprintf("%s%s  %s → %s  %s",
		cursor, style.Render(fmt.Sprintf("#%-4d", r.ID)), in, out, dur)
}
