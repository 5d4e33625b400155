package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/punchclock/internal/export"
	"github.com/sadopc/punchclock/internal/ledger"
	"github.com/sadopc/punchclock/internal/record"
	"github.com/sadopc/punchclock/internal/timefmt"
)

// Options configures the UI.
type Options struct {
	// ExportDir is where exports are written.
	ExportDir string
	// Theme is "auto", "dark" or "light".
	Theme  string
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model: a single screen over one ledger.
type App struct {
	ledger    *ledger.Ledger
	theme     theme
	exportDir string
	log       *slog.Logger
	now       func() time.Time

	width  int
	height int

	clock   time.Time
	session sessionModel
	list    recordList
	chart   barchart.Model
	charted bool
	dialog  dialog

	showHelp bool
	help     help.Model
	status   statusMsg
}

func NewApp(l *ledger.Ledger, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := App{
		ledger:    l,
		theme:     themeFor(opts.Theme),
		exportDir: opts.ExportDir,
		log:       opts.Logger,
		now:       opts.Now,
		help:      h,
	}
	a.clock = a.now()
	a, _ = a.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	var sessionCmd tea.Cmd
	if a.session.running() {
		sessionCmd = sessionTick(a.session.gen)
	}
	return tea.Batch(tickCmd(), sessionCmd)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.rebuildChart()
		return a, nil

	case clockTickMsg:
		a.clock = time.Time(msg)
		return a, tickCmd()

	case sessionTickMsg:
		var cmd tea.Cmd
		a.session, cmd = a.session.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg
		return a, nil

	case exportDoneMsg:
		a.status = statusMsg{text: fmt.Sprintf("Exported %s to %s", plural(msg.count, "record"), msg.path)}
		return a, nil

	case importLoadedMsg:
		return a.importLoaded(msg)
	}

	if a.dialog.active() {
		return a.updateDialog(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := a.ledger.Len()

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Toggle):
		return a.toggle()
	case key.Matches(msg, keys.Up):
		a.list = a.list.move(-1, n)
	case key.Matches(msg, keys.Down):
		a.list = a.list.move(1, n)
	case key.Matches(msg, keys.Edit):
		if n == 0 {
			return a, statusCmd("Nothing to edit")
		}
		return a.openDialog(newEditDialog(a.list.cursor, a.ledger.Records()[a.list.cursor]))
	case key.Matches(msg, keys.Delete):
		if n == 0 {
			return a, statusCmd("Nothing to delete")
		}
		r := a.ledger.Records()[a.list.cursor]
		d := newConfirmDialog(dialogDelete, "Delete Record", "Delete this record?",
			fmt.Sprintf("#%d checked in %s", r.ID, r.FormattedDateIn))
		d.index = a.list.cursor
		return a.openDialog(d)
	case key.Matches(msg, keys.Budget):
		return a.openDialog(newBudgetDialog(a.ledger.Budget()))
	case key.Matches(msg, keys.Import):
		return a.openDialog(newImportPathDialog())
	case key.Matches(msg, keys.Export):
		return a.openDialog(newConfirmDialog(dialogExport, "Export", "Export all records?",
			fmt.Sprintf("%s to %s", plural(n, "record"), export.DefaultPath(a.exportDir))))
	case key.Matches(msg, keys.Reset):
		return a.openDialog(newConfirmDialog(dialogReset, "Reset", "Delete every record and reset the work time?",
			"This cannot be undone."))
	}
	return a, nil
}

// --- Mutations ---

func (a App) toggle() (tea.Model, tea.Cmd) {
	r, err := a.ledger.Toggle(a.now())
	if err != nil {
		return a, errorCmd("Error: %v", err)
	}
	text := "Checked in at " + r.FormattedDateIn
	if !r.Open() {
		text = fmt.Sprintf("Checked out at %s (%s)", r.FormattedDateOut.Or(""), timefmt.Duration(r.TotalDuration.Or(0), true))
	}
	a.list.cursor = 0
	return a.refresh(statusCmd(text))
}

// refresh brings the derived views in line with the ledger after a mutation.
func (a App) refresh(cmds ...tea.Cmd) (App, tea.Cmd) {
	a.list = a.list.clamp(a.ledger.Len())
	a.rebuildChart()

	start, open := a.ledger.SessionStart()
	var sessionCmd tea.Cmd
	a.session, sessionCmd = a.session.sync(start, open, a.ledger.Budget(), a.now())

	return a, tea.Batch(append(cmds, sessionCmd)...)
}

func (a *App) rebuildChart() {
	a.chart, a.charted = buildChart(a.theme, a.ledger.Records(), a.ledger.Budget(), a.width, a.chartHeight())
}

func (a App) chartHeight() int {
	if a.height > 40 {
		return 12
	}
	return 8
}

// --- Dialogs ---

func (a App) openDialog(d dialog) (tea.Model, tea.Cmd) {
	a.dialog = d
	return a, a.dialog.form.Init()
}

func (a App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		a.dialog = dialog{}
		return a, statusCmd("Cancelled")
	}

	form, cmd := a.dialog.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dialog.form = f
	}

	switch a.dialog.form.State {
	case huh.StateCompleted:
		d := a.dialog
		a.dialog = dialog{}
		return a.finishDialog(d)
	case huh.StateAborted:
		a.dialog = dialog{}
		return a, statusCmd("Cancelled")
	}
	return a, cmd
}

// finishDialog applies a completed dialog.
func (a App) finishDialog(d dialog) (tea.Model, tea.Cmd) {
	if d.confirmed != nil && !*d.confirmed {
		return a, statusCmd("Cancelled")
	}

	switch d.kind {
	case dialogDelete:
		r, err := a.ledger.Delete(d.index)
		if err != nil {
			return a, errorCmd("Delete failed: %v", err)
		}
		return a.refresh(statusCmd(fmt.Sprintf("Deleted record #%d", r.ID)))

	case dialogReset:
		a.ledger.Reset()
		a.list = recordList{}
		return a.refresh(statusCmd("All records removed"))

	case dialogExport:
		return a, a.doExport()

	case dialogBudget:
		ms := d.budgetMs()
		if err := a.ledger.SetBudget(ms); err != nil {
			return a, errorCmd("Error: %v", err)
		}
		return a.refresh(statusCmd("Work time set to " + timefmt.Duration(ms, false)))

	case dialogEdit:
		f, err := record.ParseField(*d.field)
		if err != nil {
			return a, errorCmd("Edit failed: %v", err)
		}
		t, err := timefmt.ParseInput(*d.when)
		if err != nil {
			return a, errorCmd("Edit failed: %v", err)
		}
		r, err := a.ledger.Edit(d.index, f, t)
		if err != nil {
			return a, errorCmd("Edit failed: %v", err)
		}
		if dur, ok := r.TotalDuration.Get(); ok && dur < 0 {
			return a.refresh(func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("%s updated; record now ends before it starts", f.Label()), isError: true}
			})
		}
		return a.refresh(statusCmd(f.Label() + " updated"))

	case dialogImportPath:
		return a, readImport(strings.TrimSpace(*d.path))

	case dialogImportPlacement:
		p, err := record.ParsePlacement(*d.placement)
		if err != nil {
			return a, errorCmd("Import failed: %v", err)
		}
		return a.applyImport(d.pending, p)
	}
	return a, nil
}

// --- Import / export ---

func (a App) doExport() tea.Cmd {
	records := a.ledger.Records()
	path := export.DefaultPath(a.exportDir)
	log := a.log
	return func() tea.Msg {
		if err := export.WriteJSON(records, path); err != nil {
			log.Error("export failed", "path", path, "err", err)
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path, count: len(records)}
	}
}

func readImport(path string) tea.Cmd {
	return func() tea.Msg {
		records, err := export.ReadJSON(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importLoadedMsg{path: path, records: records}
	}
}

// importLoaded asks for a placement unless there is nothing to place against.
func (a App) importLoaded(msg importLoadedMsg) (tea.Model, tea.Cmd) {
	a.log.Info("import file read", "path", msg.path, "records", len(msg.records))
	if len(msg.records) == 0 {
		return a, statusCmd("Import file has no records")
	}
	if a.ledger.Len() == 0 {
		return a.applyImport(msg.records, record.PlacementAuto)
	}
	return a.openDialog(newPlacementDialog(msg.records))
}

func (a App) applyImport(pending []record.Record, p record.Placement) (tea.Model, tea.Cmd) {
	if err := a.ledger.Import(pending, p); err != nil {
		return a, errorCmd("Import rejected: %v", err)
	}
	return a.refresh(statusCmd(fmt.Sprintf("Imported %s", plural(len(pending), "record"))))
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)
	w := a.width - 4

	var content string
	if a.dialog.active() {
		content = a.theme.activePanel.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			a.theme.title.Render(a.dialog.title), "", a.dialog.form.View()))
	} else {
		summary := a.renderSummary(w)
		var chart string
		if a.charted && contentHeight-lipgloss.Height(summary) > a.chartHeight()+8 {
			chart = a.theme.panel.Width(w).Render(a.chart.View())
		}
		rows := contentHeight - lipgloss.Height(summary) - lipgloss.Height(chart) - 3
		list := a.list.view(a.theme, a.ledger.Records(), w, max(rows, 1))
		content = lipgloss.JoinVertical(lipgloss.Left, summary, list, chart)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	date := a.theme.date.Render(timefmt.Date(a.clock))
	clock := a.theme.clock.Render(timefmt.WallClock(a.clock))
	title := a.theme.muted.Render("punchclock")

	left := lipgloss.JoinVertical(lipgloss.Left, date, clock)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(title)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return a.theme.header.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, title))
}

func (a App) renderSummary(w int) string {
	th := a.theme
	state := a.ledger.State()

	action := "Check In"
	last := "Last Check Out"
	if state == ledger.Open {
		action = "Check Out"
		last = "Last Check In"
	}
	saved := a.ledger.SavedTime()
	if saved == "" {
		saved = "no data"
	}

	lines := []string{
		th.button.Render(action),
		th.label.Render(last+": ") + th.value.Render(saved),
	}

	if state == ledger.Open {
		lines = append(lines,
			"",
			th.title.Render("Work Time"),
			th.label.Render("Passed: ")+th.value.Render(a.session.passed)+
				th.muted.Render(" || ")+
				th.label.Render("Left: ")+a.signed(a.session.left),
		)
	}

	if a.ledger.Len() > 0 {
		s := a.ledger.Summary()
		lines = append(lines,
			"",
			th.label.Render("All Duration: ")+th.value.Render(timefmt.Duration(s.TotalMs, false)),
			th.label.Render("Reduced Duration by Work Time: ")+a.signed(timefmt.Duration(s.ReducedMs, true)),
		)
	}

	lines = append(lines, th.muted.Render("Current WorkTime Set: "+timefmt.Duration(a.ledger.Budget(), false)))
	return th.panel.Width(w).Render(strings.Join(lines, "\n"))
}

func (a App) signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return a.theme.negative.Render(s)
	}
	return a.theme.value.Render(s)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status.text != "" {
		style := a.theme.muted
		if a.status.isError {
			style = a.theme.errorText
		}
		status = style.Render(" " + a.status.text)
	}

	indicator := a.theme.muted.Render(" ■ idle")
	if a.session.running() {
		indicator = a.theme.success.Render(" ● " + a.session.passed)
	}

	left := a.theme.footer.Render(helpView)
	right := indicator + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
