package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sadopc/punchclock/internal/record"
	"github.com/sadopc/punchclock/internal/timefmt"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogDelete
	dialogReset
	dialogExport
	dialogBudget
	dialogEdit
	dialogImportPath
	dialogImportPlacement
)

// dialog is the one modal form that may be open over the main screen.
// Form values live behind pointers so they survive value copies of App.
type dialog struct {
	kind  dialogKind
	title string
	form  *huh.Form

	confirmed *bool

	hours   *string
	minutes *string
	seconds *string

	field *string
	when  *string

	path      *string
	placement *string

	index   int
	pending []record.Record
}

func (d dialog) active() bool { return d.form != nil }

func newConfirmDialog(kind dialogKind, title, question, detail string) dialog {
	ok := false
	d := dialog{kind: kind, title: title, confirmed: &ok}
	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(d.confirmed)
	if detail != "" {
		confirm = confirm.Description(detail)
	}
	d.form = huh.NewForm(huh.NewGroup(confirm)).WithShowHelp(true)
	return d
}

func newBudgetDialog(budgetMs int64) dialog {
	h, m, s := timefmt.Split(budgetMs)
	hs, ms, ss := strconv.FormatInt(min(h, 99), 10), strconv.FormatInt(m, 10), strconv.FormatInt(s, 10)
	d := dialog{kind: dialogBudget, title: "Work Time", hours: &hs, minutes: &ms, seconds: &ss}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Hours").Options(numberOptions(99)...).Value(d.hours),
			huh.NewSelect[string]().Title("Minutes").Options(numberOptions(59)...).Value(d.minutes),
			huh.NewSelect[string]().Title("Seconds").Options(numberOptions(59)...).Value(d.seconds),
		).Title("Expected work time per record"),
	).WithShowHelp(true)
	return d
}

// budgetMs reads the selected hours, minutes and seconds.
func (d dialog) budgetMs() int64 {
	h, _ := strconv.ParseInt(*d.hours, 10, 64)
	m, _ := strconv.ParseInt(*d.minutes, 10, 64)
	s, _ := strconv.ParseInt(*d.seconds, 10, 64)
	return timefmt.Join(h, m, s)
}

func numberOptions(maxValue int) []huh.Option[string] {
	opts := make([]huh.Option[string], maxValue+1)
	for i := range opts {
		v := strconv.Itoa(i)
		opts[i] = huh.NewOption(fmt.Sprintf("%02d", i), v)
	}
	return opts
}

// newEditDialog offers only the endpoints the record already has.
func newEditDialog(index int, r record.Record) dialog {
	field := record.FieldCheckIn.String()
	in, _ := r.Get(record.FieldCheckIn)
	when := timefmt.Input(in)
	d := dialog{kind: dialogEdit, title: "Edit Record", field: &field, when: &when, index: index}

	fields := []huh.Option[string]{huh.NewOption(record.FieldCheckIn.Label(), record.FieldCheckIn.String())}
	current := "In: " + timefmt.Input(in)
	if out, ok := r.Get(record.FieldCheckOut); ok {
		fields = append(fields, huh.NewOption(record.FieldCheckOut.Label(), record.FieldCheckOut.String()))
		current += "  Out: " + timefmt.Input(out)
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Field").Options(fields...).Value(d.field),
			huh.NewInput().
				Title("New time").
				Description(current).
				Placeholder(timefmt.InputLayout).
				Validate(func(s string) error {
					_, err := timefmt.ParseInput(s)
					return err
				}).
				Value(d.when),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return d
}

func newImportPathDialog() dialog {
	path := ""
	d := dialog{kind: dialogImportPath, title: "Import", path: &path}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File to import").
				Placeholder("checkinData.json").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a file path")
					}
					return nil
				}).
				Value(d.path),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return d
}

func newPlacementDialog(pending []record.Record) dialog {
	placement := record.PlacementAuto.String()
	d := dialog{kind: dialogImportPlacement, title: "Import", placement: &placement, pending: pending}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should the imported records go?").
				Description(fmt.Sprintf("%s read", plural(len(pending), "record"))).
				Options(
					huh.NewOption("Front", record.PlacementFront.String()),
					huh.NewOption("Back", record.PlacementBack.String()),
					huh.NewOption("Decide for me", record.PlacementAuto.String()),
				).
				Value(d.placement),
		),
	).WithShowHelp(true)
	return d
}
