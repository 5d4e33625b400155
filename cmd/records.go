package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/punchclock/internal/ledger"
	"github.com/sadopc/punchclock/internal/record"
	"github.com/sadopc/punchclock/internal/timefmt"
)

// now is replaced in tests.
var now = time.Now

var deleteYes bool

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Open a new record now",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		r, err := e.ledger.CheckIn(now())
		if err != nil {
			return err
		}
		printChecked(cmd.OutOrStdout(), r)
		return nil
	}),
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Close the open record now",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		r, err := e.ledger.CheckOut(now())
		if err != nil {
			return err
		}
		printChecked(cmd.OutOrStdout(), r)
		return nil
	}),
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Check in when checked out, check out when checked in",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		r, err := e.ledger.Toggle(now())
		if err != nil {
			return err
		}
		printChecked(cmd.OutOrStdout(), r)
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state, running timer and totals",
	Args:  cobra.NoArgs,
	RunE:  withEnv(runStatus),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		records := e.ledger.Records()
		if len(records) == 0 {
			fmt.Fprintln(out, "No records.")
			return nil
		}
		fmt.Fprintln(out, recordTable(records))
		return nil
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit <index> <in|out> <YYYY-MM-DD HH:MM:SS>",
	Short: "Move the check-in or check-out of a record",
	Long: `Move one endpoint of the record at <index> (0 is the newest, as shown by
list). The time may be passed as one quoted argument or as date and time.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: withEnv(runEdit),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE:  withEnv(runDelete),
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func printChecked(w io.Writer, r record.Record) {
	if r.Open() {
		fmt.Fprintf(w, "Checked in at %s\n", r.FormattedDateIn)
		return
	}
	fmt.Fprintf(w, "Checked out at %s\n", r.FormattedDateOut.Or(""))
	fmt.Fprintf(w, "Duration: %s\n", timefmt.Duration(r.TotalDuration.Or(0), true))
}

func runStatus(e *env, cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	l := e.ledger
	s := l.Summary()

	saved := l.SavedTime()
	if saved == "" {
		saved = "no data"
	}

	if start, ok := l.SessionStart(); ok {
		passed := now().Sub(start).Milliseconds()
		fmt.Fprintln(out, "Checked in.")
		fmt.Fprintf(out, "  Last Check In: %s\n", saved)
		fmt.Fprintf(out, "  Passed: %s || Left: %s\n",
			timefmt.Duration(passed, false),
			timefmt.Duration(l.Budget()-passed, true))
	} else {
		fmt.Fprintln(out, "Checked out.")
		fmt.Fprintf(out, "  Last Check Out: %s\n", saved)
	}

	if s.Count > 0 {
		fmt.Fprintf(out, "All Duration: %s\n", timefmt.Duration(s.TotalMs, false))
		fmt.Fprintf(out, "Reduced Duration by Work Time: %s\n", timefmt.Duration(s.ReducedMs, true))
	}
	fmt.Fprintf(out, "Current WorkTime Set: %s\n", timefmt.Duration(l.Budget(), false))
	return nil
}

func recordTable(records []record.Record) string {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		out, dur := "running", ""
		if v, ok := r.CheckOut.Get(); ok {
			out = timefmt.Long(timefmt.FromMillis(v))
		}
		if d, ok := r.TotalDuration.Get(); ok {
			dur = timefmt.Duration(d, true)
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatInt(r.ID, 10),
			timefmt.Long(timefmt.FromMillis(r.CheckIn)),
			out,
			dur,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "CHECK IN", "CHECK OUT", "DURATION").
		Rows(rows...).
		String()
}

func parseIndex(s string, l *ledger.Ledger) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if i < 0 || i >= l.Len() {
		return 0, fmt.Errorf("%w: index %d, have %d records", ledger.ErrIndex, i, l.Len())
	}
	return i, nil
}

func runEdit(e *env, cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0], e.ledger)
	if err != nil {
		return err
	}
	f, err := record.ParseField(args[1])
	if err != nil {
		return err
	}
	t, err := timefmt.ParseInput(strings.Join(args[2:], " "))
	if err != nil {
		return err
	}

	r, err := e.ledger.Edit(index, f, t)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s of record #%d set to %s\n", f.Label(), r.ID, timefmt.Long(t))
	if d, ok := r.TotalDuration.Get(); ok {
		fmt.Fprintf(out, "Duration: %s\n", timefmt.Duration(d, true))
		if d < 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the record now ends before it starts")
		}
	}
	return nil
}

func runDelete(e *env, cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0], e.ledger)
	if err != nil {
		return err
	}
	r := e.ledger.Records()[index]

	if !deleteYes {
		ok, err := confirm(fmt.Sprintf("Delete record #%d checked in %s?", r.ID, r.FormattedDateIn))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if _, err := e.ledger.Delete(index); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted record #%d\n", r.ID)
	return nil
}
