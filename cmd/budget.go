package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/punchclock/internal/timefmt"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [<hours> <minutes> <seconds>]",
	Short: "Show or set the expected work time per record",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 3 {
			return fmt.Errorf("budget takes no arguments or exactly 3 (hours minutes seconds), got %d", len(args))
		}
		return nil
	},
	RunE: withEnv(runBudget),
}

func runBudget(e *env, cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "Current WorkTime Set: %s\n", timefmt.Duration(e.ledger.Budget(), false))
		return nil
	}

	ms, err := parseBudget(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := e.ledger.SetBudget(ms); err != nil {
		return err
	}
	fmt.Fprintf(out, "Work time set to %s\n", timefmt.Duration(ms, false))
	fmt.Fprintf(out, "Reduced Duration by Work Time: %s\n", timefmt.Duration(e.ledger.Summary().ReducedMs, true))
	return nil
}

// parseBudget accepts the same ranges as the UI picker: hours 0-99,
// minutes and seconds 0-59.
func parseBudget(hs, ms, ss string) (int64, error) {
	parts := []struct {
		name  string
		value string
		max   int64
	}{
		{"hours", hs, 99},
		{"minutes", ms, 59},
		{"seconds", ss, 59},
	}
	var v [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p.value, 10, 64)
		if err != nil || n < 0 || n > p.max {
			return 0, fmt.Errorf("%s must be a whole number from 0 to %d, got %q", p.name, p.max, p.value)
		}
		v[i] = n
	}
	return timefmt.Join(v[0], v[1], v[2]), nil
}
