package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every record and restore the default work time",
	Args:  cobra.NoArgs,
	RunE:  withEnv(runReset),
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(e *env, cmd *cobra.Command, args []string) error {
	if !resetYes {
		ok, err := confirm(fmt.Sprintf("Delete all %d records and reset the work time?", e.ledger.Len()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}
	e.ledger.Reset()
	fmt.Fprintln(cmd.OutOrStdout(), "All records removed.")
	return nil
}
