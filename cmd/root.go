package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/punchclock/internal/tui"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "punchclock",
	Short: "Check in, check out and keep track of worked time",
	Long: `punchclock records check-in/check-out pairs and compares the time you
worked with the time you meant to work. Run it without arguments for the
full-screen clock, or use the subcommands from scripts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          withEnv(runTUI),
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is <user config dir>/punchclock/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file, overrides db_path from the config")

	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}

func runTUI(e *env, cmd *cobra.Command, args []string) error {
	app := tui.NewApp(e.ledger, tui.Options{
		ExportDir: e.cfg.ExportDir,
		Theme:     e.cfg.Theme,
		Logger:    e.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
