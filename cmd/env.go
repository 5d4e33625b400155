package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/punchclock/internal/config"
	"github.com/sadopc/punchclock/internal/ledger"
	"github.com/sadopc/punchclock/internal/store"
)

// env is what every command runs against: the loaded ledger with its
// storage and logger.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *store.Store
	writer *store.Writer
	ledger *ledger.Ledger

	logFile io.Closer
}

func openEnv() (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log, logFile, err := cfg.OpenLogger()
	if err != nil {
		return nil, err
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: s, logFile: logFile}
	if err := e.load(); err != nil {
		s.Close()
		logFile.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) load() error {
	records, err := e.store.LoadRecords()
	if err != nil {
		return err
	}
	budget, _, err := e.store.LoadBudget()
	if err != nil {
		return err
	}

	e.writer = store.NewWriter(e.store, e.log)
	e.ledger = ledger.New(ledger.WithSink(e.writer), ledger.WithLogger(e.log))
	if err := e.ledger.Load(records, budget); err != nil {
		e.writer.Close()
		return fmt.Errorf("stored log: %w", err)
	}
	e.log.Debug("ledger loaded", "db", e.cfg.DBPath, "records", len(records), "budget_ms", budget)
	return nil
}

// Close waits for pending writes before closing storage.
func (e *env) Close() error {
	e.writer.Close()
	err := e.store.Close()
	e.logFile.Close()
	return err
}

// withEnv opens the env for the length of one command.
func withEnv(fn func(*env, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(e, cmd, args)
	}
}
