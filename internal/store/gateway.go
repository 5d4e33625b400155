package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/punchclock/internal/record"
)

// Storage keys. The names match the files exported by earlier versions of
// the app so old backups keep loading.
const (
	KeyRecords = "storageData"
	KeyBudget  = "workTimeSetting"
)

// LoadRecords reads the persisted log. A missing key yields an empty log.
func (s *Store) LoadRecords() ([]record.Record, error) {
	raw, ok, err := s.Get(KeyRecords)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []record.Record{}, nil
	}
	records, err := record.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrStorage, KeyRecords, err)
	}
	return records, nil
}

// SaveRecords replaces the persisted log.
func (s *Store) SaveRecords(records []record.Record) error {
	data, err := record.Encode(records)
	if err != nil {
		return err
	}
	return s.Set(KeyRecords, string(data))
}

// LoadBudget reads the persisted budget. ok is false when the key is missing
// or does not hold a non-negative integer; budget is then the default.
func (s *Store) LoadBudget() (budget int64, ok bool, err error) {
	raw, ok, err := s.Get(KeyBudget)
	if err != nil || !ok {
		return record.DefaultBudget, false, err
	}
	ms, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if perr != nil || ms < 0 {
		return record.DefaultBudget, false, nil
	}
	return ms, true, nil
}

// SaveBudget stores the budget as a decimal string.
func (s *Store) SaveBudget(ms int64) error {
	return s.Set(KeyBudget, strconv.FormatInt(ms, 10))
}

// Erase removes both the log and the budget.
func (s *Store) Erase() error {
	return s.Remove(KeyRecords, KeyBudget)
}
