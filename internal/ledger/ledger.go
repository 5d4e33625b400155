// Package ledger owns the in-memory check-in log: the single toggle state
// machine, record edits and deletions, the work-time budget, and imports.
// Every finished mutation is handed to a Sink for persistence.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sadopc/punchclock/internal/record"
)

var (
	// ErrInvalidState is returned for a check-in while checked in, a
	// check-out while idle, or a mutation that would misplace an open record.
	ErrInvalidState = errors.New("invalid state")
	// ErrIndex is returned when an index does not name a record.
	ErrIndex = errors.New("no such record")
)

// State is the two-state toggle machine.
type State int

const (
	Idle State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "checked in"
	}
	return "checked out"
}

// Sink receives the log and budget after each mutation. Implementations must
// not block the caller on storage.
type Sink interface {
	SaveRecords(records []record.Record)
	SaveBudget(ms int64)
	Erase()
}

type nopSink struct{}

func (nopSink) SaveRecords([]record.Record) {}
func (nopSink) SaveBudget(int64)            {}
func (nopSink) Erase()                      {}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSink sets where mutations are persisted.
func WithSink(s Sink) Option {
	return func(l *Ledger) { l.sink = s }
}

// WithLogger sets the logger used for warnings.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// Ledger is the record store. It is not safe for concurrent use; the UI
// event loop is its only writer.
type Ledger struct {
	records []record.Record
	budget  int64
	nextID  int64
	summary record.Summary

	sink Sink
	log  *slog.Logger
}

// New returns an empty ledger with the default budget.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		records: []record.Record{},
		budget:  record.DefaultBudget,
		sink:    nopSink{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.refresh()
	return l
}

// Load replaces the log and budget with previously persisted values. Nothing
// is written back.
func (l *Ledger) Load(records []record.Record, budgetMs int64) error {
	if err := checkOpenPlacement(records); err != nil {
		return err
	}
	if budgetMs < 0 {
		return fmt.Errorf("%w: negative budget %d", record.ErrValidation, budgetMs)
	}
	l.records = clone(records)
	l.budget = budgetMs
	l.refresh()
	return nil
}

// CheckIn opens a new record at now.
func (l *Ledger) CheckIn(now time.Time) (record.Record, error) {
	if l.State() == Open {
		return record.Record{}, fmt.Errorf("%w: already checked in", ErrInvalidState)
	}
	r := record.New(l.nextID, now)
	l.records = append([]record.Record{r}, l.records...)
	l.commit()
	return r, nil
}

// CheckOut closes the open record at now. Endpoints that are already set
// stay as they are.
func (l *Ledger) CheckOut(now time.Time) (record.Record, error) {
	if l.State() != Open {
		return record.Record{}, fmt.Errorf("%w: not checked in", ErrInvalidState)
	}
	l.records[0].Close(now)
	l.commit()
	return l.records[0], nil
}

// Toggle checks in when idle and out when open.
func (l *Ledger) Toggle(now time.Time) (record.Record, error) {
	if l.State() == Open {
		return l.CheckOut(now)
	}
	return l.CheckIn(now)
}

// Edit moves one endpoint of the record at index. Only endpoints that exist
// can be edited, so an open record's check-out is rejected. A check-out
// earlier than the check-in is accepted and logged.
func (l *Ledger) Edit(index int, f record.Field, t time.Time) (record.Record, error) {
	if err := l.checkIndex(index); err != nil {
		return record.Record{}, err
	}
	r := &l.records[index]
	if f == record.FieldCheckOut && r.Open() {
		return record.Record{}, fmt.Errorf("%w: record %d has no check-out to edit", ErrInvalidState, index)
	}
	r.Set(f, t)
	if d, ok := r.TotalDuration.Get(); ok && d < 0 {
		l.log.Warn("edited record ends before it starts", "id", r.ID, "index", index, "duration_ms", d)
	}
	l.commit()
	return *r, nil
}

// Delete removes the record at index. Removing the open record leaves the
// ledger idle.
func (l *Ledger) Delete(index int) (record.Record, error) {
	if err := l.checkIndex(index); err != nil {
		return record.Record{}, err
	}
	removed := l.records[index]
	l.records = append(l.records[:index:index], l.records[index+1:]...)
	l.commit()
	return removed, nil
}

// Reset drops every record, restores the default budget and erases both
// from storage.
func (l *Ledger) Reset() {
	l.records = []record.Record{}
	l.budget = record.DefaultBudget
	l.refresh()
	l.sink.Erase()
}

// SetBudget replaces the expected work time per record.
func (l *Ledger) SetBudget(ms int64) error {
	if ms < 0 {
		return fmt.Errorf("%w: negative budget %d", record.ErrValidation, ms)
	}
	l.budget = ms
	l.refresh()
	l.sink.SaveBudget(ms)
	return nil
}

// Import merges an already validated log into the current one. A merge that
// would leave an open record anywhere but at the head is rejected.
func (l *Ledger) Import(incoming []record.Record, p record.Placement) error {
	merged := record.Merge(l.records, incoming, p)
	if err := checkOpenPlacement(merged); err != nil {
		l.log.Warn("import rejected", "placement", p.String(), "incoming", len(incoming), "err", err)
		return err
	}
	l.records = merged
	l.commit()
	return nil
}

// Records returns a copy of the log, newest first.
func (l *Ledger) Records() []record.Record {
	return clone(l.records)
}

// Len is the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Summary returns the aggregates as of the last mutation.
func (l *Ledger) Summary() record.Summary { return l.summary }

// Budget is the expected work time per record in ms.
func (l *Ledger) Budget() int64 { return l.budget }

// State is derived from the head record.
func (l *Ledger) State() State {
	if len(l.records) > 0 && l.records[0].Open() {
		return Open
	}
	return Idle
}

// SessionStart is the check-in time of the open record.
func (l *Ledger) SessionStart() (time.Time, bool) {
	if l.State() != Open {
		return time.Time{}, false
	}
	t, _ := l.records[0].Get(record.FieldCheckIn)
	return t, true
}

// SavedTime is the latest formatted stamp: the head's check-out if present,
// else its check-in. Empty when there are no records.
func (l *Ledger) SavedTime() string {
	if len(l.records) == 0 {
		return ""
	}
	head := l.records[0]
	return head.FormattedDateOut.Or(head.FormattedDateIn)
}

func (l *Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.records) {
		return fmt.Errorf("%w: index %d out of range [0, %d)", ErrIndex, index, len(l.records))
	}
	return nil
}

// commit recomputes derived state and hands the log to the sink.
func (l *Ledger) commit() {
	l.refresh()
	l.sink.SaveRecords(clone(l.records))
}

func (l *Ledger) refresh() {
	l.summary = record.Summarize(l.records, l.budget)
	for _, r := range l.records {
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
	}
}

func checkOpenPlacement(records []record.Record) error {
	for i, r := range records {
		if i > 0 && r.Open() {
			return fmt.Errorf("%w: open record at position %d, only the newest record may be open", ErrInvalidState, i)
		}
	}
	return nil
}

func clone(records []record.Record) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	return out
}
