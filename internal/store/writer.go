package store

import (
	"log/slog"
	"sync"

	"github.com/sadopc/punchclock/internal/record"
)

const writerQueue = 64

// Writer persists ledger mutations in the background. Writes are applied in
// the order they were queued by a single goroutine. A failed write is logged
// and dropped; the in-memory ledger stays authoritative.
type Writer struct {
	store *Store
	log   *slog.Logger

	jobs chan job
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

type job struct {
	name string
	run  func() error
}

// NewWriter starts the background writer for s.
func NewWriter(s *Store, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	w := &Writer{
		store: s,
		log:   log,
		jobs:  make(chan job, writerQueue),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Writer) loop() {
	defer close(w.done)
	for j := range w.jobs {
		if err := j.run(); err != nil {
			w.log.Error("persist failed", "op", j.name, "err", err)
			continue
		}
		w.log.Debug("persisted", "op", j.name)
	}
}

func (w *Writer) enqueue(name string, run func() error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.log.Warn("write after close dropped", "op", name)
		return
	}
	w.jobs <- job{name: name, run: run}
}

// SaveRecords queues a write of the whole log.
func (w *Writer) SaveRecords(records []record.Record) {
	w.enqueue("save records", func() error { return w.store.SaveRecords(records) })
}

// SaveBudget queues a write of the budget.
func (w *Writer) SaveBudget(ms int64) {
	w.enqueue("save budget", func() error { return w.store.SaveBudget(ms) })
}

// Erase queues removal of the log and the budget.
func (w *Writer) Erase() {
	w.enqueue("erase", w.store.Erase)
}

// Close waits for queued writes to finish and stops the writer. It is safe
// to call more than once.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	<-w.done
}
