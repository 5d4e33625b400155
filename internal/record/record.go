// Package record defines the check-in/check-out record, its JSON wire form,
// and the pure operations over record logs: aggregation, validation and
// merging. Logs are ordered newest-first (index 0 is the latest record).
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/punchclock/internal/timefmt"
)

type value interface {
	~int64 | ~string
}

// Optional holds a value that may be absent. An absent value is encoded as
// the JSON literal false, which keeps it distinct from a present zero.
type Optional[T value] struct {
	v   T
	set bool
}

// Some returns a present Optional.
func Some[T value](v T) Optional[T] {
	return Optional[T]{v: v, set: true}
}

// None returns an absent Optional.
func None[T value]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) { return o.v, o.set }
func (o Optional[T]) IsSet() bool    { return o.set }

// Or returns the value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("false"), nil
	}
	return json.Marshal(o.v)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "false":
		*o = None[T]()
		return nil
	case "null", "true":
		return fmt.Errorf("optional value must be a value or false, got %s", data)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Record is one check-in/check-out pair. Timestamps are epoch milliseconds.
type Record struct {
	ID               int64            `json:"id"`
	CheckIn          int64            `json:"checkIn"`
	CheckOut         Optional[int64]  `json:"checkOut"`
	FormattedDateIn  string           `json:"formattedDateIn"`
	FormattedDateOut Optional[string] `json:"formattedDateOut"`
	TotalDuration    Optional[int64]  `json:"totalDuration"`
}

// New returns an open record checked in at t.
func New(id int64, t time.Time) Record {
	return Record{
		ID:               id,
		CheckIn:          timefmt.Millis(t),
		CheckOut:         None[int64](),
		FormattedDateIn:  timefmt.Stamp(t),
		FormattedDateOut: None[string](),
		TotalDuration:    None[int64](),
	}
}

// Open reports whether the record has no check-out yet.
func (r Record) Open() bool {
	return !r.CheckOut.IsSet()
}

// Close checks the record out at t. Fields that are already set are kept, so
// closing twice does not move the check-out.
func (r *Record) Close(t time.Time) {
	if !r.CheckOut.IsSet() {
		r.CheckOut = Some(timefmt.Millis(t))
	}
	if !r.FormattedDateOut.IsSet() {
		r.FormattedDateOut = Some(timefmt.Stamp(t))
	}
	if !r.TotalDuration.IsSet() {
		out, _ := r.CheckOut.Get()
		r.TotalDuration = Some(out - r.CheckIn)
	}
}

// Set overwrites one endpoint and its formatted string. The total is
// recomputed whenever both endpoints are present. The caller decides whether
// the edit is allowed; Set does not check that check-out follows check-in.
func (r *Record) Set(f Field, t time.Time) {
	ms := timefmt.Millis(t)
	switch f {
	case FieldCheckIn:
		r.CheckIn = ms
		r.FormattedDateIn = timefmt.Stamp(t)
	case FieldCheckOut:
		r.CheckOut = Some(ms)
		r.FormattedDateOut = Some(timefmt.Stamp(t))
	}
	if out, ok := r.CheckOut.Get(); ok {
		r.TotalDuration = Some(out - r.CheckIn)
	}
}

// Get returns the timestamp stored in field f.
func (r Record) Get(f Field) (time.Time, bool) {
	switch f {
	case FieldCheckIn:
		return timefmt.FromMillis(r.CheckIn), true
	case FieldCheckOut:
		if out, ok := r.CheckOut.Get(); ok {
			return timefmt.FromMillis(out), true
		}
	}
	return time.Time{}, false
}

// Field names an editable endpoint of a record.
type Field int

const (
	FieldCheckIn Field = iota
	FieldCheckOut
)

func (f Field) String() string {
	if f == FieldCheckOut {
		return "checkOut"
	}
	return "checkIn"
}

// Label is the human-facing name of the field.
func (f Field) Label() string {
	if f == FieldCheckOut {
		return "Check Out"
	}
	return "Check In"
}

// ParseField accepts "in", "checkin", "out" and "checkout" in any case.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "checkin", "check-in":
		return FieldCheckIn, nil
	case "out", "checkout", "check-out":
		return FieldCheckOut, nil
	}
	return 0, fmt.Errorf("unknown field %q (want in or out)", s)
}
