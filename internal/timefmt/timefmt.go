// Package timefmt renders millisecond durations and epoch-millisecond
// timestamps the way punchclock shows them.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Duration formats ms as "1h 01m 01s". The sign is only emitted when signed
// is true and ms is negative; the magnitude always comes from |ms|.
func Duration(ms int64, signed bool) string {
	h, m, s := Split(abs(ms))
	sign := ""
	if signed && ms < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%dh %02dm %02ds", sign, h, m, s)
}

// Clock formats ms as "H:MM:SS", the compact form used in record lists.
func Clock(ms int64) string {
	h, m, s := Split(abs(ms))
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Split breaks a non-negative ms value into whole hours, minutes and seconds.
// Sub-second remainders are dropped.
func Split(ms int64) (h, m, s int64) {
	h = ms / msPerHour
	ms %= msPerHour
	m = ms / msPerMinute
	ms %= msPerMinute
	s = ms / msPerSecond
	return h, m, s
}

// Join is the inverse of Split.
func Join(h, m, s int64) int64 {
	return h*msPerHour + m*msPerMinute + s*msPerSecond
}

// Stamp formats t like "Monday 9:05:03 PM". Records store this string next to
// the raw timestamp.
func Stamp(t time.Time) string {
	return t.Format("Monday 3:04:05 PM")
}

// Long formats t like "Mon, 5 Jan 2024. 9:05:03 PM".
func Long(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006. 3:04:05 PM")
}

// InputLayout is the layout accepted when a user types a timestamp.
const InputLayout = "2006-01-02 15:04:05"

// Input formats t for editing with InputLayout.
func Input(t time.Time) string {
	return t.Format(InputLayout)
}

// ParseInput reads a timestamp typed in InputLayout, in local time.
func ParseInput(s string) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s: %w", "YYYY-MM-DD HH:MM:SS", err)
	}
	return t, nil
}

// Date formats the header date line, e.g. "Monday, January 5, 2024".
func Date(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// WallClock formats the header clock, e.g. "9:05:03 PM".
func WallClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
