package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/punchclock/internal/record"
	"github.com/sadopc/punchclock/internal/timefmt"
)

// WriteCSV writes a spreadsheet-friendly report of the log. Open records
// have empty check-out and duration columns.
func WriteCSV(records []record.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Check In", "Check Out", "Duration (ms)", "Duration"}); err != nil {
		return err
	}

	for _, r := range records {
		outStr, durMs, dur := "", "", ""
		if out, ok := r.CheckOut.Get(); ok {
			outStr = timefmt.FromMillis(out).Format(time.RFC3339)
		}
		if d, ok := r.TotalDuration.Get(); ok {
			durMs = fmt.Sprintf("%d", d)
			dur = timefmt.Clock(d)
			if d < 0 {
				dur = "-" + dur
			}
		}

		row := []string{
			fmt.Sprintf("%d", r.ID),
			timefmt.FromMillis(r.CheckIn).Format(time.RFC3339),
			outStr,
			durMs,
			dur,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
