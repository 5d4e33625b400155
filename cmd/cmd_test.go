package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/sadopc/punchclock/internal/export"
	"github.com/sadopc/punchclock/internal/ledger"
	"github.com/sadopc/punchclock/internal/record"
)

var base = time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)

// setup writes a config rooted in a temp dir and pins the clock.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("data_dir = %q\nexport_dir = %q\ntheme = \"dark\"\n", dir, filepath.Join(dir, "exports"))
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	setNow(t, base)
	return cfg
}

func setNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	configPath, dbPath = "", ""
	deleteYes, resetYes = false, false
	importPlacement, exportFormat, exportOut = "auto", "json", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

// ============================================================
// Check in / check out
// ============================================================

func TestCheckinCheckout(t *testing.T) {
	cfg := setup(t)

	out := mustRun(t, cfg, "checkin")
	if !strings.Contains(out, "Checked in at Monday 9:00:00 AM") {
		t.Fatalf("checkin output = %q", out)
	}

	if _, err := run(t, cfg, "checkin"); !errors.Is(err, ledger.ErrInvalidState) {
		t.Fatalf("second checkin: expected ErrInvalidState, got %v", err)
	}

	setNow(t, base.Add(8*time.Hour+30*time.Minute))
	out = mustRun(t, cfg, "checkout")
	if !strings.Contains(out, "Checked out at Monday 5:30:00 PM") || !strings.Contains(out, "Duration: 8h 30m 00s") {
		t.Fatalf("checkout output = %q", out)
	}

	if _, err := run(t, cfg, "checkout"); !errors.Is(err, ledger.ErrInvalidState) {
		t.Fatalf("second checkout: expected ErrInvalidState, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	cfg := setup(t)
	if out := mustRun(t, cfg, "toggle"); !strings.Contains(out, "Checked in") {
		t.Fatalf("first toggle = %q", out)
	}
	setNow(t, base.Add(time.Hour))
	if out := mustRun(t, cfg, "toggle"); !strings.Contains(out, "Checked out") {
		t.Fatalf("second toggle = %q", out)
	}
}

func TestStatus(t *testing.T) {
	cfg := setup(t)

	out := mustRun(t, cfg, "status")
	if !strings.Contains(out, "Last Check Out: no data") || strings.Contains(out, "All Duration") {
		t.Fatalf("empty status = %q", out)
	}

	mustRun(t, cfg, "checkin")
	setNow(t, base.Add(10*time.Hour))
	out = mustRun(t, cfg, "status")
	for _, want := range []string{
		"Checked in.",
		"Last Check In: Monday 9:00:00 AM",
		"Passed: 10h 00m 00s || Left: -1h 00m 00s",
		"All Duration: 0h 00m 00s",
		"Reduced Duration by Work Time: -9h 00m 00s",
		"Current WorkTime Set: 9h 00m 00s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q in:\n%s", want, out)
		}
	}
}

func TestList(t *testing.T) {
	cfg := setup(t)
	if out := mustRun(t, cfg, "list"); !strings.Contains(out, "No records.") {
		t.Fatalf("empty list = %q", out)
	}

	mustRun(t, cfg, "checkin")
	setNow(t, base.Add(time.Hour))
	mustRun(t, cfg, "checkout")
	setNow(t, base.Add(2*time.Hour))
	mustRun(t, cfg, "checkin")

	out := mustRun(t, cfg, "list")
	for _, want := range []string{"CHECK IN", "running", "1h 00m 00s", "Mon, 6 May 2024. 9:00:00 AM"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "running") > strings.Index(out, "1h 00m 00s") {
		t.Error("newest record should be listed first")
	}
}

// ============================================================
// Edit / delete
// ============================================================

func TestEdit(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")
	setNow(t, base.Add(time.Hour))
	mustRun(t, cfg, "checkout")

	out := mustRun(t, cfg, "edit", "0", "out", "2024-05-06", "12:00:00")
	if !strings.Contains(out, "Check Out of record #0") || !strings.Contains(out, "Duration: 3h 00m 00s") {
		t.Fatalf("edit output = %q", out)
	}

	out = mustRun(t, cfg, "edit", "0", "in", "2024-05-06 13:00:00")
	if !strings.Contains(out, "Duration: -1h 00m 00s") || !strings.Contains(out, "Warning") {
		t.Fatalf("negative edit output = %q", out)
	}
}

func TestEditErrors(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"index out of range", []string{"edit", "3", "in", "2024-05-06 10:00:00"}, ledger.ErrIndex},
		{"open check-out", []string{"edit", "0", "out", "2024-05-06 10:00:00"}, ledger.ErrInvalidState},
	}
	for _, c := range cases {
		if _, err := run(t, cfg, c.args...); !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}

	if _, err := run(t, cfg, "edit", "0", "sideways", "2024-05-06 10:00:00"); err == nil {
		t.Error("unknown field should fail")
	}
	if _, err := run(t, cfg, "edit", "0", "in", "tomorrow"); err == nil {
		t.Error("bad time should fail")
	}
	if _, err := run(t, cfg, "edit", "x", "in", "2024-05-06 10:00:00"); err == nil {
		t.Error("bad index should fail")
	}
}

func TestDelete(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")

	out := mustRun(t, cfg, "delete", "0", "--yes")
	if !strings.Contains(out, "Deleted record #0") {
		t.Fatalf("delete output = %q", out)
	}
	if out := mustRun(t, cfg, "status"); !strings.Contains(out, "Checked out.") {
		t.Fatalf("deleting the open record should leave the log idle: %q", out)
	}
	if _, err := run(t, cfg, "delete", "0", "--yes"); !errors.Is(err, ledger.ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")

	if isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("stdin is a terminal")
	}
	if _, err := run(t, cfg, "delete", "0"); !errors.Is(err, errNotInteractive) {
		t.Fatalf("expected errNotInteractive, got %v", err)
	}
	if out := mustRun(t, cfg, "list"); !strings.Contains(out, "running") {
		t.Fatal("record deleted without confirmation")
	}
}

// ============================================================
// Budget
// ============================================================

func TestBudget(t *testing.T) {
	cfg := setup(t)

	if out := mustRun(t, cfg, "budget"); !strings.Contains(out, "Current WorkTime Set: 9h 00m 00s") {
		t.Fatalf("budget output = %q", out)
	}

	mustRun(t, cfg, "checkin")
	setNow(t, base.Add(time.Hour))
	mustRun(t, cfg, "checkout")

	out := mustRun(t, cfg, "budget", "0", "30", "0")
	if !strings.Contains(out, "Work time set to 0h 30m 00s") || !strings.Contains(out, "Reduced Duration by Work Time: 0h 30m 00s") {
		t.Fatalf("set budget output = %q", out)
	}
	if out := mustRun(t, cfg, "budget"); !strings.Contains(out, "0h 30m 00s") {
		t.Fatalf("budget not persisted: %q", out)
	}

	if _, err := run(t, cfg, "budget", "1"); err == nil {
		t.Error("one argument should fail")
	}
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		h, m, s string
		want    int64
		ok      bool
	}{
		{"9", "0", "0", record.DefaultBudget, true},
		{"0", "0", "0", 0, true},
		{"99", "59", "59", 359_999_000, true},
		{"100", "0", "0", 0, false},
		{"1", "60", "0", 0, false},
		{"1", "0", "-1", 0, false},
		{"one", "0", "0", 0, false},
	}
	for _, tt := range tests {
		got, err := parseBudget(tt.h, tt.m, tt.s)
		if (err == nil) != tt.ok {
			t.Errorf("parseBudget(%s,%s,%s) err = %v", tt.h, tt.m, tt.s, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseBudget(%s,%s,%s) = %d, want %d", tt.h, tt.m, tt.s, got, tt.want)
		}
	}
}

// ============================================================
// Import / export / reset
// ============================================================

func TestExportImport(t *testing.T) {
	src := setup(t)
	mustRun(t, src, "checkin")
	setNow(t, base.Add(2*time.Hour))
	mustRun(t, src, "checkout")

	file := filepath.Join(t.TempDir(), "out.json")
	out := mustRun(t, src, "export", "--out", file)
	if !strings.Contains(out, "Exported 1 records to "+file) {
		t.Fatalf("export output = %q", out)
	}

	dst := setup(t)
	setNow(t, base.Add(-48*time.Hour))
	mustRun(t, dst, "checkin")
	setNow(t, base.Add(-47*time.Hour))
	mustRun(t, dst, "checkout")

	out = mustRun(t, dst, "import", file, "--placement", "front")
	if !strings.Contains(out, "Imported 1 records (front). Log now has 2.") {
		t.Fatalf("import output = %q", out)
	}
	if out := mustRun(t, dst, "status"); !strings.Contains(out, "All Duration: 3h 00m 00s") {
		t.Fatalf("status after import = %q", out)
	}
}

func TestExportDefaultPathAndCSV(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")

	out := mustRun(t, cfg, "export")
	dir := filepath.Join(filepath.Dir(cfg), "exports")
	if !strings.Contains(out, export.DefaultPath(dir)) {
		t.Fatalf("export output = %q", out)
	}
	if _, err := os.Stat(export.DefaultPath(dir)); err != nil {
		t.Fatal(err)
	}

	out = mustRun(t, cfg, "export", "--format", "csv")
	if !strings.Contains(out, "checkinData.csv") {
		t.Fatalf("csv export output = %q", out)
	}

	if _, err := run(t, cfg, "export", "--format", "xml"); err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestImportInvalid(t *testing.T) {
	cfg := setup(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`[{"id":1}]`), 0o644)

	if _, err := run(t, cfg, "import", bad); !errors.Is(err, record.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := run(t, cfg, "import", bad, "--placement", "middle"); err == nil {
		t.Fatal("unknown placement should fail")
	}
}

func TestImportRejectsMisplacedOpenRecord(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")
	setNow(t, base.Add(time.Hour))
	mustRun(t, cfg, "checkout")

	file := filepath.Join(t.TempDir(), "open.json")
	if err := export.WriteJSON([]record.Record{record.New(7, base.Add(-72*time.Hour))}, file); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, cfg, "import", file, "--placement", "back"); !errors.Is(err, ledger.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestReset(t *testing.T) {
	cfg := setup(t)
	mustRun(t, cfg, "checkin")
	mustRun(t, cfg, "budget", "1", "0", "0")

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		if _, err := run(t, cfg, "reset"); !errors.Is(err, errNotInteractive) {
			t.Fatalf("expected errNotInteractive, got %v", err)
		}
	}

	out := mustRun(t, cfg, "reset", "--yes")
	if !strings.Contains(out, "All records removed.") {
		t.Fatalf("reset output = %q", out)
	}
	out = mustRun(t, cfg, "status")
	if !strings.Contains(out, "no data") || !strings.Contains(out, "Current WorkTime Set: 9h 00m 00s") {
		t.Fatalf("status after reset = %q", out)
	}
}

func TestDBFlagOverridesConfig(t *testing.T) {
	cfg := setup(t)
	db := filepath.Join(t.TempDir(), "other.db")

	mustRun(t, cfg, "--db", db, "checkin")
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("--db file not created: %v", err)
	}
	if out := mustRun(t, cfg, "status"); !strings.Contains(out, "no data") {
		t.Fatal("default database should be untouched")
	}
}
