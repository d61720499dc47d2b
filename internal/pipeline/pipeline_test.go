package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"table-combiner/internal/logging"
	"table-combiner/internal/models"
)

// newTestLogger returns a quiet-less logger writing into buffers
func newTestLogger() (*logging.Logger, *bytes.Buffer) {
	log := logging.New(false)
	buf := &bytes.Buffer{}
	log.Out = buf
	log.ErrOut = buf
	return log, buf
}

// writeFiles creates the named files (with content) inside dir
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// TestDiscover tests extension filtering and deterministic ordering
func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Beta.csv":    "a\n",
		"alpha.tsv":   "a\n",
		"gamma.txt":   "a\n",
		"notes.md":    "ignored",
		"data.xlsx":   "not really a workbook",
		"legacy.xls":  "not really a workbook",
		"backup.json": "ignored",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	want := []string{"alpha.tsv", "Beta.csv", "data.xlsx", "gamma.txt", "legacy.xls"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Discover() = %v, want %v", names, want)
	}
}

// TestDiscoverMissingFolder tests the error path for a bad folder
func TestDiscoverMissingFolder(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Discover() expected error for missing folder, got nil")
	}
}

// TestCollect tests the per-file collection flow including skip-on-error
func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"orders_Acme.csv": "id,amount\n1,10\n2,20\n",
		"users.tsv":       "name\tage\nalice\t30\n",
		"broken.xlsx":     "this is not a zip archive",
	})

	log, buf := newTestLogger()

	var progressed int
	tables, err := Collect(dir, Options{}, log, func() { progressed++ })
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(tables) != 2 {
		t.Fatalf("Collect() returned %d tables, want 2", len(tables))
	}
	if progressed != 3 {
		t.Errorf("progress callback ran %d times, want 3 (one per file)", progressed)
	}

	// Discovery order: broken.xlsx (skipped), orders_Acme.csv, users.tsv
	if tables[0].SheetName != "orders_Acme" {
		t.Errorf("first sheet name = %q, want orders_Acme", tables[0].SheetName)
	}
	if tables[1].SheetName != "users" {
		t.Errorf("second sheet name = %q, want users", tables[1].SheetName)
	}

	if !strings.Contains(buf.String(), "skipping broken.xlsx") {
		t.Errorf("expected skip warning for broken.xlsx, log was:\n%s", buf.String())
	}
}

// TestCollectNameAfterUnderscore tests the alternate naming rule
func TestCollectNameAfterUnderscore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"orders_Acme.csv": "id\n1\n",
	})

	log, _ := newTestLogger()
	tables, err := Collect(dir, Options{NameAfterUnderscore: true}, log, nil)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if tables[0].SheetName != "Acme" {
		t.Errorf("sheet name = %q, want Acme", tables[0].SheetName)
	}
}

// TestCollectEmptyFolder tests that an empty folder is an error
func TestCollectEmptyFolder(t *testing.T) {
	log, _ := newTestLogger()
	if _, err := Collect(t.TempDir(), Options{}, log, nil); err == nil {
		t.Error("Collect() expected error for empty folder, got nil")
	}
}

// TestCollectAllFilesBroken tests that a run with zero parsed tables fails
func TestCollectAllFilesBroken(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"broken.xlsx": "junk",
	})

	log, _ := newTestLogger()
	if _, err := Collect(dir, Options{}, log, nil); err == nil {
		t.Error("Collect() expected error when every file is skipped, got nil")
	}
}

// TestFinalizeNames tests the naming plan over a collected batch
func TestFinalizeNames(t *testing.T) {
	log, buf := newTestLogger()

	tables := []models.Table{
		{SheetName: "report"},
		{SheetName: "report"},
		{SheetName: "q1/q2"},
		{SheetName: strings.Repeat("n", 40)},
	}

	FinalizeNames(tables, log)

	if tables[0].SheetName != "report" {
		t.Errorf("tables[0] = %q, want report", tables[0].SheetName)
	}
	if tables[1].SheetName != "report_1" {
		t.Errorf("tables[1] = %q, want report_1", tables[1].SheetName)
	}
	if tables[2].SheetName != "q1 q2" {
		t.Errorf("tables[2] = %q, want %q", tables[2].SheetName, "q1 q2")
	}
	if got := tables[3].SheetName; len([]rune(got)) != 31 {
		t.Errorf("tables[3] = %q, want 31 runes", got)
	}

	out := buf.String()
	if !strings.Contains(out, "sheet name adjusted") {
		t.Errorf("expected adjustment warnings, log was:\n%s", out)
	}
	// Legalization alone is not an adjustment worth warning about
	if strings.Contains(out, "\"q1/q2\"") {
		t.Errorf("legalize-only change should not warn, log was:\n%s", out)
	}
}
