package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/moodpeek/internal/config"
	"github.com/verte-zerg/moodpeek/internal/insights"
	"github.com/verte-zerg/moodpeek/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return filepath.Join(dir, "journal.db")
}

func listJSONEntries(t *testing.T, db string, args ...string) []model.Entry {
	t.Helper()
	out, err := execute(t, append([]string{"list", "--json", "--db", db}, args...)...)
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	var entries []model.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return entries
}

func TestAddListDelete(t *testing.T) {
	db := testEnv(t)
	out, err := execute(t, "add", "--db", db, "--mood", "calm", "--tag", "work,gym", "--tag", " ", "--note", "ok", "--at", "2024-01-02 09:00")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Logged") || !strings.Contains(out, "Calm") {
		t.Fatalf("unexpected add output: %s", out)
	}

	entries := listJSONEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if len(e.Tags) != 2 || e.Tags[0] != "work" || e.Tags[1] != "gym" || e.Note != "ok" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if !strings.HasPrefix(e.Date, "2024-01-02T09:00:00") {
		t.Fatalf("unexpected stored date %q", e.Date)
	}

	if got := listJSONEntries(t, db, "--since", "2024-01-03"); len(got) != 0 {
		t.Fatalf("expected since filter to exclude entry, got %d", len(got))
	}
	if got := listJSONEntries(t, db, "--until", "2024-01-02"); len(got) != 1 {
		t.Fatalf("expected inclusive until, got %d", len(got))
	}

	out, err = execute(t, "list", "--db", db)
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	shown := listedID(t, out, "calm")
	if len(shown) >= len(e.ID) || !strings.HasPrefix(e.ID, shown) {
		t.Fatalf("expected list to show a short id of %s, got %q", e.ID, shown)
	}

	out, err = execute(t, "delete", "--db", db, shown)
	if err != nil || !strings.Contains(out, "Deleted "+e.ID) || !strings.Contains(out, "Calm") {
		t.Fatalf("delete: %v\n%s", err, out)
	}
	if _, err := execute(t, "delete", "--db", db, e.ID); err == nil {
		t.Fatalf("expected error deleting missing entry")
	}
	out, err = execute(t, "list", "--db", db)
	if err != nil || !strings.Contains(out, "No entries found.") {
		t.Fatalf("list: %v\n%s", err, out)
	}
}

func listedID(t *testing.T, out, mood string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for _, f := range fields {
			if f == mood {
				return fields[0]
			}
		}
	}
	t.Fatalf("no %s row in list output:\n%s", mood, out)
	return ""
}

func TestListJSONRoundTripsThroughImport(t *testing.T) {
	db := testEnv(t)
	for _, args := range [][]string{
		{"--mood", "happy", "--tag", "gym", "--at", "2024-01-01 08:00"},
		{"--mood", "sad", "--note", "rain", "--city", "Oslo", "--at", "2024-01-02 21:00"},
	} {
		if out, err := execute(t, append([]string{"add", "--db", db}, args...)...); err != nil {
			t.Fatalf("add: %v\n%s", err, out)
		}
	}
	out, err := execute(t, "list", "--db", db, "--json")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	export := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(export, []byte(out), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	other := filepath.Join(t.TempDir(), "copy.db")
	out, err = execute(t, "import", "--db", other, export)
	if err != nil || !strings.Contains(out, "Imported 2 entries (2 in journal)") {
		t.Fatalf("import: %v\n%s", err, out)
	}
	src := listJSONEntries(t, db)
	dst := listJSONEntries(t, other)
	if len(dst) != len(src) {
		t.Fatalf("expected %d entries, got %d", len(src), len(dst))
	}
	for i := range src {
		a, b := src[i], dst[i]
		if a.ID != b.ID || a.Date != b.Date || a.Mood != b.Mood || a.City != b.City || a.Note != b.Note ||
			strings.Join(a.Tags, ",") != strings.Join(b.Tags, ",") {
			t.Fatalf("entry %d changed on round trip: %+v vs %+v", i, a, b)
		}
	}
}

func TestDeleteAmbiguousPrefix(t *testing.T) {
	db := testEnv(t)
	path := filepath.Join(t.TempDir(), "export.json")
	body := `[{"id": "aa11", "date": "2024-01-01", "mood": "calm"}, {"id": "aa22", "date": "2024-01-02", "mood": "sad"}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	if out, err := execute(t, "import", "--db", db, path); err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if _, err := execute(t, "delete", "--db", db, "aa"); err == nil || !strings.Contains(err.Error(), "more than one") {
		t.Fatalf("expected ambiguous id error, got %v", err)
	}
	if out, err := execute(t, "delete", "--db", db, "aa2"); err != nil || !strings.Contains(out, "Deleted aa22") {
		t.Fatalf("delete: %v\n%s", err, out)
	}
}

func TestAddValidation(t *testing.T) {
	db := testEnv(t)
	if _, err := execute(t, "add", "--db", db, "--mood", "ecstatic"); err == nil {
		t.Fatalf("expected unknown mood error")
	}
	if _, err := execute(t, "add", "--db", db, "--mood", "calm", "--at", "soon"); err == nil {
		t.Fatalf("expected invalid --at error")
	}
	if _, err := execute(t, "add", "--db", db); err == nil {
		t.Fatalf("expected missing --mood error")
	}
	if _, err := execute(t, "list", "--db", db, "--since", "2024-02-01", "--until", "2024-01-01"); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestImportAndReport(t *testing.T) {
	db := testEnv(t)
	path := filepath.Join(t.TempDir(), "export.jsonl")
	lines := strings.Join([]string{
		`{"_id": "a1", "date": "2024-01-01T09:00:00", "mood": "happy", "tags": ["work"]}`,
		`{"_id": "a2", "date": "2024-01-02T20:00:00", "mood": "sad"}`,
		`{"_id": "a3", "date": "garbled", "mood": "calm"}`,
	}, "\n")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	out, err := execute(t, "import", "--db", db, "--dry-run", path)
	if err != nil || !strings.Contains(out, "Would import 3 entries") {
		t.Fatalf("dry run: %v\n%s", err, out)
	}
	if got := listJSONEntries(t, db); len(got) != 0 {
		t.Fatalf("dry run should not write, got %d entries", len(got))
	}

	out, err = execute(t, "import", "--db", db, path)
	if err != nil || !strings.Contains(out, "Imported 3 entries") {
		t.Fatalf("import: %v\n%s", err, out)
	}

	out, err = execute(t, "report", "--db", db, "--week", "2024-01-03", "--json")
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}
	var report insights.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.HasWeekReport || report.Metrics.DaysLogged != 2 || report.Metrics.GradeLetter != "B" {
		t.Fatalf("unexpected report: %+v", report.Metrics)
	}
	if keys := report.Streaks.Days.Keys(); len(keys) != 2 || keys[0] != "2024-01-01" || keys[1] != "2024-01-02" {
		t.Fatalf("unexpected streak days: %v", keys)
	}
	if report.Day.Key() != "2024-01-03" {
		t.Fatalf("unexpected report day %s", report.Day.Key())
	}

	out, err = execute(t, "report", "--db", db, "--week", "2024-01-03")
	if err != nil {
		t.Fatalf("text report: %v\n%s", err, out)
	}
	for _, want := range []string{"Week of Dec 31 – Jan 6", "B (Generally calm)", "Current streak: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}

	out, err = execute(t, "streak", "--db", db)
	if err != nil || !strings.Contains(out, "Best streak: 2") {
		t.Fatalf("streak: %v\n%s", err, out)
	}
	out, err = execute(t, "calendar", "--db", db, "--month", "2024-01")
	if err != nil || !strings.Contains(out, "January 2024") || !strings.Contains(out, "2 days logged in January") {
		t.Fatalf("calendar: %v\n%s", err, out)
	}
	if _, err := execute(t, "calendar", "--db", db, "--month", "January"); err == nil {
		t.Fatalf("expected invalid month error")
	}
	out, err = execute(t, "trend", "--db", db, "--days", "3")
	if err != nil || !strings.Contains(out, "Trend") {
		t.Fatalf("trend: %v\n%s", err, out)
	}
}

func TestImportRejectsUnknownMood(t *testing.T) {
	db := testEnv(t)
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(`[{"date": "2024-01-01", "mood": "meh"}]`), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	if _, err := execute(t, "import", "--db", db, path); err == nil {
		t.Fatalf("expected unknown mood error")
	}
}

func TestConfigFileSetsDB(t *testing.T) {
	testEnv(t)
	db := filepath.Join(t.TempDir(), "from-config.db")
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[journal]\ndb = \"" + filepath.ToSlash(db) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := execute(t, "add", "--mood", "happy"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("expected db at config path: %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should load: %v", err)
	}
	if cfg.Journal.DB != nil {
		t.Fatalf("template values should be commented out")
	}
}

func TestMoods(t *testing.T) {
	out, err := execute(t, "moods")
	if err != nil {
		t.Fatalf("moods: %v", err)
	}
	if !strings.Contains(out, "VERY_GOOD") || !strings.Contains(out, "stressed") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
