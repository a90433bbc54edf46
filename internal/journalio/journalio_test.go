package journalio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/moodpeek/internal/model"
)

func TestReadEntriesArray(t *testing.T) {
	input := `[
		{"_id": "65a1", "date": "2024-01-02T09:00:00.000Z", "mood": "GOOD", "tags": ["work", " ", "gym "], "city": "Porto"},
		{"id": "abc", "date": "2024-01-03", "mood": "sad", "note": "long day"}
	]`
	entries, err := ReadEntries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.ID != "65a1" || first.Mood != model.MoodGood || first.City != "Porto" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if first.Date != "2024-01-02T09:00:00.000Z" {
		t.Fatalf("expected date text to be kept, got %q", first.Date)
	}
	if len(first.Tags) != 2 || first.Tags[1] != "gym" {
		t.Fatalf("unexpected tags: %v", first.Tags)
	}
	if entries[1].ID != "abc" || entries[1].Note != "long day" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestReadEntriesLines(t *testing.T) {
	input := "{\"date\": \"2024-01-02T09:00:00\", \"mood\": \"calm\"}\n\n   \n{\"date\": 1704103200000, \"mood\": \"happy\"}\n"
	entries, err := ReadEntries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	want := time.UnixMilli(1704103200000).In(time.Local).Format(time.RFC3339Nano)
	if entries[1].Date != want {
		t.Fatalf("expected %s, got %s", want, entries[1].Date)
	}
}

func TestReadEntriesErrors(t *testing.T) {
	if _, err := ReadEntries(strings.NewReader("  \n")); err == nil {
		t.Fatalf("expected error for empty input")
	}
	_, err := ReadEntries(strings.NewReader("{\"mood\": \"calm\"}\nnot json\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
	if _, err := ReadEntries(strings.NewReader(`[{"date": true}]`)); err == nil {
		t.Fatalf("expected error for boolean date")
	}
}

func TestLoadEntriesAndWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	var buf bytes.Buffer
	src := []model.Entry{{ID: "1", Date: "2024-01-02T09:00:00", Mood: "calm", Tags: []string{"a"}}}
	if err := WriteJSON(&buf, src); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	entries, err := LoadEntries(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "1" || entries[0].Tags[0] != "a" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if _, err := LoadEntries(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
