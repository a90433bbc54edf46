package insights

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/verte-zerg/moodpeek/internal/model"
)

func TestComputeStreaksEmpty(t *testing.T) {
	info := ComputeStreaks(nil)
	if info.Current != 0 || info.Best != 0 || info.Days.Len() != 0 {
		t.Fatalf("expected empty streaks, got %+v", info)
	}
}

func TestComputeStreaksConsecutive(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-01T09:00:00", "happy"),
		entry("2024-01-02T09:00:00", "sad"),
		entry("2024-01-02T21:00:00", "calm"),
		entry("2024-01-03T09:00:00", "calm"),
	}
	info := ComputeStreaks(entries)
	if info.Current != 3 || info.Best != 3 {
		t.Fatalf("expected 3/3, got %d/%d", info.Current, info.Best)
	}
	keys := info.Days.Keys()
	if len(keys) != 3 || keys[0] != "2024-01-01" || keys[2] != "2024-01-03" {
		t.Fatalf("unexpected streak days: %v", keys)
	}
}

func TestComputeStreaksGapResetsCurrent(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-05T09:00:00", "happy"),
		entry("2024-01-01T09:00:00", "happy"),
		entry("2024-01-02T09:00:00", "happy"),
		entry("2024-01-03T09:00:00", "happy"),
	}
	info := ComputeStreaks(entries)
	if info.Current != 1 || info.Best != 3 {
		t.Fatalf("expected 1/3, got %d/%d", info.Current, info.Best)
	}
	if !info.Days.Has(day(t, "2024-01-05")) || info.Days.Has(day(t, "2024-01-03")) {
		t.Fatalf("unexpected streak days: %v", info.Days.Keys())
	}
}

func TestComputeStreaksIgnoresInvalidDates(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-01T09:00:00", "happy"),
		entry("not a date", "happy"),
		entry("", "sad"),
	}
	info := ComputeStreaks(entries)
	if info.Current != 1 || info.Best != 1 {
		t.Fatalf("expected 1/1, got %d/%d", info.Current, info.Best)
	}
}

func TestStreakInfoJSONIncludesDays(t *testing.T) {
	info := ComputeStreaks([]model.Entry{
		entry("2024-01-01T09:00:00", "happy"),
		entry("2024-01-03T09:00:00", "calm"),
		entry("2024-01-04T21:00:00", "calm"),
	})
	raw, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"streakDays":["2024-01-03","2024-01-04"]`) {
		t.Fatalf("expected streak days in json: %s", raw)
	}
}
