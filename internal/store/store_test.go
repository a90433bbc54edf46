package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "moodpeek.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndGetEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	saved, err := st.InsertEntry(ctx, model.Entry{
		Date: "2024-01-02T09:30:00",
		Mood: model.MoodCalm,
		Tags: []string{"work", "coffee"},
		City: "Lisbon",
		Note: "slow start",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("expected ID and creation time, got %+v", saved)
	}

	got, err := st.GetEntry(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != saved.Date || got.Mood != saved.Mood || got.City != "Lisbon" || got.Note != "slow start" {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "coffee" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created at mismatch: %v vs %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestInsertEntryRejectsUnknownMood(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.InsertEntry(context.Background(), model.Entry{Date: "2024-01-01", Mood: "ecstatic"}); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
}

func TestDeleteEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	saved, err := st.InsertEntry(ctx, model.Entry{Date: "2024-01-02", Mood: model.MoodSad})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id, err := st.DeleteEntry(ctx, saved.ID)
	if err != nil || id != saved.ID {
		t.Fatalf("delete: id=%q err=%v", id, err)
	}
	if _, err := st.DeleteEntry(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.GetEntry(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntryByPrefix(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"abc123", "abc456", "abd789"} {
		if _, err := st.InsertEntry(ctx, model.Entry{ID: id, Date: "2024-01-02", Mood: model.MoodCalm}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	if _, err := st.DeleteEntry(ctx, "abc"); !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	if _, err := st.DeleteEntry(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := st.GetEntry(ctx, "abd")
	if err != nil || got.ID != "abd789" {
		t.Fatalf("get by prefix: %+v err=%v", got, err)
	}
	id, err := st.DeleteEntry(ctx, "abc4")
	if err != nil || id != "abc456" {
		t.Fatalf("delete by prefix: id=%q err=%v", id, err)
	}
	count, err := st.CountEntries(ctx)
	if err != nil || count != 2 {
		t.Fatalf("count: %d err=%v", count, err)
	}
}

func TestDeleteEntryExactIDWinsOverPrefix(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"abc", "abcd"} {
		if _, err := st.InsertEntry(ctx, model.Entry{ID: id, Date: "2024-01-02", Mood: model.MoodCalm}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	id, err := st.DeleteEntry(ctx, "abc")
	if err != nil || id != "abc" {
		t.Fatalf("expected exact match, id=%q err=%v", id, err)
	}
}

func TestListEntriesOrdersByInstant(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.InsertEntries(ctx, []model.Entry{
		{ID: "utc", Date: "2024-01-01T20:00:00Z", Mood: model.MoodCalm},
		{ID: "tokyo", Date: "2024-01-02T01:00:00+09:00", Mood: model.MoodSad},
	}); err != nil {
		t.Fatalf("insert entries: %v", err)
	}

	all, err := st.ListEntries(ctx, model.ListFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %+v err=%v", all, err)
	}
	if all[0].ID != "tokyo" || all[1].ID != "utc" {
		t.Fatalf("expected tokyo (16:00Z) before utc (20:00Z), got %s, %s", all[0].ID, all[1].ID)
	}

	last, err := st.ListEntries(ctx, model.ListFilter{Last: 1})
	if err != nil || len(last) != 1 || last[0].ID != "utc" {
		t.Fatalf("expected most recent entry, got %+v err=%v", last, err)
	}
}

func TestListEntriesFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	entries := []model.Entry{
		{Date: "2024-01-03T08:00:00", Mood: model.MoodHappy, Tags: []string{"gym"}, City: "Berlin"},
		{Date: "2024-01-01T08:00:00", Mood: model.MoodSad, Tags: []string{"work"}},
		{Date: "2024-01-02T22:00:00", Mood: model.MoodHappy, Tags: []string{"work", "gym"}},
		{Date: "not a date", Mood: model.MoodCalm},
	}
	n, err := st.InsertEntries(ctx, entries)
	if err != nil || n != 4 {
		t.Fatalf("insert entries: n=%d err=%v", n, err)
	}

	all, err := st.ListEntries(ctx, model.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected malformed date to survive storage, got %d entries", len(all))
	}
	if all[0].Date != "2024-01-01T08:00:00" {
		t.Fatalf("expected ascending order, got %s first", all[0].Date)
	}

	happy, err := st.ListEntries(ctx, model.ListFilter{Mood: model.MoodHappy})
	if err != nil || len(happy) != 2 {
		t.Fatalf("mood filter: %d entries, err=%v", len(happy), err)
	}

	work, err := st.ListEntries(ctx, model.ListFilter{Tag: "work"})
	if err != nil || len(work) != 2 {
		t.Fatalf("tag filter: %d entries, err=%v", len(work), err)
	}

	berlin, err := st.ListEntries(ctx, model.ListFilter{City: "berlin"})
	if err != nil || len(berlin) != 1 {
		t.Fatalf("city filter: %d entries, err=%v", len(berlin), err)
	}

	since, _ := calendar.ParseKey("2024-01-02")
	until, _ := calendar.ParseKey("2024-01-03")
	ranged, err := st.ListEntries(ctx, model.ListFilter{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Date != "2024-01-02T22:00:00" {
		t.Fatalf("unexpected range result: %+v", ranged)
	}

	last, err := st.ListEntries(ctx, model.ListFilter{Last: 2})
	if err != nil || len(last) != 2 || last[0].Date != "2024-01-03T08:00:00" {
		t.Fatalf("last filter: %+v err=%v", last, err)
	}

	count, err := st.CountEntries(ctx)
	if err != nil || count != 4 {
		t.Fatalf("count: %d err=%v", count, err)
	}
}

func TestInsertEntriesRollsBackOnBadMood(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, err := st.InsertEntries(ctx, []model.Entry{
		{Date: "2024-01-01", Mood: model.MoodHappy},
		{Date: "2024-01-02", Mood: "unknown"},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	count, err := st.CountEntries(ctx)
	if err != nil || count != 0 {
		t.Fatalf("expected rollback, count=%d err=%v", count, err)
	}
}
