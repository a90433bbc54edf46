package insights

import (
	"testing"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

func entry(date, mood string, tags ...string) model.Entry {
	return model.Entry{Date: date, Mood: mood, Tags: tags}
}

func day(t *testing.T, key string) calendar.Date {
	t.Helper()
	d, ok := calendar.ParseKey(key)
	if !ok {
		t.Fatalf("bad test date %q", key)
	}
	return d
}
