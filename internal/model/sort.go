package model

import (
	"sort"
	"time"

	"github.com/verte-zerg/moodpeek/internal/calendar"
)

// SortByTime orders entries by the instant their Date names, oldest first.
// Dates with different offsets compare by instant. Entries with unparsable
// dates sort last; ties keep their input order.
func SortByTime(entries []Entry) {
	type keyed struct {
		entry Entry
		at    time.Time
		ok    bool
	}
	items := make([]keyed, len(entries))
	for i, e := range entries {
		at, ok := calendar.ParseTime(e.Date)
		items[i] = keyed{entry: e, at: at, ok: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].at.Before(items[j].at)
	})
	for i := range items {
		entries[i] = items[i].entry
	}
}
