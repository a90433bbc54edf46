// Package insights derives mood statistics from journal entries.
package insights

import (
	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

// DayGroup holds the entries logged on one calendar day.
type DayGroup struct {
	Date    calendar.Date
	Entries []model.Entry
}

// GroupByDay buckets entries by local calendar day. Groups keep the order in
// which their day was first encountered. Entries with unparsable dates are
// dropped.
func GroupByDay(entries []model.Entry) []DayGroup {
	index := map[calendar.Date]int{}
	var groups []DayGroup
	for _, e := range entries {
		day, ok := calendar.Normalize(e.Date)
		if !ok {
			continue
		}
		i, seen := index[day]
		if !seen {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Date: day})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// EntryDays returns the set of days with at least one entry.
func EntryDays(entries []model.Entry) calendar.DaySet {
	days := calendar.DaySet{}
	for _, e := range entries {
		if day, ok := calendar.Normalize(e.Date); ok {
			days.Add(day)
		}
	}
	return days
}

// CountDistinctDays returns the number of distinct days with entries.
func CountDistinctDays(entries []model.Entry) int {
	return EntryDays(entries).Len()
}

// FilterRange keeps entries whose day falls in [start, endExclusive).
func FilterRange(entries []model.Entry, start, endExclusive calendar.Date) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		day, ok := calendar.Normalize(e.Date)
		if !ok {
			continue
		}
		if day.Before(start) || !day.Before(endExclusive) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// WeekEntries returns the entries of the Sunday-Saturday week containing day,
// ordered by timestamp.
func WeekEntries(entries []model.Entry, day calendar.Date) []model.Entry {
	start := calendar.StartOfWeek(day)
	end := calendar.EndOfWeek(day).AddDays(1)
	out := FilterRange(entries, start, end)
	model.SortByTime(out)
	return out
}
