// Package insights derives mood statistics from journal entries.
package insights

import (
	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

// StreakInfo describes runs of consecutive logged days.
type StreakInfo struct {
	// Current is the length of the run ending at the most recent logged day.
	// It is not reset when days pass without a new entry.
	Current int `json:"current"`
	Best    int `json:"best"`
	// Days holds the days of the current run.
	Days calendar.DaySet `json:"streakDays"`
}

// ComputeStreaks computes the current and best streaks over the full entry
// history.
func ComputeStreaks(entries []model.Entry) StreakInfo {
	logged := EntryDays(entries)
	info := StreakInfo{Days: calendar.DaySet{}}
	if logged.Len() == 0 {
		return info
	}

	days := logged.Sorted()
	run := 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDays(1) == day {
			run++
		} else {
			run = 1
		}
		if run > info.Best {
			info.Best = run
		}
	}

	var trailing []calendar.Date
	for cursor := days[len(days)-1]; logged.Has(cursor); cursor = cursor.AddDays(-1) {
		trailing = append(trailing, cursor)
	}
	info.Days = calendar.NewDaySet(trailing...)
	info.Current = info.Days.Len()
	return info
}
