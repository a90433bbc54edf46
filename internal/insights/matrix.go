// Package insights derives mood statistics from journal entries.
package insights

import "github.com/verte-zerg/moodpeek/internal/calendar"

// WeekDay is one cell of the month grid.
type WeekDay struct {
	Date           calendar.Date `json:"date"`
	IsCurrentMonth bool          `json:"isCurrentMonth"`
	HasEntries     bool          `json:"hasEntries"`
	IsToday        bool          `json:"isToday"`
	IsStreakDay    bool          `json:"isStreakDay"`
}

// WeekRow is one Sunday-Saturday row of the month grid.
type WeekRow struct {
	Start calendar.Date `json:"start"`
	Days  [7]WeekDay    `json:"days"`
}

// BuildMonthMatrix builds the grid for the month containing view, flagging
// today from the wall clock. Results are only valid for the current day.
func BuildMonthMatrix(view calendar.Date, entryDays, streakDays calendar.DaySet) []WeekRow {
	return BuildMonthMatrixAt(view, entryDays, streakDays, calendar.Today())
}

// BuildMonthMatrixAt builds the grid for the month containing view. Rows
// always span full weeks, so leading and trailing days of adjacent months
// are included with IsCurrentMonth false.
func BuildMonthMatrixAt(view calendar.Date, entryDays, streakDays calendar.DaySet, today calendar.Date) []WeekRow {
	start := calendar.StartOfWeek(calendar.FirstOfMonth(view))
	end := calendar.EndOfWeek(calendar.LastOfMonth(view))

	var rows []WeekRow
	for cursor := start; !cursor.After(end); cursor = cursor.AddDays(7) {
		row := WeekRow{Start: cursor}
		for i := range row.Days {
			day := cursor.AddDays(i)
			row.Days[i] = WeekDay{
				Date:           day,
				IsCurrentMonth: day.SameMonth(view),
				HasEntries:     entryDays.Has(day),
				IsToday:        day == today,
				IsStreakDay:    streakDays.Has(day),
			}
		}
		rows = append(rows, row)
	}
	return rows
}
