// Package insights derives mood statistics from journal entries.
package insights

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const (
	// MinReportDays is the number of logged days a week needs before its
	// report is shown.
	MinReportDays = 2

	// ShortLabelLayout formats trend point labels.
	ShortLabelLayout = "Jan 2"
)

// DayPoint is the mean score of one day; Value is nil for days without entries.
type DayPoint struct {
	Date  calendar.Date `json:"date"`
	Label string        `json:"label"`
	Value *float64      `json:"value"`
}

// LastNDays returns one point per day for the n days ending at today, oldest
// first.
func LastNDays(entries []model.Entry, today calendar.Date, n int) []DayPoint {
	if n <= 0 {
		return nil
	}
	buckets := map[calendar.Date]*scoreBucket{}
	for _, e := range entries {
		day, ok := calendar.Normalize(e.Date)
		if !ok {
			continue
		}
		b, ok := buckets[day]
		if !ok {
			b = &scoreBucket{}
			buckets[day] = b
		}
		b.add(ScoreOrNeutral(e.Mood))
	}

	points := make([]DayPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		point := DayPoint{Date: day, Label: day.Format(ShortLabelLayout)}
		if b, ok := buckets[day]; ok {
			v := b.mean()
			point.Value = &v
		}
		points = append(points, point)
	}
	return points
}

// DaysLoggedInMonth counts the distinct days with entries in ref's month.
func DaysLoggedInMonth(entries []model.Entry, ref calendar.Date) int {
	count := 0
	for day := range EntryDays(entries) {
		if day.SameMonth(ref) {
			count++
		}
	}
	return count
}

// HasEntryOn reports whether any entry was logged on day.
func HasEntryOn(entries []model.Entry, day calendar.Date) bool {
	for _, e := range entries {
		if d, ok := calendar.Normalize(e.Date); ok && d == day {
			return true
		}
	}
	return false
}

// HasWeekReport reports whether a week's entries cover at least minDays
// distinct days. minDays <= 0 means MinReportDays.
func HasWeekReport(weekEntries []model.Entry, minDays int) bool {
	if minDays <= 0 {
		minDays = MinReportDays
	}
	return CountDistinctDays(weekEntries) >= minDays
}

// WeeklyGoalTarget suggests how many days to log this week given the current
// streak.
func WeeklyGoalTarget(current int) int {
	return min(7, max(5, current+2))
}

// StreakMessage describes the current streak with a goal for the week.
func StreakMessage(info StreakInfo) string {
	if info.Current == 0 {
		return "No streak yet. Aim for 3 quick check-ins this week to build momentum."
	}
	unit := "days"
	if info.Current == 1 {
		unit = "day"
	}
	return fmt.Sprintf("You've checked in %d %s in a row. Aim for %d days this week?",
		info.Current, unit, WeeklyGoalTarget(info.Current))
}

// PatternSummary joins the week's pattern details into one line.
func PatternSummary(details PatternDetails) string {
	var parts []string
	if details.MoodMode != nil {
		parts = append(parts, "Most common mood: "+HumanizeMood(*details.MoodMode))
	}
	if details.TopTag != nil {
		parts = append(parts, "Top tag: "+details.TopTag.Tag)
	}
	if details.DaypartMessage != nil {
		parts = append(parts, *details.DaypartMessage)
	}
	return strings.Join(parts, " · ")
}

// HumanizeMood turns a label such as VERY_GOOD into "Very good".
func HumanizeMood(mood string) string {
	normalized := strings.ToLower(strings.ReplaceAll(mood, "_", " "))
	if normalized == "" {
		return ""
	}
	return strings.ToUpper(normalized[:1]) + normalized[1:]
}

var moodEmoji = map[string]string{
	model.MoodHappy:    "😄",
	model.MoodCalm:     "😌",
	model.MoodNeutral:  "😐",
	model.MoodSad:      "😔",
	model.MoodStressed: "😣",
	model.MoodVeryGood: "😄",
	model.MoodGood:     "🙂",
	model.MoodNeutralL: "😐",
	model.MoodBad:      "☁️",
	model.MoodVeryBad:  "😣",
}

// MoodEmoji returns the display emoji of a mood, or "·" for unknown labels.
func MoodEmoji(mood string) string {
	if e, ok := moodEmoji[mood]; ok {
		return e
	}
	return "·"
}
