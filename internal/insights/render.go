// Package insights derives mood statistics from journal entries.
package insights

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"

	minScore = 1.0
	maxScore = 5.0

	defaultNoteWidth = 40
)

// Sparkline renders one character per point on the fixed 1-5 score scale.
// Days without entries render as a space.
func Sparkline(points []DayPoint) string {
	var b strings.Builder
	for _, p := range points {
		if p.Value == nil {
			b.WriteByte(' ')
			continue
		}
		pos := (*p.Value - minScore) / (maxScore - minScore)
		// index 0 is reserved for missing days
		idx := 1 + int(math.Round(pos*float64(len(sparkChars)-2)))
		if idx < 1 {
			idx = 1
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WeekHeading formats the date range of the week containing day.
func WeekHeading(day calendar.Date) string {
	start := calendar.StartOfWeek(day)
	end := calendar.EndOfWeek(day)
	return fmt.Sprintf("Week of %s – %s", start.Format(ShortLabelLayout), end.Format(ShortLabelLayout))
}

// RenderWeekReport prints the weekly metrics and patterns.
func RenderWeekReport(w io.Writer, day calendar.Date, metrics WeekMetrics, patterns PatternDetails) error {
	if _, err := fmt.Fprintln(w, WeekHeading(day)); err != nil {
		return err
	}
	if metrics.AvgScore == nil {
		if _, err := fmt.Fprintln(w, metrics.Summary); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}

	rows := [][]string{
		{"Grade", fmt.Sprintf("%s (%s)", metrics.GradeLetter, metrics.GradeLabel)},
		{"Average", fmt.Sprintf("%.2f / 5", *metrics.AvgScore)},
		{"Days logged", fmt.Sprintf("%d of 7", metrics.DaysLogged)},
	}
	if metrics.BestDay != nil {
		rows = append(rows, []string{"Best day", fmt.Sprintf("%s (%.1f)", metrics.BestDay.Label, metrics.BestDay.Score)})
	}
	if metrics.ToughDay != nil {
		rows = append(rows, []string{"Tough day", fmt.Sprintf("%s (%.1f)", metrics.ToughDay.Label, metrics.ToughDay.Score)})
	}
	if len(metrics.TopTags) > 0 {
		rows = append(rows, []string{"Top tags", strings.Join(metrics.TopTags, ", ")})
	}
	if summary := PatternSummary(patterns); summary != "" {
		rows = append(rows, []string{"Patterns", summary})
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, metrics.Summary); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderStreaks prints the current and best streaks.
func RenderStreaks(w io.Writer, info StreakInfo) error {
	if _, err := fmt.Fprintf(w, "Current streak: %d\n", info.Current); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best streak: %d\n", info.Best); err != nil {
		return err
	}
	if info.Current > 0 {
		days := info.Days.Sorted()
		if _, err := fmt.Fprintf(w, "Streak days: %s – %s\n", days[0].Key(), days[len(days)-1].Key()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, StreakMessage(info)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderMonth prints the month grid. Logged days are marked with "*",
// streak days with "+" and today is bracketed.
func RenderMonth(w io.Writer, rows []WeekRow, view calendar.Date) error {
	if _, err := fmt.Fprintln(w, view.Format("January 2006")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, " Su   Mo   Tu   We   Th   Fr   Sa"); err != nil {
		return err
	}
	for _, row := range rows {
		var b strings.Builder
		for _, day := range row.Days {
			b.WriteString(monthCell(day))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "Legend: * logged  + streak  [ ] today"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// monthCell renders a five-column cell.
func monthCell(day WeekDay) string {
	if !day.IsCurrentMonth {
		return "  .  "
	}
	marker := " "
	switch {
	case day.IsStreakDay:
		marker = "+"
	case day.HasEntries:
		marker = "*"
	}
	if day.IsToday {
		return fmt.Sprintf("[%2d]%s", day.Date.Day, marker)
	}
	return fmt.Sprintf(" %2d%s ", day.Date.Day, marker)
}

// RenderTrend prints a sparkline and a per-day table of mean scores.
func RenderTrend(w io.Writer, points []DayPoint) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "No trend data.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend %s – %s\n", points[0].Label, points[len(points)-1].Label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[%s]\n", Sparkline(points)); err != nil {
		return err
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		score := "-"
		bar := ""
		if p.Value != nil {
			score = fmt.Sprintf("%.2f", *p.Value)
			bar = strings.Repeat("#", int(math.Round(*p.Value)))
		}
		rows = append(rows, []string{p.Date.Format("Mon"), p.Label, score, bar})
	}
	for _, line := range formatTable([]string{"Day", "Date", "Score", ""}, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderEntries prints entries as a table, cutting notes to noteWidth cells.
func RenderEntries(w io.Writer, entries []model.Entry, noteWidth int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries found.")
		return err
	}
	if noteWidth <= 0 {
		noteWidth = defaultNoteWidth
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			entryWhen(e.Date),
			MoodEmoji(e.Mood) + " " + e.Mood,
			strings.Join(e.Tags, ","),
			truncate(e.Note, noteWidth),
		})
	}
	for _, line := range formatTable([]string{"ID", "When", "Mood", "Tags", "Note"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func entryWhen(raw string) string {
	at, ok := calendar.ParseTime(raw)
	if !ok {
		return "invalid: " + truncate(raw, 16)
	}
	return at.Format("Mon 2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
