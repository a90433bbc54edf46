package dashui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/insights"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const entryTimeLayout = "Mon Jan 2 15:04"

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func renderWeek(r insights.Report, width int) string {
	heading := cardValueStyle.Render(insights.WeekHeading(r.Day))
	if !r.HasWeekReport {
		logged := insights.CountDistinctDays(r.WeekEntries)
		lines := []string{
			heading,
			"",
			fmt.Sprintf("Log moods on at least %d days this week to unlock the report.", r.MinReportDays),
			mutedStyle.Render(fmt.Sprintf("%d of %d days logged so far.", logged, r.MinReportDays)),
			"",
			insights.StreakMessage(r.Streaks),
		}
		return strings.Join(lines, "\n")
	}

	m := r.Metrics
	avg := "–"
	if m.AvgScore != nil {
		avg = fmt.Sprintf("%.2f", *m.AvgScore)
	}
	cards := []string{
		metricCard("Grade", fmt.Sprintf("%s · %s", m.GradeLetter, m.GradeLabel)),
		metricCard("Average", avg+" / 5"),
		metricCard("Days logged", fmt.Sprintf("%d of 7", m.DaysLogged)),
		metricCard("Streak", fmt.Sprintf("%d (best %d)", r.Streaks.Current, r.Streaks.Best)),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	lines := []string{heading, grid}
	if m.BestDay != nil && m.ToughDay != nil {
		lines = append(lines,
			fmt.Sprintf("%s %s (%.1f)", cardTitleStyle.Render("Best day: "), m.BestDay.Label, m.BestDay.Score),
			fmt.Sprintf("%s %s (%.1f)", cardTitleStyle.Render("Tough day:"), m.ToughDay.Label, m.ToughDay.Score),
		)
	}
	if len(m.TopTags) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", cardTitleStyle.Render("Top tags: "), strings.Join(m.TopTags, ", ")))
	}
	if summary := insights.PatternSummary(r.Patterns); summary != "" {
		lines = append(lines, fmt.Sprintf("%s %s", cardTitleStyle.Render("Patterns: "), summary))
	}
	lines = append(lines, "", lipgloss.NewStyle().Width(max(20, width-2)).Render(m.Summary))
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCalendar(r insights.Report) string {
	lines := []string{
		cardValueStyle.Render(r.Day.Format("January 2006")),
		strings.Join(weekdayHeader, "  "),
	}
	for _, row := range r.Month {
		cells := make([]string, 0, len(row.Days))
		for _, day := range row.Days {
			cells = append(cells, calendarCell(day, day.Date == r.Day))
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	logged := insights.DaysLoggedInMonth(r.Entries, r.Day)
	lines = append(lines,
		"",
		fmt.Sprintf("%d days logged this month", logged),
		mutedStyle.Render("* logged  + streak  reversed: today  underline: selected"),
	)
	return strings.Join(lines, "\n")
}

// calendarCell renders a four-column cell. Markers keep the grid readable
// without color.
func calendarCell(day insights.WeekDay, selected bool) string {
	if !day.IsCurrentMonth {
		return outsideStyle.Render(fmt.Sprintf("%2d  ", day.Date.Day))
	}
	marker := " "
	style := lipgloss.NewStyle()
	switch {
	case day.IsStreakDay:
		marker = "+"
		style = streakStyle
	case day.HasEntries:
		marker = "*"
		style = loggedStyle
	}
	if day.IsToday {
		style = style.Reverse(true)
	}
	if selected {
		style = style.Underline(true)
	}
	return style.Render(fmt.Sprintf("%2d%s", day.Date.Day, marker)) + " "
}

func renderTrend(r insights.Report, width int) string {
	var buf bytes.Buffer
	if err := insights.PlotTrend(&buf, r.Trend, insights.PlotWidthFor(width-2), 0); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	buf.WriteString("\n")
	if err := insights.RenderTrend(&buf, r.Trend); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildEntryTable(entries []model.Entry, width, height int) table.Model {
	cols, rows := buildEntryTableData(entries, width)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(entryTableStyles())
	return t
}

func buildEntryTableData(entries []model.Entry, width int) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Mood", Width: 14},
		{Title: "Tags", Width: 20},
		{Title: "City", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 1
	}
	columns = append(columns, table.Column{Title: "Note", Width: max(10, width-used-1)})

	rows := make([]table.Row, 0, len(entries))
	// newest first
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		when := e.Date
		if at, ok := calendar.ParseTime(e.Date); ok {
			when = at.Format(entryTimeLayout)
		}
		rows = append(rows, table.Row{
			when,
			insights.MoodEmoji(e.Mood) + " " + insights.HumanizeMood(e.Mood),
			strings.Join(e.Tags, ", "),
			e.City,
			strings.ReplaceAll(e.Note, "\n", " "),
		})
	}
	return columns, rows
}

func entryTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
