// Package insights derives mood statistics from journal entries.
package insights

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

// DefaultTrendDays is the trend length used when none is configured.
const DefaultTrendDays = 7

// EntryLister loads journal entries.
type EntryLister interface {
	ListEntries(ctx context.Context, filter model.ListFilter) ([]model.Entry, error)
}

// Report contains precomputed data for one reference day.
type Report struct {
	Day           calendar.Date  `json:"day"`
	Entries       []model.Entry  `json:"-"`
	WeekEntries   []model.Entry  `json:"weekEntries"`
	HasWeekReport bool           `json:"hasWeekReport"`
	MinReportDays int            `json:"minReportDays"`
	Metrics       WeekMetrics    `json:"metrics"`
	Patterns      PatternDetails `json:"patterns"`
	Streaks       StreakInfo     `json:"streaks"`
	Month         []WeekRow      `json:"month"`
	Trend         []DayPoint     `json:"trend"`
}

// BuildReport loads every entry and prepares the report for cfg.Day.
func BuildReport(ctx context.Context, lister EntryLister, cfg model.ReportConfig) (Report, error) {
	entries, err := lister.ListEntries(ctx, model.ListFilter{})
	if err != nil {
		return Report{}, err
	}
	return Compute(entries, cfg, calendar.Today()), nil
}

// Compute derives a report from entries already in memory. today marks the
// current day in the month grid and ends the trend when cfg.Day is zero.
func Compute(entries []model.Entry, cfg model.ReportConfig, today calendar.Date) Report {
	day := cfg.Day
	if day.IsZero() {
		day = today
	}
	trendDays := cfg.TrendDays
	if trendDays <= 0 {
		trendDays = DefaultTrendDays
	}
	minDays := cfg.MinReportDays
	if minDays <= 0 {
		minDays = MinReportDays
	}

	week := WeekEntries(entries, day)
	streaks := ComputeStreaks(entries)
	return Report{
		Day:           day,
		Entries:       entries,
		WeekEntries:   week,
		HasWeekReport: HasWeekReport(week, minDays),
		MinReportDays: minDays,
		Metrics:       ComputeWeekMetrics(week),
		Patterns:      DeriveWeekPatternDetails(week),
		Streaks:       streaks,
		Month:         BuildMonthMatrixAt(day, EntryDays(entries), streaks.Days, today),
		Trend:         LastNDays(entries, day, trendDays),
	}
}

// Render prints the week report, streaks, month grid and trend.
func (r Report) Render(w io.Writer) error {
	if !r.HasWeekReport {
		if _, err := fmt.Fprintln(w, WeekHeading(r.Day)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Log moods on at least %d days this week to unlock the report (%d so far).\n\n",
			r.MinReportDays, CountDistinctDays(r.WeekEntries)); err != nil {
			return err
		}
	} else if err := RenderWeekReport(w, r.Day, r.Metrics, r.Patterns); err != nil {
		return err
	}
	if err := RenderStreaks(w, r.Streaks); err != nil {
		return err
	}
	if err := RenderMonth(w, r.Month, r.Day); err != nil {
		return err
	}
	return RenderTrend(w, r.Trend)
}
