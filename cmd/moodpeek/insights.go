package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/insights"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the weekly report",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportWeek, "week", "", "any day of the week to report (YYYY-MM-DD; default today)")
	cmd.Flags().BoolVar(&reportJSON, "json", false, "print JSON")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	day, err := parseDayFlag("week", reportWeek)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := insights.BuildReport(cmd.Context(), st, reportConfig(fileCfg, day))
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if reportJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	if err := report.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show current and best streaks",
		Args:  cobra.NoArgs,
		RunE:  runStreakCmd,
	}
}

func runStreakCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := loadAllEntries(cmd.Context(), st)
	if err != nil {
		return err
	}
	if err := insights.RenderStreaks(cmd.OutOrStdout(), insights.ComputeStreaks(entries)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month grid",
		Args:  cobra.NoArgs,
		RunE:  runCalendarCmd,
	}
	cmd.Flags().StringVar(&calendarMonth, "month", "", "month to show (YYYY-MM; default current)")
	return cmd
}

func runCalendarCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	today := calendar.Today()
	view := today
	if value := strings.TrimSpace(calendarMonth); value != "" {
		parsed, err := time.ParseInLocation("2006-01", value, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month value %q (want YYYY-MM)", value)
		}
		view = calendar.FromTime(parsed)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := loadAllEntries(cmd.Context(), st)
	if err != nil {
		return err
	}
	streaks := insights.ComputeStreaks(entries)
	rows := insights.BuildMonthMatrixAt(view, insights.EntryDays(entries), streaks.Days, today)
	if err := insights.RenderMonth(cmd.OutOrStdout(), rows, view); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d days logged in %s\n",
		insights.DaysLoggedInMonth(entries, view), view.Format("January"))
	return err
}

func newTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show daily mood averages",
		Args:  cobra.NoArgs,
		RunE:  runTrendCmd,
	}
	cmd.Flags().IntVar(&trendDays, "days", defaultTrendDays, "number of days ending today")
	cmd.Flags().BoolVar(&trendPlot, "plot", true, "draw a line chart above the table")
	return cmd
}

func runTrendCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "days", &trendDays, fileCfg.Report.TrendDays)
	if trendDays <= 0 {
		return fmt.Errorf("--days must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := loadAllEntries(cmd.Context(), st)
	if err != nil {
		return err
	}
	points := insights.LastNDays(entries, calendar.Today(), trendDays)
	if trendPlot {
		if err := insights.PlotTrend(cmd.OutOrStdout(), points, insights.PlotWidthFor(terminalWidth()), 0); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := insights.RenderTrend(cmd.OutOrStdout(), points); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
