// Package main provides the CLI entrypoint for moodpeek.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/config"
	"github.com/verte-zerg/moodpeek/internal/dashui"
	"github.com/verte-zerg/moodpeek/internal/insights"
	"github.com/verte-zerg/moodpeek/internal/model"
	"github.com/verte-zerg/moodpeek/internal/store"
)

const (
	defaultTrendDays = insights.DefaultTrendDays
	defaultWidth     = 80
)

var (
	dbPath  string
	noColor bool

	rootWeek string

	reportWeek string
	reportJSON bool

	trendDays int
	trendPlot bool

	calendarMonth string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moodpeek",
		Short:         "Mood journal insights in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runRootCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to the journal database")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors in the dashboard")
	rootCmd.Flags().StringVar(&rootWeek, "week", "", "any day of the week to open (YYYY-MM-DD)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newMoodsCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newStreakCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// runRootCmd opens the dashboard on a terminal and prints the text report
// otherwise.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	day, err := parseDayFlag("week", rootWeek)
	if err != nil {
		return err
	}
	cfg := reportConfig(fileCfg, day)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if !isTerminal(os.Stdout) {
		report, err := insights.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout())
	}

	colors := !noColor
	if fileCfg.Display.Color != nil && !cmd.Flags().Changed("no-color") {
		colors = *fileCfg.Display.Color
	}
	if !colors {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	dashboard := dashui.NewModel(st, cfg)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# moodpeek configuration
# Uncomment a value to enable it. CLI flags override config values.

[journal]
# db = %q

[report]
# trend-days = %d        # Days shown by the trend view
# min-report-days = %d   # Logged days needed to unlock a weekly report

[display]
# color = true           # Set to false to disable dashboard colors
`,
		config.DefaultDBPath(),
		defaultTrendDays,
		insights.MinReportDays,
	)
}

// loadFileConfig reads the config file and applies [journal] db unless
// --db was given.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Journal.DB != nil {
		expanded := config.ExpandHome(*fileCfg.Journal.DB)
		applyStringConfig(cmd, "db", &dbPath, &expanded)
	}
	return fileCfg, nil
}

func reportConfig(fileCfg config.FileConfig, day calendar.Date) model.ReportConfig {
	cfg := model.ReportConfig{
		Day:           day,
		TrendDays:     defaultTrendDays,
		MinReportDays: insights.MinReportDays,
	}
	if fileCfg.Report.TrendDays != nil {
		cfg.TrendDays = *fileCfg.Report.TrendDays
	}
	if fileCfg.Report.MinReportDays != nil {
		cfg.MinReportDays = *fileCfg.Report.MinReportDays
	}
	return cfg
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func loadAllEntries(ctx context.Context, st *store.Store) ([]model.Entry, error) {
	entries, err := st.ListEntries(ctx, model.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// parseDayFlag parses a YYYY-MM-DD flag value. Empty means zero.
func parseDayFlag(name, value string) (calendar.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return calendar.Date{}, nil
	}
	day, ok := calendar.ParseKey(value)
	if !ok {
		return calendar.Date{}, fmt.Errorf("invalid --%s value %q (want YYYY-MM-DD)", name, value)
	}
	return day, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
