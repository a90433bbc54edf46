package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/insights"
	"github.com/verte-zerg/moodpeek/internal/journalio"
	"github.com/verte-zerg/moodpeek/internal/model"
	"github.com/verte-zerg/moodpeek/internal/store"
)

var (
	addMood string
	addTags []string
	addNote string
	addCity string
	addAt   string

	listSince string
	listUntil string
	listMood  string
	listTag   string
	listCity  string
	listLimit int
	listJSON  bool

	importDryRun bool
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a mood entry",
		Args:  cobra.NoArgs,
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVar(&addMood, "mood", "", "mood label (see `moodpeek moods`)")
	cmd.Flags().StringSliceVar(&addTags, "tag", nil, "tag (repeat or comma separated)")
	cmd.Flags().StringVar(&addNote, "note", "", "free-form note")
	cmd.Flags().StringVar(&addCity, "city", "", "city")
	cmd.Flags().StringVar(&addAt, "at", "", "timestamp (YYYY-MM-DD[ HH:MM] or RFC 3339; default now)")
	if err := cmd.MarkFlagRequired("mood"); err != nil {
		logErrf("failed to mark --mood required: %v\n", err)
	}
	return cmd
}

func runAddCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	if !model.ValidMood(addMood) {
		return fmt.Errorf("unknown mood %q (valid: %s)", addMood, strings.Join(model.Moods, ", "))
	}
	at := time.Now()
	if strings.TrimSpace(addAt) != "" {
		parsed, ok := calendar.ParseTime(addAt)
		if !ok {
			return fmt.Errorf("invalid --at value %q", addAt)
		}
		at = parsed
	}

	tags := make([]string, 0, len(addTags))
	for _, tag := range addTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	saved, err := st.InsertEntry(cmd.Context(), model.Entry{
		Date: at.Format(time.RFC3339),
		Mood: addMood,
		Tags: tags,
		City: strings.TrimSpace(addCity),
		Note: addNote,
	})
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %s on %s (%s)\n",
		insights.MoodEmoji(saved.Mood), insights.HumanizeMood(saved.Mood), at.Format("Mon Jan 2 15:04"), saved.ID); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&listUntil, "until", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&listMood, "mood", "", "mood filter")
	cmd.Flags().StringVar(&listTag, "tag", "", "tag filter")
	cmd.Flags().StringVar(&listCity, "city", "", "city filter")
	cmd.Flags().IntVar(&listLimit, "limit", 0, "limit to last N entries")
	cmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	filter, err := listFilter()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := st.ListEntries(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if listJSON {
		if err := journalio.WriteJSON(cmd.OutOrStdout(), entries); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	// ID, when, mood and tags take roughly 60 columns.
	noteWidth := max(20, terminalWidth()-60)
	if err := insights.RenderEntries(cmd.OutOrStdout(), entries, noteWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func listFilter() (model.ListFilter, error) {
	if listLimit < 0 {
		return model.ListFilter{}, fmt.Errorf("--limit must be >= 0")
	}
	if listMood != "" && !model.ValidMood(listMood) {
		return model.ListFilter{}, fmt.Errorf("unknown mood %q", listMood)
	}
	filter := model.ListFilter{
		Mood: listMood,
		Tag:  strings.TrimSpace(listTag),
		City: strings.TrimSpace(listCity),
		Last: listLimit,
	}
	since, err := parseDayFlag("since", listSince)
	if err != nil {
		return model.ListFilter{}, err
	}
	if !since.IsZero() {
		filter.Since = &since
	}
	until, err := parseDayFlag("until", listUntil)
	if err != nil {
		return model.ListFilter{}, err
	}
	if !until.IsZero() {
		end := until.AddDays(1)
		filter.Until = &end
	}
	if filter.Since != nil && filter.Until != nil && !filter.Since.Before(*filter.Until) {
		return model.ListFilter{}, fmt.Errorf("--since must not be after --until")
	}
	return filter, nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	id := strings.TrimSpace(args[0])
	e, err := st.GetEntry(cmd.Context(), id)
	if err != nil {
		return deleteError(id, err)
	}
	if _, err := st.DeleteEntry(cmd.Context(), e.ID); err != nil {
		return deleteError(id, err)
	}
	when := e.Date
	if at, ok := calendar.ParseTime(e.Date); ok {
		when = at.Format("Mon Jan 2 15:04")
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s %s on %s\n",
		e.ID, insights.MoodEmoji(e.Mood), insights.HumanizeMood(e.Mood), when); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func deleteError(id string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no entry with id %q", id)
	case errors.Is(err, store.ErrAmbiguousID):
		return fmt.Errorf("id %q matches more than one entry; use more characters", id)
	default:
		return fmt.Errorf("failed to delete entry: %w", err)
	}
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import entries from a JSON array or JSON lines file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate and count without writing")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	entries, err := journalio.LoadEntries(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	for i, e := range entries {
		if !model.ValidMood(e.Mood) {
			return fmt.Errorf("entry %d: unknown mood %q", i+1, e.Mood)
		}
	}
	invalid := 0
	for _, e := range entries {
		if _, ok := calendar.Normalize(e.Date); !ok {
			invalid++
		}
	}
	if invalid > 0 {
		logErrf("warning: %d entries have unreadable dates and will not count toward insights\n", invalid)
	}
	if importDryRun {
		logErrln("dry run: nothing written")
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Would import %d entries\n", len(entries))
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	n, err := st.InsertEntries(cmd.Context(), entries)
	if err != nil {
		return fmt.Errorf("failed to import entries: %w", err)
	}
	total, err := st.CountEntries(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d in journal)\n", n, total); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newMoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List accepted mood labels",
		Args:  cobra.NoArgs,
		RunE:  runMoodsCmd,
	}
}

func runMoodsCmd(cmd *cobra.Command, _ []string) error {
	for _, mood := range model.Moods {
		score, _ := insights.Score(mood)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d  %s\n", mood, score, insights.MoodEmoji(mood)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
