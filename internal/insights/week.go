// Package insights derives mood statistics from journal entries.
package insights

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const (
	maxTopTags = 6

	// DayLabelLayout formats best/tough day labels.
	DayLabelLayout = "Monday, Jan 2"

	noGradeLetter = "–"
	noGradeLabel  = "No entries yet"
	emptySummary  = "Add a few reflections to unlock your weekly report."
)

type grade struct {
	min    float64
	letter string
	label  string
}

// grades are checked in order; the first match wins.
var grades = []grade{
	{min: 4.2, letter: "A", label: "Mostly positive"},
	{min: 3.4, letter: "B", label: "Generally calm"},
	{min: 2.6, letter: "C", label: "Mixed moments"},
}

var fallbackGrade = grade{letter: "D", label: "Challenging week"}

var gradeSummaries = map[string]string{
	"A": "This week was upbeat with consistent check-ins. Nice work keeping your energy aligned.",
	"B": "You stayed mostly calm with a few fluctuations. Keep leaning on the habits that help.",
	"C": "There was a blend of highs and lows. Even brief journaling helps spot those inflection points.",
	"D": "This week felt tougher. Treat yourself gently and celebrate any small wins you logged.",
}

// DayScore is the mean mood score of one day.
type DayScore struct {
	Date  calendar.Date `json:"date"`
	Label string        `json:"label"`
	Score float64       `json:"score"`
}

// WeekMetrics summarizes one week of entries.
type WeekMetrics struct {
	AvgScore    *float64  `json:"avgScore"`
	GradeLetter string    `json:"gradeLetter"`
	GradeLabel  string    `json:"gradeLabel"`
	DaysLogged  int       `json:"daysLogged"`
	BestDay     *DayScore `json:"bestDay"`
	ToughDay    *DayScore `json:"toughDay"`
	TopTags     []string  `json:"topTags"`
	Summary     string    `json:"summary"`
}

// ComputeWeekMetrics summarizes entries already restricted to one week
// (see WeekEntries).
//
// The average is taken over every entry, so busy days weigh more than quiet
// ones. Days with equal averages and tags with equal counts keep the order in
// which they were first seen.
func ComputeWeekMetrics(entries []model.Entry) WeekMetrics {
	groups := GroupByDay(entries)
	if len(groups) == 0 {
		return WeekMetrics{
			GradeLetter: noGradeLetter,
			GradeLabel:  noGradeLabel,
			TopTags:     []string{},
			Summary:     emptySummary,
		}
	}

	var total, count int
	tags := newTagCounter()
	days := make([]DayScore, 0, len(groups))
	for _, g := range groups {
		var daySum int
		for _, e := range g.Entries {
			score := ScoreOrNeutral(e.Mood)
			daySum += score
			total += score
			count++
			for _, tag := range e.Tags {
				tags.add(tag, g.Date)
			}
		}
		days = append(days, DayScore{
			Date:  g.Date,
			Label: g.Date.Format(DayLabelLayout),
			Score: float64(daySum) / float64(len(g.Entries)),
		})
	}

	avg := float64(total) / float64(count)
	g := gradeFor(avg)

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Score > days[j].Score
	})
	best := days[0]
	tough := days[len(days)-1]

	daysLogged := len(groups)
	return WeekMetrics{
		AvgScore:    &avg,
		GradeLetter: g.letter,
		GradeLabel:  g.label,
		DaysLogged:  daysLogged,
		BestDay:     &best,
		ToughDay:    &tough,
		TopTags:     tags.top(maxTopTags),
		Summary: fmt.Sprintf("%s You logged moods on %d of 7 days. Even small, consistent check-ins build awareness.",
			gradeSummaries[g.letter], daysLogged),
	}
}

func gradeFor(avg float64) grade {
	for _, g := range grades {
		if avg >= g.min {
			return g
		}
	}
	return fallbackGrade
}

type tagStat struct {
	tag   string
	count int
	days  calendar.DaySet
}

// tagCounter counts tags while remembering first-seen order.
type tagCounter struct {
	index map[string]int
	stats []*tagStat
}

func newTagCounter() *tagCounter {
	return &tagCounter{index: map[string]int{}}
}

func (c *tagCounter) add(tag string, day calendar.Date) {
	if tag == "" {
		return
	}
	i, ok := c.index[tag]
	if !ok {
		i = len(c.stats)
		c.index[tag] = i
		c.stats = append(c.stats, &tagStat{tag: tag, days: calendar.DaySet{}})
	}
	c.stats[i].count++
	c.stats[i].days.Add(day)
}

// ranked returns stats by descending count, first-seen order on ties.
func (c *tagCounter) ranked() []*tagStat {
	out := append([]*tagStat(nil), c.stats...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	return out
}

func (c *tagCounter) top(n int) []string {
	ranked := c.ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, s.tag)
	}
	return out
}
