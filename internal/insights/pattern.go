// Package insights derives mood statistics from journal entries.
package insights

import (
	"sort"
	"strings"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const (
	daypartThreshold = 0.35
	morningStartHour = 5
	morningEndHour   = 12
	eveningStartHour = 17

	// absorbs float error so a difference of exactly the threshold counts
	thresholdEpsilon = 1e-9

	MessageEveningsHeavier = "Evenings seem slightly heavier than mornings."
	MessageMorningsDip     = "Mornings dip a bit compared to evenings."
	MessageEven            = "Mood stays fairly even throughout the day."
)

// TagStat reports how often a tag was used in a week.
type TagStat struct {
	Tag        string `json:"tag"`
	EntryCount int    `json:"entryCount"`
	DayCount   int    `json:"dayCount"`
}

// PatternDetails are qualitative observations about one week.
type PatternDetails struct {
	MoodMode       *string  `json:"moodMode"`
	TopTag         *TagStat `json:"topTag"`
	DaypartMessage *string  `json:"daypartMessage"`
}

type scoreBucket struct {
	sum   int
	count int
}

func (b *scoreBucket) add(score int) {
	b.sum += score
	b.count++
}

func (b scoreBucket) mean() float64 {
	return float64(b.sum) / float64(b.count)
}

// DeriveWeekPatternDetails finds the most common mood, the top tag and a
// morning versus evening comparison for one week of entries.
//
// Mood ties go to the alphabetically first label, while tag ties go to the
// first-seen tag.
func DeriveWeekPatternDetails(entries []model.Entry) PatternDetails {
	moodCounts := map[string]int{}
	tags := newTagCounter()
	var morning, evening scoreBucket

	for _, e := range entries {
		at, ok := calendar.ParseTime(e.Date)
		if !ok {
			continue
		}
		day := calendar.FromTime(at)

		mood := e.Mood
		if mood == "" {
			mood = model.MoodNeutral
		}
		moodCounts[mood]++

		for _, tag := range e.Tags {
			tags.add(tag, day)
		}

		score := ScoreOrNeutral(mood)
		switch hour := at.Hour(); {
		case hour >= morningStartHour && hour < morningEndHour:
			morning.add(score)
		case hour >= eveningStartHour:
			evening.add(score)
		}
	}

	var details PatternDetails
	if mode, ok := moodMode(moodCounts); ok {
		details.MoodMode = &mode
	}
	if ranked := tags.ranked(); len(ranked) > 0 {
		top := ranked[0]
		details.TopTag = &TagStat{
			Tag:        top.tag,
			EntryCount: top.count,
			DayCount:   top.days.Len(),
		}
	}
	if morning.count > 0 && evening.count > 0 {
		msg := daypartMessage(morning.mean(), evening.mean())
		details.DaypartMessage = &msg
	}
	return details
}

func moodMode(counts map[string]int) (string, bool) {
	if len(counts) == 0 {
		return "", false
	}
	moods := make([]string, 0, len(counts))
	for mood := range counts {
		moods = append(moods, mood)
	}
	sort.Slice(moods, func(i, j int) bool {
		if counts[moods[i]] != counts[moods[j]] {
			return counts[moods[i]] > counts[moods[j]]
		}
		return labelLess(moods[i], moods[j])
	})
	return moods[0], true
}

// labelLess orders labels alphabetically ignoring case; on a case-only
// difference the lowercase label comes first.
func labelLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a > b
}

func daypartMessage(morningAvg, eveningAvg float64) string {
	switch {
	case morningAvg-eveningAvg >= daypartThreshold-thresholdEpsilon:
		return MessageEveningsHeavier
	case eveningAvg-morningAvg >= daypartThreshold-thresholdEpsilon:
		return MessageMorningsDip
	default:
		return MessageEven
	}
}
