// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/moodpeek/internal/calendar"
)

// Mood labels. Both vocabularies map onto the same 1-5 scale.
const (
	MoodHappy    = "happy"
	MoodCalm     = "calm"
	MoodNeutral  = "neutral"
	MoodSad      = "sad"
	MoodStressed = "stressed"

	MoodVeryGood = "VERY_GOOD"
	MoodGood     = "GOOD"
	MoodNeutralL = "NEUTRAL"
	MoodBad      = "BAD"
	MoodVeryBad  = "VERY_BAD"
)

// Moods lists every accepted label, best first within each vocabulary.
var Moods = []string{
	MoodHappy, MoodCalm, MoodNeutral, MoodSad, MoodStressed,
	MoodVeryGood, MoodGood, MoodNeutralL, MoodBad, MoodVeryBad,
}

// ValidMood reports whether mood is one of the accepted labels.
func ValidMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// Entry is a single journal record.
//
// Date holds the timestamp text as recorded. It is parsed on use, and
// entries whose Date does not parse are left out of every insight.
type Entry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	Tags      []string  `json:"tags"`
	City      string    `json:"city,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter narrows entry listings. Zero values disable a filter.
type ListFilter struct {
	// Since and Until bound the entry day; Until is exclusive.
	Since *calendar.Date
	Until *calendar.Date
	Mood  string
	Tag   string
	City  string
	// Last keeps only the N most recent entries.
	Last  int
}

// ReportConfig defines which slice of the journal a report covers.
type ReportConfig struct {
	// Day selects the week and month of the report; zero means today.
	Day           calendar.Date
	TrendDays     int
	MinReportDays int
}
