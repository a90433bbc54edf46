// Package insights derives mood statistics from journal entries.
package insights

import "github.com/verte-zerg/moodpeek/internal/model"

// NeutralScore is used for mood labels outside the score table.
const NeutralScore = 3

var moodScores = map[string]int{
	model.MoodHappy:    5,
	model.MoodCalm:     4,
	model.MoodNeutral:  3,
	model.MoodSad:      2,
	model.MoodStressed: 1,

	model.MoodVeryGood: 5,
	model.MoodGood:     4,
	model.MoodNeutralL: 3,
	model.MoodBad:      2,
	model.MoodVeryBad:  1,
}

// Score returns the 1-5 score of a mood label.
func Score(mood string) (int, bool) {
	score, ok := moodScores[mood]
	return score, ok
}

// ScoreOrNeutral returns the score of mood, or NeutralScore for unknown labels.
func ScoreOrNeutral(mood string) int {
	if score, ok := moodScores[mood]; ok {
		return score
	}
	return NeutralScore
}
