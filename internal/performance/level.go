// Package performance grades scores against workout benchmarks and turns
// graded scores into difficulty-weighted monthly trends.
package performance

import (
	"strings"

	"github.com/claude/wodboard/internal/models"
)

// Sort ordinals for scores that carry no level.
const (
	OrdinalRxUnleveled = 0
	OrdinalScaled      = -1
	OrdinalNoScore     = -2
)

// NumericScore picks the score field that matches the workout's benchmark
// type. Rounds are encoded as rounds + partial/100, so 5 rounds and 12 reps
// is 5.12. It returns false when the workout has no benchmarks or the score
// does not carry the matching field.
func NumericScore(w models.Workout, s models.Score) (float64, bool) {
	if w.Benchmarks == nil {
		return 0, false
	}
	switch w.Benchmarks.Type {
	case models.BenchmarkTime:
		if s.TimeSeconds != nil {
			return float64(*s.TimeSeconds), true
		}
	case models.BenchmarkReps:
		if s.Reps != nil {
			return float64(*s.Reps), true
		}
	case models.BenchmarkLoad:
		if s.Load != nil {
			return *s.Load, true
		}
	case models.BenchmarkRounds:
		if s.RoundsCompleted != nil {
			v := float64(*s.RoundsCompleted)
			if s.PartialReps != nil {
				v += float64(*s.PartialReps) / 100
			}
			return v, true
		}
	}
	return 0, false
}

// LevelFor grades a score against the workout's bands. Bounds are
// inclusive and a band with an open bound is skipped. Anything that clears
// no higher band is beginner.
func LevelFor(w models.Workout, s models.Score) (models.Level, bool) {
	v, ok := NumericScore(w, s)
	if !ok {
		return "", false
	}
	b := w.Benchmarks

	if b.Type.LowerIsBetter() {
		switch {
		case atMost(v, b.Elite):
			return models.LevelElite, true
		case atMost(v, b.Advanced):
			return models.LevelAdvanced, true
		case atMost(v, b.Intermediate):
			return models.LevelIntermediate, true
		}
		return models.LevelBeginner, true
	}

	switch {
	case atLeast(v, b.Elite):
		return models.LevelElite, true
	case atLeast(v, b.Advanced):
		return models.LevelAdvanced, true
	case atLeast(v, b.Intermediate):
		return models.LevelIntermediate, true
	}
	return models.LevelBeginner, true
}

func atMost(v float64, b *models.Band) bool {
	return b != nil && b.Max != nil && v <= *b.Max
}

func atLeast(v float64, b *models.Band) bool {
	return b != nil && b.Min != nil && v >= *b.Min
}

// SortOrdinal orders workouts by their latest score: elite 4 down to
// beginner 1, then Rx without a level, then scaled, then no score at all.
func SortOrdinal(w models.Workout, latest *models.Score) int {
	if latest == nil {
		return OrdinalNoScore
	}
	if !latest.IsRx {
		return OrdinalScaled
	}
	if level, ok := LevelFor(w, *latest); ok {
		return level.Rank()
	}
	return OrdinalRxUnleveled
}

// LatestScore returns the most recent score by date, breaking ties on
// creation time. It returns nil for an empty slice.
func LatestScore(scores []models.Score) *models.Score {
	var latest *models.Score
	for i := range scores {
		s := &scores[i]
		if latest == nil || s.ScoreDate.After(latest.ScoreDate) ||
			(s.ScoreDate.Equal(latest.ScoreDate) && s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
		}
	}
	return latest
}

var difficultyMultipliers = map[string]float64{
	"easy":           0.8,
	"medium":         1.0,
	"hard":           1.2,
	"very hard":      1.5,
	"extremely hard": 2.0,
}

// DifficultyMultiplier weights a level by the workout's difficulty label.
// Unknown labels weigh 1.
func DifficultyMultiplier(label string) float64 {
	if m, ok := difficultyMultipliers[strings.ToLower(strings.TrimSpace(label))]; ok {
		return m
	}
	return 1.0
}

// AdjustedLevel turns a 0-4 rank into the continuous value used for trends:
// Rx scores below elite get half a level, capped at 4, and the result is
// scaled by the difficulty multiplier.
func AdjustedLevel(rank int, isRx bool, difficulty string) float64 {
	level := float64(rank)
	if isRx && level < 4 {
		level = min(level+0.5, 4)
	}
	return level * DifficultyMultiplier(difficulty)
}
