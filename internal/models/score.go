package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Score is a recorded result for a workout. At most one value group is set,
// matching the workout's benchmark type: TimeSeconds, Reps, Load, or
// RoundsCompleted with PartialReps.
type Score struct {
	ID              uuid.UUID `json:"id"`
	UserID          int       `json:"user_id"`
	WorkoutID       uuid.UUID `json:"workout_id"`
	TimeSeconds     *int      `json:"time_seconds,omitempty"`
	Reps            *int      `json:"reps,omitempty"`
	Load            *float64  `json:"load,omitempty"`
	RoundsCompleted *int      `json:"rounds_completed,omitempty"`
	PartialReps     *int      `json:"partial_reps,omitempty"`
	IsRx            bool      `json:"is_rx"`
	ScoreDate       time.Time `json:"score_date"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasValue reports whether any score field is populated.
func (s Score) HasValue() bool {
	return s.TimeSeconds != nil || s.Reps != nil || s.Load != nil ||
		s.RoundsCompleted != nil || s.PartialReps != nil
}

// scoreNamespace seeds content-derived score IDs.
var scoreNamespace = uuid.MustParse("3d7b9e04-8a61-4f2c-b5d3-0c9e1a6f4b27")

// ContentID derives a stable ID from the owner, workout, date, Rx flag and
// values. Re-importing the same result yields the same ID; notes are not
// part of the key.
func (s Score) ContentID() uuid.UUID {
	key := strings.Join([]string{
		strconv.Itoa(s.UserID),
		s.WorkoutID.String(),
		s.ScoreDate.Format("2006-01-02"),
		strconv.FormatBool(s.IsRx),
		intKey(s.TimeSeconds),
		intKey(s.Reps),
		floatKey(s.Load),
		intKey(s.RoundsCompleted),
		intKey(s.PartialReps),
	}, "|")
	return uuid.NewSHA1(scoreNamespace, []byte(key))
}

func intKey(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func floatKey(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
