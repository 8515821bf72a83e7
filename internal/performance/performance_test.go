package performance

import (
	"math"
	"testing"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/ptr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func fran() models.Workout {
	return models.Workout{
		ID:          uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Name:        "Fran",
		Description: "21-15-9 Thrusters, Pull-Ups",
		Difficulty:  "Hard",
		Benchmarks: &models.Benchmarks{
			Type:         models.BenchmarkTime,
			Elite:        &models.Band{Max: ptr.To(180.0)},
			Advanced:     &models.Band{Max: ptr.To(240.0)},
			Intermediate: &models.Band{Max: ptr.To(300.0)},
			Beginner:     &models.Band{Min: ptr.To(300.0)},
		},
	}
}

func cindy() models.Workout {
	return models.Workout{
		ID:         uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Name:       "Cindy",
		Difficulty: "Medium",
		Benchmarks: &models.Benchmarks{
			Type:         models.BenchmarkRounds,
			Elite:        &models.Band{Min: ptr.To(25.0)},
			Advanced:     &models.Band{Min: ptr.To(20.0), Max: ptr.To(25.0)},
			Intermediate: &models.Band{Min: ptr.To(15.0), Max: ptr.To(20.0)},
			Beginner:     &models.Band{Max: ptr.To(15.0)},
		},
	}
}

// TestNumericScore verifies field selection per benchmark type and the
// rounds+partial encoding.
func TestNumericScore(t *testing.T) {
	tests := []struct {
		name   string
		typ    models.BenchmarkType
		score  models.Score
		want   float64
		wantOK bool
	}{
		{name: "time", typ: models.BenchmarkTime, score: models.Score{TimeSeconds: ptr.To(200)}, want: 200, wantOK: true},
		{name: "reps", typ: models.BenchmarkReps, score: models.Score{Reps: ptr.To(150)}, want: 150, wantOK: true},
		{name: "load", typ: models.BenchmarkLoad, score: models.Score{Load: ptr.To(102.5)}, want: 102.5, wantOK: true},
		{name: "rounds with partial", typ: models.BenchmarkRounds, score: models.Score{RoundsCompleted: ptr.To(5), PartialReps: ptr.To(12)}, want: 5.12, wantOK: true},
		{name: "rounds only", typ: models.BenchmarkRounds, score: models.Score{RoundsCompleted: ptr.To(7)}, want: 7, wantOK: true},
		{name: "mismatched field", typ: models.BenchmarkTime, score: models.Score{Reps: ptr.To(10)}, wantOK: false},
		{name: "partial without rounds", typ: models.BenchmarkRounds, score: models.Score{PartialReps: ptr.To(3)}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := models.Workout{Benchmarks: &models.Benchmarks{Type: tt.typ}}
			got, ok := NumericScore(w, tt.score)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NumericScore = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := NumericScore(models.Workout{}, models.Score{TimeSeconds: ptr.To(1)}); ok {
		t.Error("workout without benchmarks should not resolve a score")
	}
}

// TestLevelForTime verifies lower-is-better grading with inclusive upper
// bounds and the beginner catch-all.
func TestLevelForTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    models.Level
	}{
		{seconds: 150, want: models.LevelElite},
		{seconds: 180, want: models.LevelElite},
		{seconds: 181, want: models.LevelAdvanced},
		{seconds: 200, want: models.LevelAdvanced},
		{seconds: 300, want: models.LevelIntermediate},
		{seconds: 301, want: models.LevelBeginner},
		{seconds: 900, want: models.LevelBeginner},
	}
	for _, tt := range tests {
		got, ok := LevelFor(fran(), models.Score{TimeSeconds: ptr.To(tt.seconds)})
		if !ok || got != tt.want {
			t.Errorf("LevelFor(%ds) = %q, %v; want %q", tt.seconds, got, ok, tt.want)
		}
	}
}

// TestLevelForRounds verifies higher-is-better grading with inclusive lower
// bounds.
func TestLevelForRounds(t *testing.T) {
	tests := []struct {
		rounds, partial int
		want            models.Level
	}{
		{rounds: 25, want: models.LevelElite},
		{rounds: 24, partial: 12, want: models.LevelAdvanced},
		{rounds: 15, want: models.LevelIntermediate},
		{rounds: 14, partial: 29, want: models.LevelBeginner},
	}
	for _, tt := range tests {
		s := models.Score{RoundsCompleted: ptr.To(tt.rounds), PartialReps: ptr.To(tt.partial)}
		got, ok := LevelFor(cindy(), s)
		if !ok || got != tt.want {
			t.Errorf("LevelFor(%d+%d) = %q, %v; want %q", tt.rounds, tt.partial, got, ok, tt.want)
		}
	}
}

// TestLevelForSkipsOpenBands verifies that a band without the compared
// bound is skipped rather than matched.
func TestLevelForSkipsOpenBands(t *testing.T) {
	w := models.Workout{Benchmarks: &models.Benchmarks{
		Type:     models.BenchmarkTime,
		Elite:    &models.Band{},
		Advanced: &models.Band{Max: ptr.To(240.0)},
	}}
	got, _ := LevelFor(w, models.Score{TimeSeconds: ptr.To(100)})
	if got != models.LevelAdvanced {
		t.Errorf("LevelFor = %q, want advanced", got)
	}
}

// TestSortOrdinal verifies the ordinal scale including the unleveled,
// scaled and missing cases.
func TestSortOrdinal(t *testing.T) {
	unbenchmarked := models.Workout{Name: "Open"}
	tests := []struct {
		name   string
		w      models.Workout
		latest *models.Score
		want   int
	}{
		{name: "no score", w: fran(), latest: nil, want: OrdinalNoScore},
		{name: "scaled", w: fran(), latest: &models.Score{TimeSeconds: ptr.To(150)}, want: OrdinalScaled},
		{name: "rx unleveled", w: unbenchmarked, latest: &models.Score{IsRx: true, Reps: ptr.To(10)}, want: OrdinalRxUnleveled},
		{name: "rx elite", w: fran(), latest: &models.Score{IsRx: true, TimeSeconds: ptr.To(170)}, want: 4},
		{name: "rx beginner", w: fran(), latest: &models.Score{IsRx: true, TimeSeconds: ptr.To(600)}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SortOrdinal(tt.w, tt.latest); got != tt.want {
				t.Errorf("SortOrdinal = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestLatestScore verifies that only the most recent score is selected.
func TestLatestScore(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	scores := []models.Score{
		{Notes: "old", ScoreDate: day(1)},
		{Notes: "newest", ScoreDate: day(9), CreatedAt: day(10)},
		{Notes: "same day earlier entry", ScoreDate: day(9), CreatedAt: day(9)},
	}
	if got := LatestScore(scores); got == nil || got.Notes != "newest" {
		t.Errorf("LatestScore = %+v, want newest", got)
	}
	if LatestScore(nil) != nil {
		t.Error("LatestScore(nil) should be nil")
	}
}

// TestAdjustedLevel verifies the Rx bonus, its cap and the difficulty
// weighting.
func TestAdjustedLevel(t *testing.T) {
	tests := []struct {
		rank       int
		isRx       bool
		difficulty string
		want       float64
	}{
		{rank: 2, isRx: true, difficulty: "Hard", want: 3.0},
		{rank: 4, isRx: true, difficulty: "Medium", want: 4.0},
		{rank: 3, isRx: false, difficulty: "Easy", want: 2.4},
		{rank: 1, isRx: true, difficulty: "Extremely Hard", want: 3.0},
		{rank: 2, isRx: false, difficulty: "Very Hard", want: 3.0},
		{rank: 2, isRx: false, difficulty: "Brutal", want: 2.0},
	}
	for _, tt := range tests {
		got := AdjustedLevel(tt.rank, tt.isRx, tt.difficulty)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AdjustedLevel(%d, %v, %q) = %v, want %v", tt.rank, tt.isRx, tt.difficulty, got, tt.want)
		}
	}
}

// TestRollingAverageShortHistory verifies that the window shrinks to the
// available history instead of padding with zeros.
func TestRollingAverageShortHistory(t *testing.T) {
	got := RollingAverage([]float64{2, 4, 6, 8}, 3)
	want := []float64{2, 3, 4, 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RollingAverage mismatch (-want +got):\n%s", diff)
	}

	if got := RollingAverage([]float64{1, 3}, 0); got[1] != 2 {
		t.Errorf("default window average = %v, want 2", got[1])
	}
}

// TestBuildTrend verifies end-to-end grading and monthly aggregation.
func TestBuildTrend(t *testing.T) {
	w := fran()
	scores := []models.Score{
		{WorkoutID: w.ID, TimeSeconds: ptr.To(200), IsRx: true, ScoreDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{WorkoutID: w.ID, TimeSeconds: ptr.To(400), ScoreDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{WorkoutID: w.ID, TimeSeconds: ptr.To(170), IsRx: true, ScoreDate: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{WorkoutID: uuid.New(), TimeSeconds: ptr.To(1), ScoreDate: time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)},
	}

	got := BuildTrend([]models.Workout{w}, scores, DefaultWindow)
	// January: advanced Rx (3.5*1.2) and beginner scaled (1*1.2).
	// February: elite Rx (4*1.2).
	want := []MonthPoint{
		{Month: "2024-01", Average: 2.7, Count: 2, Rolling: 2.7},
		{Month: "2024-02", Average: 4.8, Count: 1, Rolling: 3.75},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("BuildTrend mismatch (-want +got):\n%s", diff)
	}
}

// TestFranEndToEnd verifies grading of the canonical Fran example.
func TestFranEndToEnd(t *testing.T) {
	got, ok := LevelFor(fran(), models.Score{TimeSeconds: ptr.To(200)})
	if !ok || got != models.LevelAdvanced {
		t.Errorf("LevelFor = %q, %v; want advanced", got, ok)
	}
}
