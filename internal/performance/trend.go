package performance

import (
	"sort"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/google/uuid"
)

// DefaultWindow is the rolling-average window, in months.
const DefaultWindow = 12

// TrendPoint is one graded score on the timeline.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// MonthPoint is the average adjusted level of one calendar month.
type MonthPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Rolling float64 `json:"rolling_average"`
}

// MonthlyTrend averages points per calendar month, oldest month first.
// Rolling is left unset.
func MonthlyTrend(points []TrendPoint) []MonthPoint {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, p := range points {
		key := p.Date.Format("2006-01")
		sums[key] += p.Value
		counts[key]++
	}

	months := make([]string, 0, len(sums))
	for k := range sums {
		months = append(months, k)
	}
	sort.Strings(months)

	out := make([]MonthPoint, len(months))
	for i, m := range months {
		out[i] = MonthPoint{Month: m, Average: sums[m] / float64(counts[m]), Count: counts[m]}
	}
	return out
}

// RollingAverage returns the trailing mean of values over window entries.
// Early entries average over the points available instead of padding with
// zeros. A window below 1 uses DefaultWindow.
func RollingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = DefaultWindow
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// BuildTrend grades every score against its workout and returns the monthly
// trend with its rolling average. Scores whose workout is unknown or that
// resolve no level are left out.
func BuildTrend(workouts []models.Workout, scores []models.Score, window int) []MonthPoint {
	byID := make(map[uuid.UUID]models.Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}

	var points []TrendPoint
	for _, s := range scores {
		w, ok := byID[s.WorkoutID]
		if !ok {
			continue
		}
		level, ok := LevelFor(w, s)
		if !ok {
			continue
		}
		points = append(points, TrendPoint{
			Date:  s.ScoreDate,
			Value: AdjustedLevel(level.Rank(), s.IsRx, w.Difficulty),
		})
	}

	months := MonthlyTrend(points)
	averages := make([]float64, len(months))
	for i, m := range months {
		averages[i] = m.Average
	}
	for i, r := range RollingAverage(averages, window) {
		months[i].Rolling = r
	}
	return months
}
