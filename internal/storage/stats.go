package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's stored data.
type DataStats struct {
	TotalWorkouts   int64              `json:"total_workouts"`
	TotalScores     int64              `json:"total_scores"`
	RxScores        int64              `json:"rx_scores"`
	EarliestScore   *time.Time         `json:"earliest_score"`
	LatestScore     *time.Time         `json:"latest_score"`
	ScoresByWorkout []WorkoutScoreStat `json:"scores_by_workout"`
}

// WorkoutScoreStat holds score counts for a single workout.
type WorkoutScoreStat struct {
	Name    string `json:"name"`
	Count   int64  `json:"count"`
	RxCount int64  `json:"rx_count"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	// Catalog size is shared by all users
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&stats.TotalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_rx), MIN(score_date), MAX(score_date)
		 FROM scores WHERE user_id = $1`, userID,
	).Scan(&stats.TotalScores, &stats.RxScores, &stats.EarliestScore, &stats.LatestScore)
	if err != nil {
		return nil, fmt.Errorf("counting scores: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT w.name, COUNT(*), COUNT(*) FILTER (WHERE s.is_rx)
		 FROM scores s
		 JOIN workouts w ON w.id = s.workout_id
		 WHERE s.user_id = $1
		 GROUP BY w.name
		 ORDER BY COUNT(*) DESC, w.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying scores by workout: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutScoreStat
		if err := rows.Scan(&s.Name, &s.Count, &s.RxCount); err != nil {
			return nil, fmt.Errorf("scanning workout score stat: %w", err)
		}
		stats.ScoresByWorkout = append(stats.ScoresByWorkout, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
