package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/wodboard/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const scoreColumns = `id, user_id, workout_id, time_seconds, reps, load, rounds_completed,
	partial_reps, is_rx, score_date, notes, created_at`

// scoreChunk keeps each INSERT below the PostgreSQL bind-parameter limit.
const scoreChunk = 1000

// InsertScores batch-inserts scores in one transaction. Scores without an
// ID get their content ID, so a score already stored is skipped. Returns
// count inserted; nothing is kept when any chunk fails.
func (db *DB) InsertScores(ctx context.Context, scores []models.Score) (int64, error) {
	var total int64
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		for start := 0; start < len(scores); start += scoreChunk {
			n, err := insertScoreChunk(ctx, tx, scores[start:min(start+scoreChunk, len(scores))])
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func insertScoreChunk(ctx context.Context, tx pgx.Tx, scores []models.Score) (int64, error) {
	query := `INSERT INTO scores (id, user_id, workout_id, time_seconds, reps, load,
	 rounds_completed, partial_reps, is_rx, score_date, notes) VALUES `
	args := make([]any, 0, len(scores)*11)
	valueStrings := make([]string, 0, len(scores))

	for i, s := range scores {
		id := s.ID
		if id == uuid.Nil {
			id = s.ContentID()
		}
		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, id, s.UserID, s.WorkoutID, s.TimeSeconds, s.Reps, s.Load,
			s.RoundsCompleted, s.PartialReps, s.IsRx, s.ScoreDate, s.Notes)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT (id) DO NOTHING"

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting scores: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryScores returns a user's scores, newest first. A nil workoutID
// returns scores for every workout.
func (db *DB) QueryScores(ctx context.Context, userID int, workoutID *uuid.UUID) ([]models.Score, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE user_id = $1 AND ($2::uuid IS NULL OR workout_id = $2)
		 ORDER BY score_date DESC, created_at DESC`,
		userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer rows.Close()

	var result []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.WorkoutID, &s.TimeSeconds, &s.Reps, &s.Load,
			&s.RoundsCompleted, &s.PartialReps, &s.IsRx, &s.ScoreDate, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// DeleteScore removes one of a user's scores, or returns ErrNotFound.
func (db *DB) DeleteScore(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM scores WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting score %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("score %s: %w", id, ErrNotFound)
	}
	return nil
}
