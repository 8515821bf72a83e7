package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/wodboard/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workoutColumns = `id, name, description, tags, category, difficulty, benchmarks`

// ListWorkouts returns the whole catalog ordered by name.
func (db *DB) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+` FROM workouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout returns one workout by ID, or ErrNotFound.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertWorkouts inserts catalog workouts, updating existing ones matched by
// name. Existing rows keep their ID so recorded scores stay attached.
// Returns the number of rows written.
func (db *DB) UpsertWorkouts(ctx context.Context, workouts []models.Workout) (int64, error) {
	if len(workouts) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, w := range workouts {
		bench, err := marshalBenchmarks(w.Benchmarks)
		if err != nil {
			return 0, fmt.Errorf("encoding benchmarks for %s: %w", w.Name, err)
		}
		tags := w.Tags
		if tags == nil {
			tags = []string{}
		}
		id := w.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(
			`INSERT INTO workouts (id, name, description, tags, category, difficulty, benchmarks)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (name) DO UPDATE SET
			   description = EXCLUDED.description, tags = EXCLUDED.tags,
			   category = EXCLUDED.category, difficulty = EXCLUDED.difficulty,
			   benchmarks = EXCLUDED.benchmarks, updated_at = NOW()`,
			id, w.Name, w.Description, tags, w.Category, w.Difficulty, bench)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	var n int64
	for _, w := range workouts {
		tag, err := br.Exec()
		if err != nil {
			return n, fmt.Errorf("upserting workout %s: %w", w.Name, err)
		}
		n += tag.RowsAffected()
	}
	return n, nil
}

func scanWorkout(row pgx.Row) (models.Workout, error) {
	var w models.Workout
	var bench []byte
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &w.Tags, &w.Category, &w.Difficulty, &bench); err != nil {
		return w, fmt.Errorf("scanning workout: %w", err)
	}
	if len(bench) > 0 {
		w.Benchmarks = &models.Benchmarks{}
		if err := json.Unmarshal(bench, w.Benchmarks); err != nil {
			return w, fmt.Errorf("decoding benchmarks for %s: %w", w.Name, err)
		}
	}
	return w, nil
}

func marshalBenchmarks(b *models.Benchmarks) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}
