package server

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/ptr"
	"github.com/claude/wodboard/internal/search"
	"github.com/claude/wodboard/internal/storage"
	"github.com/google/uuid"
)

const testAPIKey = "test-key"

var (
	franID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	cindyID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	workouts []models.Workout
	scores   []models.Score
	logs     []storage.ImportLog
	users    map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workouts: []models.Workout{
			{
				ID:          franID,
				Name:        "Fran",
				Description: "21-15-9 Thrusters (95/65 lb), Pull-Ups",
				Tags:        []string{"girls"},
				Category:    "Girls",
				Difficulty:  "Hard",
				Benchmarks: &models.Benchmarks{
					Type:         models.BenchmarkTime,
					Elite:        &models.Band{Max: ptr.To(180.0)},
					Advanced:     &models.Band{Max: ptr.To(240.0)},
					Intermediate: &models.Band{Max: ptr.To(300.0)},
					Beginner:     &models.Band{Min: ptr.To(300.0)},
				},
			},
			{
				ID:          cindyID,
				Name:        "Cindy",
				Description: "AMRAP 20\n5 Pull-Ups\n10 Push-Ups\n15 Air Squats",
				Tags:        []string{"girls"},
				Category:    "Girls",
				Difficulty:  "Medium",
			},
		},
		users: map[string]int{},
	}
}

func (f *fakeStore) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	return f.workouts, nil
}

func (f *fakeStore) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	for _, w := range f.workouts {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) QueryScores(ctx context.Context, userID int, workoutID *uuid.UUID) ([]models.Score, error) {
	var out []models.Score
	for _, s := range f.scores {
		if s.UserID == userID && (workoutID == nil || s.WorkoutID == *workoutID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertScores(ctx context.Context, scores []models.Score) (int64, error) {
	for _, s := range scores {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.CreatedAt = time.Now()
		f.scores = append(f.scores, s)
	}
	return int64(len(scores)), nil
}

func (f *fakeStore) DeleteScore(ctx context.Context, userID int, id uuid.UUID) error {
	for i, s := range f.scores {
		if s.ID == id && s.UserID == userID {
			f.scores = append(f.scores[:i], f.scores[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error) {
	log.ID = int64(len(f.logs) + 1)
	f.logs = append(f.logs, log)
	return log.ID, nil
}

func (f *fakeStore) UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error {
	prev := f.logs[id-1]
	log.ID, log.UserID, log.Source = prev.ID, prev.UserID, prev.Source
	f.logs[id-1] = log
	return nil
}

func (f *fakeStore) QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error) {
	var out []storage.ImportLog
	for _, l := range f.logs {
		if l.UserID == userID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error) {
	scores, _ := f.QueryScores(ctx, userID, nil)
	return &storage.DataStats{
		TotalWorkouts: int64(len(f.workouts)),
		TotalScores:   int64(len(scores)),
	}, nil
}

func (f *fakeStore) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	if id, ok := f.users[login]; ok {
		return id, nil
	}
	id := len(f.users) + 2
	f.users[login] = id
	return id, nil
}

func newTestServer(store *fakeStore) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, search.DefaultOptions(), testAPIKey, log)
}
