package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/wodboard/internal/corpus"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/movement"
	"github.com/claude/wodboard/internal/performance"
	"github.com/claude/wodboard/internal/search"
	"github.com/claude/wodboard/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// workoutSummary is one row of the workout list.
type workoutSummary struct {
	models.Workout
	Movements []string            `json:"movements"`
	Ordinal   int                 `json:"ordinal"`
	Level     models.Level        `json:"level,omitempty"`
	Score     *float64            `json:"score,omitempty"`
	Matches   []search.FieldMatch `json:"matches,omitempty"`
}

// workoutDetail is a workout with its derived movements and the user's scores.
type workoutDetail struct {
	models.Workout
	Movements movement.Set   `json:"movements"`
	Scores    []models.Score `json:"scores"`
	Latest    *models.Score  `json:"latest_score"`
	Level     models.Level   `json:"level,omitempty"`
	Ordinal   int            `json:"ordinal"`
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	mode := r.URL.Query().Get("mode")
	if mode != "" && mode != "fuzzy" && mode != "literal" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be fuzzy or literal"})
		return
	}

	c, err := s.corpus(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	latest, err := s.latestScores(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summarize := func(wo models.Workout) workoutSummary {
		sum := workoutSummary{Workout: wo, Movements: c.Movements(wo.ID).Names()}
		ls := latest[wo.ID]
		sum.Ordinal = performance.SortOrdinal(wo, ls)
		if ls != nil {
			if level, ok := performance.LevelFor(wo, *ls); ok {
				sum.Level = level
			}
		}
		return sum
	}

	out := []workoutSummary{}
	switch {
	case search.ParseQuery(q).Mode == search.ModeNone:
		for _, wo := range c.Workouts() {
			out = append(out, summarize(wo))
		}
	case mode == "literal":
		for _, wo := range c.MatchAll(q) {
			out = append(out, summarize(wo))
		}
	default:
		for _, hit := range c.Search(q, s.search) {
			sum := summarize(hit.Workout)
			score := hit.Result.Score
			sum.Score = &score
			sum.Matches = hit.Result.Matches
			out = append(out, sum)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	wo, err := s.store.GetWorkout(r.Context(), workoutID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	scores, err := s.store.QueryScores(r.Context(), userIDFromContext(r), &workoutID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if scores == nil {
		scores = []models.Score{}
	}

	detail := workoutDetail{
		Workout:   *wo,
		Movements: movement.ExtractWorkout(*wo),
		Scores:    scores,
		Latest:    performance.LatestScore(scores),
	}
	detail.Ordinal = performance.SortOrdinal(*wo, detail.Latest)
	if detail.Latest != nil {
		if level, ok := performance.LevelFor(*wo, *detail.Latest); ok {
			detail.Level = level
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleQueryScores(w http.ResponseWriter, r *http.Request) {
	var workoutID *uuid.UUID
	if v := r.URL.Query().Get("workout_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout_id"})
			return
		}
		workoutID = &id
	}

	scores, err := s.store.QueryScores(r.Context(), userIDFromContext(r), workoutID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if scores == nil {
		scores = []models.Score{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleDeleteScore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid score ID"})
		return
	}

	err = s.store.DeleteScore(r.Context(), userIDFromContext(r), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "score not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleMovementFrequency(w http.ResponseWriter, r *http.Request) {
	c, err := s.corpus(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	freq := c.Frequency()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := movement.Frequency{}
		if entries, ok := freq[category]; ok {
			filtered[category] = entries
		}
		freq = filtered
	}
	writeJSON(w, http.StatusOK, freq)
}

func (s *Server) handlePerformanceTrend(w http.ResponseWriter, r *http.Request) {
	window := performance.DefaultWindow
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "window must be a positive integer"})
			return
		}
		window = n
	}

	workouts, err := s.store.ListWorkouts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	scores, err := s.store.QueryScores(r.Context(), userIDFromContext(r), nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	points := performance.BuildTrend(workouts, scores, window)
	if points == nil {
		points = []performance.MonthPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	spans := search.Highlight(r.URL.Query().Get("text"), r.URL.Query().Get("q"))
	if spans == nil {
		spans = []search.Span{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"spans": spans})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetDataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := s.store.QueryImportLogs(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// corpus snapshots the current catalog for one request.
func (s *Server) corpus(r *http.Request) (*corpus.Corpus, error) {
	workouts, err := s.store.ListWorkouts(r.Context())
	if err != nil {
		return nil, err
	}
	return corpus.New(workouts), nil
}

// latestScores returns the user's most recent score per workout.
func (s *Server) latestScores(r *http.Request) (map[uuid.UUID]*models.Score, error) {
	scores, err := s.store.QueryScores(r.Context(), userIDFromContext(r), nil)
	if err != nil {
		return nil, err
	}
	byWorkout := make(map[uuid.UUID][]models.Score)
	for _, sc := range scores {
		byWorkout[sc.WorkoutID] = append(byWorkout[sc.WorkoutID], sc)
	}
	latest := make(map[uuid.UUID]*models.Score, len(byWorkout))
	for id, list := range byWorkout {
		latest[id] = performance.LatestScore(list)
	}
	return latest, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
