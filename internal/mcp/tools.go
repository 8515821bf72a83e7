package mcp

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/claude/wodboard/internal/corpus"
	"github.com/claude/wodboard/internal/csvimport"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/movement"
	"github.com/claude/wodboard/internal/performance"
	"github.com/claude/wodboard/internal/search"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolSearchWorkouts = mcp.NewTool("search_workouts",
	mcp.WithDescription("Search the workout catalog. Fuzzy mode tolerates typos and accents; wrap a phrase in double quotes for an exact match. Literal mode keeps workouts containing every term as a plain substring."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text (e.g. 'thruster', 'pullup burpee', '\"for time\"')")),
	mcp.WithString("mode", mcp.Description("Matching mode. Defaults to 'fuzzy'."), mcp.Enum("fuzzy", "literal")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of results. Defaults to 20.")),
)

var toolGetWorkoutLevel = mcp.NewTool("get_workout_level",
	mcp.WithDescription("Grade the user's most recent score for a workout against its benchmark bands (elite/advanced/intermediate/beginner). Also returns the sort ordinal: 4..1 for a level, 0 for Rx without a level, -1 for scaled, -2 for no score."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout name (e.g. Fran) or ID")),
)

var toolGetMovementFrequency = mcp.NewTool("get_movement_frequency",
	mcp.WithDescription("Count how many catalog workouts use each movement, per workout category. Each workout counts once per movement."),
	mcp.WithString("category", mcp.Description("Restrict to one category (e.g. Girls, Heroes). Defaults to all.")),
	mcp.WithNumber("limit", mcp.Description("Top N movements per category. Defaults to all.")),
)

var toolGetPerformanceTrend = mcp.NewTool("get_performance_trend",
	mcp.WithDescription("Monthly average of difficulty-adjusted performance levels across all graded scores, with a rolling average."),
	mcp.WithNumber("window", mcp.Description("Rolling average window in months. Defaults to 12.")),
	mcp.WithString("since", mcp.Description("Only include scores on or after this date (ISO 8601 or YYYY-MM-DD).")),
)

// --- Tool handlers ---

type searchHit struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Difficulty string              `json:"difficulty"`
	Score      *float64            `json:"score,omitempty"`
	Movements  []string            `json:"movements"`
	Matches    []search.FieldMatch `json:"matches,omitempty"`
}

func (h *handlers) searchWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	mode := req.GetString("mode", "fuzzy")
	limit := req.GetInt("limit", 20)

	c, err := h.corpus(ctx)
	if err != nil {
		h.log.Error("mcp search_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	hits := []searchHit{}
	switch mode {
	case "literal":
		for _, w := range c.MatchAll(query) {
			hits = append(hits, newSearchHit(c, w))
		}
	case "fuzzy":
		for _, hit := range c.Search(query, h.search) {
			sh := newSearchHit(c, hit.Workout)
			score := hit.Result.Score
			sh.Score = &score
			sh.Matches = hit.Result.Matches
			hits = append(hits, sh)
		}
	default:
		return mcp.NewToolResultError("mode must be fuzzy or literal"), nil
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	result, err := mcp.NewToolResultJSON(hits)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func newSearchHit(c *corpus.Corpus, w models.Workout) searchHit {
	return searchHit{
		ID:         w.ID,
		Name:       w.Name,
		Category:   w.Category,
		Difficulty: w.Difficulty,
		Movements:  c.Movements(w.ID).Names(),
	}
}

type workoutLevel struct {
	Workout    string               `json:"workout"`
	WorkoutID  uuid.UUID            `json:"workout_id"`
	Benchmark  models.BenchmarkType `json:"benchmark_type,omitempty"`
	ScoreCount int                  `json:"score_count"`
	Latest     *models.Score        `json:"latest_score"`
	Value      *float64             `json:"value,omitempty"`
	Level      models.Level         `json:"level,omitempty"`
	Ordinal    int                  `json:"ordinal"`
}

func (h *handlers) getWorkoutLevel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}

	c, err := h.corpus(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_level", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	w, ok := findWorkout(c, ref)
	if !ok {
		return mcp.NewToolResultError("unknown workout: " + ref), nil
	}

	uid := UserIDFromContext(ctx)
	scores, err := h.ds.QueryScores(ctx, uid, &w.ID)
	if err != nil {
		h.log.Error("mcp get_workout_level scores", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := workoutLevel{
		Workout:    w.Name,
		WorkoutID:  w.ID,
		ScoreCount: len(scores),
		Latest:     performance.LatestScore(scores),
	}
	if w.Benchmarks != nil {
		out.Benchmark = w.Benchmarks.Type
	}
	out.Ordinal = performance.SortOrdinal(w, out.Latest)
	if out.Latest != nil {
		if v, ok := performance.NumericScore(w, *out.Latest); ok {
			out.Value = &v
		}
		if level, ok := performance.LevelFor(w, *out.Latest); ok {
			out.Level = level
		}
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// findWorkout resolves a workout by ID, by catalog name (including import
// aliases), or by case-insensitive name.
func findWorkout(c *corpus.Corpus, ref string) (models.Workout, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return c.Workout(id)
	}
	if w, ok := c.Index().Lookup(csvimport.ResolveTitle(ref)); ok {
		return w, true
	}
	for _, w := range c.Workouts() {
		if strings.EqualFold(w.Name, ref) {
			return w, true
		}
	}
	return models.Workout{}, false
}

type movementCount struct {
	Movement string   `json:"movement"`
	Count    int      `json:"count"`
	Workouts []string `json:"workouts"`
}

func (h *handlers) getMovementFrequency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	limit := req.GetInt("limit", 0)

	c, err := h.corpus(ctx)
	if err != nil {
		h.log.Error("mcp get_movement_frequency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rankFrequency(c.Frequency(), category, limit))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// rankFrequency orders each category's movements by count, then name.
func rankFrequency(freq movement.Frequency, category string, limit int) map[string][]movementCount {
	out := make(map[string][]movementCount)
	for cat, entries := range freq {
		if category != "" && !strings.EqualFold(cat, category) {
			continue
		}
		list := make([]movementCount, 0, len(entries))
		for name, e := range entries {
			list = append(list, movementCount{Movement: name, Count: e.Count, Workouts: e.WorkoutNames})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Count != list[j].Count {
				return list[i].Count > list[j].Count
			}
			return list[i].Movement < list[j].Movement
		})
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
		out[cat] = list
	}
	return out
}

func (h *handlers) getPerformanceTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := req.GetInt("window", performance.DefaultWindow)
	if window < 1 {
		return mcp.NewToolResultError("window must be a positive number of months"), nil
	}

	var since time.Time
	if v := req.GetString("since", ""); v != "" {
		t, err := parseFlexTime(v)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		since = t
	}

	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp get_performance_trend workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	uid := UserIDFromContext(ctx)
	scores, err := h.ds.QueryScores(ctx, uid, nil)
	if err != nil {
		h.log.Error("mcp get_performance_trend scores", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if !since.IsZero() {
		kept := scores[:0]
		for _, s := range scores {
			if !s.ScoreDate.Before(since) {
				kept = append(kept, s)
			}
		}
		scores = kept
	}

	points := performance.BuildTrend(workouts, scores, window)
	if points == nil {
		points = []performance.MonthPoint{}
	}
	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
